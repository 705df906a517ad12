package repository

import (
	"testing"
)

func TestParseID(t *testing.T) {
	repo := &courseRepo{}

	valid := map[string]int64{
		"1":    1,
		"42":   42,
		"9007": 9007,
	}
	for raw, want := range valid {
		got, err := repo.ParseID(raw)
		if err != nil {
			t.Errorf("ParseID(%q) unexpected error: %v", raw, err)
			continue
		}
		if got != want {
			t.Errorf("ParseID(%q) = %d, want %d", raw, got, want)
		}
	}

	invalid := []string{"", "0", "-3", "abc", "1.5", "1e3", "likeCourse", "0x10"}
	for _, raw := range invalid {
		if _, err := repo.ParseID(raw); err == nil {
			t.Errorf("ParseID(%q) expected error", raw)
		}
		if repo.IsValidID(raw) {
			t.Errorf("IsValidID(%q) = true, want false", raw)
		}
	}
}

func TestJSONArray(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, "[]"},
		{[]string{}, "[]"},
		{[]string{"go"}, `["go"]`},
		{[]string{"a", "b"}, `["a","b"]`},
	}
	for _, tc := range cases {
		if got := jsonArray(tc.in); got != tc.want {
			t.Errorf("jsonArray(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
