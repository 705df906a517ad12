package model

import (
	"errors"
	"testing"
)

func TestLikedBy(t *testing.T) {
	c := &Course{Likes: []string{"u1", "u2"}}

	if !c.LikedBy("u1") {
		t.Error("expected u1 to be in the like set")
	}
	if c.LikedBy("u3") {
		t.Error("did not expect u3 in the like set")
	}

	empty := &Course{}
	if empty.LikedBy("u1") {
		t.Error("did not expect a like on a course with no likes")
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrInvalidID, ErrInvalidPage, ErrUnauthenticated}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v unexpectedly matches %v", a, b)
			}
		}
	}
}
