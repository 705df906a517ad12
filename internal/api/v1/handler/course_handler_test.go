package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"app/internal/middleware"
	"app/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// stubCourseService lets each test script the catalog operations.
type stubCourseService struct {
	listFn     func(ctx context.Context, page int) (*model.CoursePage, error)
	searchFn   func(ctx context.Context, query string, tags []string) ([]model.Course, error)
	byCreator  func(ctx context.Context, name string) ([]model.Course, error)
	getFn      func(ctx context.Context, id string) (*model.Course, error)
	createFn   func(ctx context.Context, c *model.Course, callerUserID string) (*model.Course, error)
	updateFn   func(ctx context.Context, id string, c *model.Course) (*model.Course, error)
	deleteFn   func(ctx context.Context, id string) error
	toggleFn   func(ctx context.Context, id, callerUserID string) (*model.Course, error)
	commentFn  func(ctx context.Context, id, text string) (*model.Course, error)
}

func (s *stubCourseService) ListCourses(ctx context.Context, page int) (*model.CoursePage, error) {
	return s.listFn(ctx, page)
}
func (s *stubCourseService) SearchCourses(ctx context.Context, query string, tags []string) ([]model.Course, error) {
	return s.searchFn(ctx, query, tags)
}
func (s *stubCourseService) CoursesByCreator(ctx context.Context, name string) ([]model.Course, error) {
	return s.byCreator(ctx, name)
}
func (s *stubCourseService) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	return s.getFn(ctx, id)
}
func (s *stubCourseService) CreateCourse(ctx context.Context, c *model.Course, callerUserID string) (*model.Course, error) {
	return s.createFn(ctx, c, callerUserID)
}
func (s *stubCourseService) UpdateCourse(ctx context.Context, id string, c *model.Course) (*model.Course, error) {
	return s.updateFn(ctx, id, c)
}
func (s *stubCourseService) DeleteCourse(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *stubCourseService) ToggleLike(ctx context.Context, id, callerUserID string) (*model.Course, error) {
	return s.toggleFn(ctx, id, callerUserID)
}
func (s *stubCourseService) AddComment(ctx context.Context, id, text string) (*model.Course, error) {
	return s.commentFn(ctx, id, text)
}

func newTestHandler(svc *stubCourseService) http.Handler {
	h := NewCourseHandler(svc, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	mux := http.NewServeMux()
	// Identity-free middleware stand-in; tests inject identity per request.
	passthrough := func(next http.Handler) http.Handler { return next }
	h.RegisterRoutes(mux, passthrough)
	return mux
}

func withIdentity(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, userID)
	return r.WithContext(ctx)
}

func sampleCourse() *model.Course {
	return &model.Course{
		ID:            7,
		Title:         "Intro to Go",
		CreatorName:   "Ada",
		CreatorUserID: "u1",
		Tags:          []string{"go"},
		Likes:         []string{},
		Comments:      []string{},
		CreatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestListCoursesResponseShape(t *testing.T) {
	svc := &stubCourseService{
		listFn: func(ctx context.Context, page int) (*model.CoursePage, error) {
			if page != 2 {
				t.Fatalf("expected page 2, got %d", page)
			}
			return &model.CoursePage{
				Courses:     []model.Course{*sampleCourse()},
				CurrentPage: 2,
				TotalPages:  3,
			}, nil
		},
	}
	mux := newTestHandler(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses?page=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data          []json.RawMessage `json:"data"`
		CurrentPage   int               `json:"currentPage"`
		NumberOfPages int               `json:"numberOfPages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(body.Data) != 1 || body.CurrentPage != 2 || body.NumberOfPages != 3 {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestListCoursesRejectsNonNumericPage(t *testing.T) {
	mux := newTestHandler(&stubCourseService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses?page=abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearchCoursesSplitsTags(t *testing.T) {
	var gotQuery string
	var gotTags []string
	svc := &stubCourseService{
		searchFn: func(ctx context.Context, query string, tags []string) ([]model.Course, error) {
			gotQuery, gotTags = query, tags
			return []model.Course{}, nil
		},
	}
	mux := newTestHandler(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses/search?searchQuery=go&tags=a,b,c", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotQuery != "go" {
		t.Errorf("expected query %q, got %q", "go", gotQuery)
	}
	if len(gotTags) != 3 || gotTags[0] != "a" || gotTags[2] != "c" {
		t.Errorf("expected tags split on commas, got %v", gotTags)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("empty result must serialize as data:[], got %s", rec.Body.String())
	}
}

func TestSearchCoursesEmptyTagsParam(t *testing.T) {
	svc := &stubCourseService{
		searchFn: func(ctx context.Context, query string, tags []string) ([]model.Course, error) {
			if tags != nil {
				t.Fatalf("expected nil tags for absent param, got %v", tags)
			}
			return []model.Course{}, nil
		},
	}
	mux := newTestHandler(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses/search?searchQuery=x", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCreateCourseRequiresIdentity(t *testing.T) {
	mux := newTestHandler(&stubCourseService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(`{"title":"A"}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rec.Code)
	}
}

func TestCreateCourse(t *testing.T) {
	svc := &stubCourseService{
		createFn: func(ctx context.Context, c *model.Course, callerUserID string) (*model.Course, error) {
			if callerUserID != "u1" {
				t.Fatalf("expected caller u1, got %q", callerUserID)
			}
			if c.Title != "Intro to Go" {
				t.Fatalf("unexpected title %q", c.Title)
			}
			return sampleCourse(), nil
		},
	}
	mux := newTestHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/courses",
		strings.NewReader(`{"title":"Intro to Go","tags":["go"],"creator":"spoofed"}`))
	mux.ServeHTTP(rec, withIdentity(req, "u1"))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"id":7`) {
		t.Errorf("expected created course in response, got %s", rec.Body.String())
	}
}

func TestCreateCourseValidation(t *testing.T) {
	mux := newTestHandler(&stubCourseService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(`{"description":"no title"}`))
	mux.ServeHTTP(rec, withIdentity(req, "u1"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %d", rec.Code)
	}
}

func TestUpdateCourseNotFound(t *testing.T) {
	svc := &stubCourseService{
		updateFn: func(ctx context.Context, id string, c *model.Course) (*model.Course, error) {
			return nil, model.ErrNotFound
		},
	}
	mux := newTestHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/courses/42", strings.NewReader(`{"title":"X"}`))
	mux.ServeHTTP(rec, withIdentity(req, "u1"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteCourse(t *testing.T) {
	svc := &stubCourseService{
		deleteFn: func(ctx context.Context, id string) error {
			if id != "7" {
				t.Fatalf("expected id 7, got %q", id)
			}
			return nil
		},
	}
	mux := newTestHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/courses/7", nil)
	mux.ServeHTTP(rec, withIdentity(req, "u1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Course is deleted successfully.") {
		t.Errorf("expected confirmation message, got %s", rec.Body.String())
	}
}

func TestDeleteCourseInvalidID(t *testing.T) {
	svc := &stubCourseService{
		deleteFn: func(ctx context.Context, id string) error {
			return model.ErrInvalidID
		},
	}
	mux := newTestHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/courses/not-an-id", nil)
	mux.ServeHTTP(rec, withIdentity(req, "u1"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", rec.Code)
	}
}

func TestLikeCourseWithoutIdentityIsSuccessShaped(t *testing.T) {
	svc := &stubCourseService{
		toggleFn: func(ctx context.Context, id, callerUserID string) (*model.Course, error) {
			if callerUserID != "" {
				t.Fatalf("expected empty caller, got %q", callerUserID)
			}
			return nil, model.ErrUnauthenticated
		},
	}
	mux := newTestHandler(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/courses/7/likeCourse", nil))

	// The unauthenticated case is a success-shaped payload, not an error
	// status; clients key off the message field.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unauthenticated like, got %d", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.Message != "Unauthenticated" {
		t.Fatalf("expected message 'Unauthenticated', got %q", body.Message)
	}
}

func TestLikeCourseTogglesForCaller(t *testing.T) {
	svc := &stubCourseService{
		toggleFn: func(ctx context.Context, id, callerUserID string) (*model.Course, error) {
			c := sampleCourse()
			c.Likes = []string{callerUserID}
			return c, nil
		},
	}
	mux := newTestHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/courses/7/likeCourse", nil)
	mux.ServeHTTP(rec, withIdentity(req, "u1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"likes":["u1"]`) {
		t.Errorf("expected updated likes in response, got %s", rec.Body.String())
	}
}

func TestCommentCourse(t *testing.T) {
	svc := &stubCourseService{
		commentFn: func(ctx context.Context, id, text string) (*model.Course, error) {
			c := sampleCourse()
			c.Comments = []string{text}
			return c, nil
		},
	}
	mux := newTestHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/courses/7/commentCourse",
		strings.NewReader(`{"value":"nice course"}`))
	mux.ServeHTTP(rec, withIdentity(req, "u1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"comments":["nice course"]`) {
		t.Errorf("expected appended comment in response, got %s", rec.Body.String())
	}
}

func TestGetCourse(t *testing.T) {
	svc := &stubCourseService{
		getFn: func(ctx context.Context, id string) (*model.Course, error) {
			if id != "7" {
				return nil, model.ErrNotFound
			}
			return sampleCourse(), nil
		},
	}
	mux := newTestHandler(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses/7", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses/8", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
