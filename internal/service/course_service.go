package service

import (
	"context"
	"encoding/json"
	"time"

	"app/internal/model"
	"app/internal/pubsub"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// listPageSize is the fixed number of courses per listing page.
const listPageSize = 4

// CourseService exposes the catalog operations. Identifier arguments are the
// raw path values; validity against the store's id scheme is checked here,
// before any store round-trip, and reported as model.ErrInvalidID.
type CourseService interface {
	ListCourses(ctx context.Context, page int) (*model.CoursePage, error)
	SearchCourses(ctx context.Context, query string, tags []string) ([]model.Course, error)
	CoursesByCreator(ctx context.Context, name string) ([]model.Course, error)
	GetCourse(ctx context.Context, id string) (*model.Course, error)
	CreateCourse(ctx context.Context, c *model.Course, callerUserID string) (*model.Course, error)
	UpdateCourse(ctx context.Context, id string, c *model.Course) (*model.Course, error)
	DeleteCourse(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id, callerUserID string) (*model.Course, error)
	AddComment(ctx context.Context, id, text string) (*model.Course, error)
}

// CourseEvent is the payload published after successful create/delete
// mutations.
type CourseEvent struct {
	Type       string    `json:"type"`
	CourseID   int64     `json:"courseId"`
	OccurredAt time.Time `json:"occurredAt"`
}

type courseService struct {
	repo         repository.CourseRepository
	publisher    pubsub.Publisher
	eventsTopic  string
	courseLogger zerolog.Logger
}

// NewCourseService creates a new CourseService. publisher may be nil, in
// which case lifecycle events are not emitted.
func NewCourseService(repo repository.CourseRepository, publisher pubsub.Publisher, eventsTopic string, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:         repo,
		publisher:    publisher,
		eventsTopic:  eventsTopic,
		courseLogger: logger.With().Str("service", "CourseService").Logger(),
	}
}

// ListCourses returns the page-th page of the catalog, newest first.
// Pages past the end of the catalog yield an empty page, not an error.
func (s *courseService) ListCourses(ctx context.Context, page int) (*model.CoursePage, error) {
	if page < 1 {
		return nil, model.ErrInvalidPage
	}
	startIndex := (page - 1) * listPageSize

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.repo.List(ctx, startIndex, listPageSize)
	if err != nil {
		return nil, err
	}
	return &model.CoursePage{
		Courses:     courses,
		CurrentPage: page,
		TotalPages:  int((total + listPageSize - 1) / listPageSize),
	}, nil
}

// SearchCourses returns every course whose title contains query
// (case-insensitive) or whose tags intersect tags. Both criteria are
// optional; with neither, the empty substring matches everything.
func (s *courseService) SearchCourses(ctx context.Context, query string, tags []string) ([]model.Course, error) {
	return s.repo.Search(ctx, query, tags)
}

// CoursesByCreator returns courses whose creator name matches exactly.
func (s *courseService) CoursesByCreator(ctx context.Context, name string) ([]model.Course, error) {
	return s.repo.FindByCreator(ctx, name)
}

func (s *courseService) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	courseID, err := s.repo.ParseID(id)
	if err != nil {
		return nil, err
	}
	course, err := s.repo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, model.ErrNotFound
	}
	return course, nil
}

// CreateCourse persists a new course. The caller identity and creation time
// are set here unconditionally; client-supplied values for either are
// discarded.
func (s *courseService) CreateCourse(ctx context.Context, c *model.Course, callerUserID string) (*model.Course, error) {
	c.CreatorUserID = callerUserID
	c.CreatedAt = time.Now().UTC()
	if c.Tags == nil {
		c.Tags = []string{}
	}
	c.Likes = []string{}
	c.Comments = []string{}

	created, err := s.repo.Insert(ctx, c)
	if err != nil {
		s.courseLogger.Error().Err(err).Msg("Failed to insert course")
		return nil, err
	}
	s.publishEvent(ctx, "course.created", created.ID)
	return created, nil
}

// UpdateCourse replaces the client-ownable fields wholesale. Likes,
// comments, creation time and creator identity are untouched regardless of
// what the request body carried.
func (s *courseService) UpdateCourse(ctx context.Context, id string, c *model.Course) (*model.Course, error) {
	courseID, err := s.repo.ParseID(id)
	if err != nil {
		return nil, err
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	updated, err := s.repo.Update(ctx, courseID, c)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.ErrNotFound
	}
	return updated, nil
}

// DeleteCourse removes a course for good. A repeated delete reports
// ErrNotFound, not success.
func (s *courseService) DeleteCourse(ctx context.Context, id string) error {
	courseID, err := s.repo.ParseID(id)
	if err != nil {
		return err
	}
	removed, err := s.repo.Delete(ctx, courseID)
	if err != nil {
		return err
	}
	if !removed {
		return model.ErrNotFound
	}
	s.publishEvent(ctx, "course.deleted", courseID)
	return nil
}

// ToggleLike flips the caller's membership in the course's like set.
// A missing caller identity is reported as model.ErrUnauthenticated, which
// the handler surfaces as a success-shaped message payload.
func (s *courseService) ToggleLike(ctx context.Context, id, callerUserID string) (*model.Course, error) {
	if callerUserID == "" {
		return nil, model.ErrUnauthenticated
	}
	courseID, err := s.repo.ParseID(id)
	if err != nil {
		return nil, err
	}
	course, err := s.repo.ToggleLike(ctx, courseID, callerUserID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, model.ErrNotFound
	}
	return course, nil
}

// AddComment appends text to the course's comments. Comments are plain
// values: no author, no timestamp, no deduplication.
func (s *courseService) AddComment(ctx context.Context, id, text string) (*model.Course, error) {
	courseID, err := s.repo.ParseID(id)
	if err != nil {
		return nil, err
	}
	course, err := s.repo.AppendComment(ctx, courseID, text)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, model.ErrNotFound
	}
	return course, nil
}

// publishEvent emits a lifecycle event. Publishing is best-effort: a
// failure is logged and never fails the mutation that triggered it.
func (s *courseService) publishEvent(ctx context.Context, eventType string, courseID int64) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(CourseEvent{
		Type:       eventType,
		CourseID:   courseID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.courseLogger.Error().Err(err).Str("event", eventType).Msg("Failed to encode course event")
		return
	}
	if _, err := s.publisher.Publish(ctx, s.eventsTopic, payload); err != nil {
		s.courseLogger.Error().Err(err).Str("event", eventType).Int64("course_id", courseID).Msg("Failed to publish course event")
	}
}
