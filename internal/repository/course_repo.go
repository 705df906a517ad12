package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"app/internal/model"
)

// CourseRepository is the record-store contract the catalog operations
// depend on. Implementations provide durable keyed storage of courses plus
// the identifier-scheme capability (ParseID/IsValidID), so the catalog core
// never assumes a key format. Storage or transport faults are returned
// untouched; absent records are reported as nil, not as errors.
type CourseRepository interface {
	Insert(ctx context.Context, c *model.Course) (*model.Course, error)
	FindByID(ctx context.Context, id int64) (*model.Course, error)
	// List returns courses ordered by descending id (insertion order proxy).
	List(ctx context.Context, offset, limit int) ([]model.Course, error)
	Count(ctx context.Context) (int64, error)
	// Search matches a course when its title contains query as a
	// case-insensitive substring, or when any of tags appears among the
	// course's tags. An empty query matches every title.
	Search(ctx context.Context, query string, tags []string) ([]model.Course, error)
	FindByCreator(ctx context.Context, name string) ([]model.Course, error)
	// Update replaces the client-ownable fields wholesale and returns the
	// post-update record, or nil if the id is absent. Likes, comments,
	// created_at and creator_user_id are never part of the patch.
	Update(ctx context.Context, id int64, c *model.Course) (*model.Course, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// ToggleLike flips userID's membership in the course's like set in a
	// single atomic statement and returns the post-update record, or nil if
	// the id is absent. Removal drops every occurrence of userID.
	ToggleLike(ctx context.Context, id int64, userID string) (*model.Course, error)
	// AppendComment appends text to the course's comments in a single
	// atomic statement and returns the post-update record, or nil if the id
	// is absent.
	AppendComment(ctx context.Context, id int64, text string) (*model.Course, error)

	ParseID(raw string) (int64, error)
	IsValidID(raw string) bool
}

type courseRepo struct {
	db *sql.DB
}

// NewCourseRepo creates a Postgres-backed CourseRepository.
func NewCourseRepo(db *sql.DB) CourseRepository {
	return &courseRepo{db: db}
}

const courseColumns = `id, title, description, price, creator_name, creator_user_id, tags, selected_file, likes, comments, created_at`

func (r *courseRepo) Insert(ctx context.Context, c *model.Course) (*model.Course, error) {
	query := `
		INSERT INTO courses (title, description, price, creator_name, creator_user_id, tags, selected_file, likes, comments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, '[]'::jsonb, '[]'::jsonb, $8)
		RETURNING ` + courseColumns
	row := r.db.QueryRowContext(ctx, query,
		c.Title, c.Description, c.Price, c.CreatorName, c.CreatorUserID,
		jsonArray(c.Tags), c.SelectedFile, c.CreatedAt,
	)
	return scanCourse(row)
}

func (r *courseRepo) FindByID(ctx context.Context, id int64) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return course, err
}

func (r *courseRepo) List(ctx context.Context, offset, limit int) ([]model.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query course page: %w", err)
	}
	return collectCourses(rows)
}

func (r *courseRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return total, nil
}

func (r *courseRepo) Search(ctx context.Context, query string, tags []string) ([]model.Course, error) {
	// Title branch: ILIKE against '%query%', so the empty query matches
	// every title. Tag branch: overlap between the course's tags and the
	// requested tags; an empty tag list contributes no matches.
	q := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE title ILIKE '%' || $1 || '%'
		   OR EXISTS (
			SELECT 1 FROM jsonb_array_elements_text(tags) AS t
			WHERE t IN (SELECT jsonb_array_elements_text($2::jsonb))
		   )
	`
	rows, err := r.db.QueryContext(ctx, q, query, jsonArray(tags))
	if err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}
	return collectCourses(rows)
}

func (r *courseRepo) FindByCreator(ctx context.Context, name string) ([]model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE creator_name = $1`
	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses by creator: %w", err)
	}
	return collectCourses(rows)
}

func (r *courseRepo) Update(ctx context.Context, id int64, c *model.Course) (*model.Course, error) {
	query := `
		UPDATE courses
		SET title = $2, description = $3, price = $4, creator_name = $5, tags = $6::jsonb, selected_file = $7
		WHERE id = $1
		RETURNING ` + courseColumns
	row := r.db.QueryRowContext(ctx, query,
		id, c.Title, c.Description, c.Price, c.CreatorName, jsonArray(c.Tags), c.SelectedFile,
	)
	course, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return course, err
}

func (r *courseRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete course: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *courseRepo) ToggleLike(ctx context.Context, id int64, userID string) (*model.Course, error) {
	// Single-statement toggle: no read-modify-write window, so concurrent
	// toggles cannot leave duplicate entries. Removal rebuilds the array
	// without any occurrence of the user id.
	query := `
		UPDATE courses
		SET likes = CASE
			WHEN likes @> to_jsonb($2::text) THEN (
				SELECT COALESCE(jsonb_agg(e), '[]'::jsonb)
				FROM jsonb_array_elements_text(likes) AS e
				WHERE e <> $2
			)
			ELSE likes || to_jsonb($2::text)
		END
		WHERE id = $1
		RETURNING ` + courseColumns
	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return course, err
}

func (r *courseRepo) AppendComment(ctx context.Context, id int64, text string) (*model.Course, error) {
	query := `
		UPDATE courses
		SET comments = comments || to_jsonb($2::text)
		WHERE id = $1
		RETURNING ` + courseColumns
	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id, text))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return course, err
}

// ParseID validates raw against the store's identifier scheme (positive
// 64-bit integers assigned by the courses sequence).
func (r *courseRepo) ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, model.ErrInvalidID
	}
	return id, nil
}

func (r *courseRepo) IsValidID(raw string) bool {
	_, err := r.ParseID(raw)
	return err == nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*model.Course, error) {
	var (
		c        model.Course
		tags     []byte
		likes    []byte
		comments []byte
	)
	if err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Price,
		&c.CreatorName,
		&c.CreatorUserID,
		&tags,
		&c.SelectedFile,
		&likes,
		&comments,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &c.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if err := json.Unmarshal(likes, &c.Likes); err != nil {
		return nil, fmt.Errorf("failed to decode likes: %w", err)
	}
	if err := json.Unmarshal(comments, &c.Comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return &c, nil
}

func collectCourses(rows *sql.Rows) ([]model.Course, error) {
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

// jsonArray encodes ss as a jsonb array literal, mapping nil to the empty
// array so jsonb_array_elements_text never sees a scalar null.
func jsonArray(ss []string) string {
	if len(ss) == 0 {
		return "[]"
	}
	b, err := json.Marshal(ss)
	if err != nil {
		return "[]"
	}
	return string(b)
}
