package model

import (
	"errors"
	"time"
)

var (
	// ErrNotFound reports that no course exists with the given id.
	ErrNotFound = errors.New("course not found")
	// ErrInvalidID reports an id that can never name a stored course.
	ErrInvalidID = errors.New("invalid course id")
	// ErrInvalidPage reports a page number below 1.
	ErrInvalidPage = errors.New("invalid page number")
	// ErrUnauthenticated reports a caller without an identity.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Course represents a course in the catalog. Likes holds the ids of the
// users who currently like the course, at most once each. Comments is
// append-only.
type Course struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Price         float64   `db:"price"`
	CreatorName   string    `db:"creator_name"`
	CreatorUserID string    `db:"creator_user_id"`
	Tags          []string  `db:"tags"`
	SelectedFile  string    `db:"selected_file"`
	Likes         []string  `db:"likes"`
	Comments      []string  `db:"comments"`
	CreatedAt     time.Time `db:"created_at"`
}

// LikedBy reports whether userID is in the course's like set.
func (c *Course) LikedBy(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CoursePage is one page of the catalog listing.
type CoursePage struct {
	Courses     []Course
	CurrentPage int
	TotalPages  int
}
