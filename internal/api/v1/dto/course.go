package dto

import (
	"time"

	"app/internal/model"
)

// CourseCreateDTO is used for incoming course creation requests. The caller
// identity and creation time never come from the body; any creator or
// createdAt field a client sends is simply not mapped.
type CourseCreateDTO struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	CreatorName  string   `json:"name"`
	Tags         []string `json:"tags"`
	SelectedFile string   `json:"selectedFile"`
}

// CourseUpdateDTO carries the full replacement values for the
// client-ownable fields.
type CourseUpdateDTO struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	CreatorName  string   `json:"name"`
	Tags         []string `json:"tags"`
	SelectedFile string   `json:"selectedFile"`
}

// CommentDTO is the body of a comment-append request.
type CommentDTO struct {
	Value string `json:"value" validate:"required"`
}

// CourseResponseDTO is returned in API responses for a single course.
type CourseResponseDTO struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	CreatorName  string    `json:"name"`
	Creator      string    `json:"creator"`
	Tags         []string  `json:"tags"`
	SelectedFile string    `json:"selectedFile"`
	Likes        []string  `json:"likes"`
	Comments     []string  `json:"comments"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CourseListResponseDTO is the paged listing envelope.
type CourseListResponseDTO struct {
	Data          []CourseResponseDTO `json:"data"`
	CurrentPage   int                 `json:"currentPage"`
	NumberOfPages int                 `json:"numberOfPages"`
}

// CourseDataResponseDTO wraps unpaged result sets (search, creator filter).
type CourseDataResponseDTO struct {
	Data []CourseResponseDTO `json:"data"`
}

// MessageResponseDTO is a bare message payload. Besides delete
// confirmations it also carries the like toggle's "Unauthenticated"
// response, which goes out with a success status by contract.
type MessageResponseDTO struct {
	Message string `json:"message"`
}

// NewCourseResponse maps a course entity onto the wire shape.
func NewCourseResponse(c *model.Course) CourseResponseDTO {
	return CourseResponseDTO{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Price:        c.Price,
		CreatorName:  c.CreatorName,
		Creator:      c.CreatorUserID,
		Tags:         c.Tags,
		SelectedFile: c.SelectedFile,
		Likes:        c.Likes,
		Comments:     c.Comments,
		CreatedAt:    c.CreatedAt,
	}
}

// NewCourseResponses maps a result set onto the wire shape, keeping an
// empty set as [] rather than null.
func NewCourseResponses(courses []model.Course) []CourseResponseDTO {
	out := make([]CourseResponseDTO, 0, len(courses))
	for i := range courses {
		out = append(out, NewCourseResponse(&courses[i]))
	}
	return out
}
