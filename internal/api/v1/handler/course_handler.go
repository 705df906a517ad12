package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CourseHandler handles catalog endpoints
type CourseHandler struct {
	courseService service.CourseService
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, validate *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		validate:      validate,
		logger:        logger.With().Str("handler", "CourseHandler").Logger(),
	}
}

// RegisterRoutes mounts catalog routes. The whole subtree runs behind
// optional auth: read endpoints ignore identity, mutating handlers enforce
// it themselves, and the like toggle turns a missing identity into its
// message payload.
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, optionalAuthMw func(http.Handler) http.Handler) {
	mux.Handle("/courses", optionalAuthMw(http.HandlerFunc(h.handleCourses)))
	mux.Handle("/courses/", optionalAuthMw(http.HandlerFunc(h.handleCourse)))
}

func (h *CourseHandler) handleCourses(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/courses" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.listCourses(w, r)
	case http.MethodPost:
		h.createCourse(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CourseHandler) handleCourse(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/courses/")
	switch {
	case path == "search" && r.Method == http.MethodGet:
		h.searchCourses(w, r)
	case path == "creator" && r.Method == http.MethodGet:
		h.coursesByCreator(w, r)
	case strings.HasSuffix(path, "/likeCourse") && r.Method == http.MethodPatch:
		h.likeCourse(w, r, strings.TrimSuffix(path, "/likeCourse"))
	case strings.HasSuffix(path, "/commentCourse") && r.Method == http.MethodPost:
		h.commentCourse(w, r, strings.TrimSuffix(path, "/commentCourse"))
	case r.Method == http.MethodGet:
		h.getCourse(w, r, path)
	case r.Method == http.MethodPatch:
		h.updateCourse(w, r, path)
	case r.Method == http.MethodDelete:
		h.deleteCourse(w, r, path)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// listCourses godoc
// @Summary List courses
// @Description Returns one fixed-size page of the catalog, newest first.
// @Tags courses
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.CourseListResponseDTO
// @Failure 400 {string} string "Invalid page number"
// @Failure 500 {string} string "Failed to list courses"
// @Router /courses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid page number", http.StatusBadRequest)
			return
		}
		page = parsed
	}
	result, err := h.courseService.ListCourses(r.Context(), page)
	if err != nil {
		h.respondError(w, "Failed to list courses", err)
		return
	}
	resp := dto.CourseListResponseDTO{
		Data:          dto.NewCourseResponses(result.Courses),
		CurrentPage:   result.CurrentPage,
		NumberOfPages: result.TotalPages,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// searchCourses godoc
// @Summary Search courses
// @Description Matches on case-insensitive title substring or tag membership. Tags are comma-joined.
// @Tags courses
// @Produce json
// @Param searchQuery query string false "Title substring"
// @Param tags query string false "Comma-joined tag list"
// @Success 200 {object} dto.CourseDataResponseDTO
// @Failure 500 {string} string "Failed to search courses"
// @Router /courses/search [get]
func (h *CourseHandler) searchCourses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("searchQuery")
	var tags []string
	if raw := r.URL.Query().Get("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}
	courses, err := h.courseService.SearchCourses(r.Context(), query, tags)
	if err != nil {
		h.respondError(w, "Failed to search courses", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.CourseDataResponseDTO{Data: dto.NewCourseResponses(courses)})
}

// coursesByCreator godoc
// @Summary Courses by creator
// @Description Exact match on the creator's display name.
// @Tags courses
// @Produce json
// @Param name query string true "Creator name"
// @Success 200 {object} dto.CourseDataResponseDTO
// @Failure 500 {string} string "Failed to fetch courses"
// @Router /courses/creator [get]
func (h *CourseHandler) coursesByCreator(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	courses, err := h.courseService.CoursesByCreator(r.Context(), name)
	if err != nil {
		h.respondError(w, "Failed to fetch courses", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.CourseDataResponseDTO{Data: dto.NewCourseResponses(courses)})
}

// getCourse godoc
// @Summary Get a course
// @Description Retrieves a course by its ID.
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to retrieve course"
// @Router /courses/{courseId} [get]
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request, courseID string) {
	course, err := h.courseService.GetCourse(r.Context(), courseID)
	if err != nil {
		h.respondError(w, "Failed to retrieve course", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.NewCourseResponse(course))
}

// createCourse godoc
// @Summary Create a new course
// @Description Creates a course owned by the authenticated caller. Creator identity and creation time are server-assigned.
// @Tags courses
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateDTO true "Course creation request"
// @Success 201 {object} dto.CourseResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 500 {string} string "Failed to create course"
// @Router /courses [post]
func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.CourseCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		CreatorName:  req.CreatorName,
		Tags:         req.Tags,
		SelectedFile: req.SelectedFile,
	}
	created, err := h.courseService.CreateCourse(r.Context(), course, userID)
	if err != nil {
		h.respondError(w, "Failed to create course", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dto.NewCourseResponse(created))
}

// updateCourse godoc
// @Summary Update a course
// @Description Replaces the client-ownable fields wholesale. Likes, comments, creator identity and creation time are untouched.
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param course body dto.CourseUpdateDTO true "Course update request"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to update course"
// @Router /courses/{courseId} [patch]
func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request, courseID string) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.CourseUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	patch := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		CreatorName:  req.CreatorName,
		Tags:         req.Tags,
		SelectedFile: req.SelectedFile,
	}
	updated, err := h.courseService.UpdateCourse(r.Context(), courseID, patch)
	if err != nil {
		h.respondError(w, "Failed to update course", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.NewCourseResponse(updated))
}

// deleteCourse godoc
// @Summary Delete a course
// @Description Removes a course permanently. Repeated deletes report not found.
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.MessageResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to delete course"
// @Router /courses/{courseId} [delete]
func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request, courseID string) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	if err := h.courseService.DeleteCourse(r.Context(), courseID); err != nil {
		h.respondError(w, "Failed to delete course", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.MessageResponseDTO{Message: "Course is deleted successfully."})
}

// likeCourse godoc
// @Summary Toggle a like
// @Description Flips the caller's membership in the course's like set. A missing identity is answered with a 200 {"message":"Unauthenticated"} payload, not an error status.
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to toggle like"
// @Router /courses/{courseId}/likeCourse [patch]
func (h *CourseHandler) likeCourse(w http.ResponseWriter, r *http.Request, courseID string) {
	userID := middleware.UserID(r.Context())
	course, err := h.courseService.ToggleLike(r.Context(), courseID, userID)
	if err != nil {
		// Contract quirk preserved from the original API: a missing
		// identity goes out as a success-shaped message payload, and
		// callers key off the payload shape.
		if errors.Is(err, model.ErrUnauthenticated) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(dto.MessageResponseDTO{Message: "Unauthenticated"})
			return
		}
		h.respondError(w, "Failed to toggle like", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.NewCourseResponse(course))
}

// commentCourse godoc
// @Summary Add a comment
// @Description Appends a comment value to the course.
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param comment body dto.CommentDTO true "Comment request"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to add comment"
// @Router /courses/{courseId}/commentCourse [post]
func (h *CourseHandler) commentCourse(w http.ResponseWriter, r *http.Request, courseID string) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.CommentDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	course, err := h.courseService.AddComment(r.Context(), courseID, req.Value)
	if err != nil {
		h.respondError(w, "Failed to add comment", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.NewCourseResponse(course))
}

// respondError maps the catalog error taxonomy onto HTTP statuses. Store
// faults stay opaque 500s; no domain meaning is attached to them.
func (h *CourseHandler) respondError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidID):
		http.Error(w, "No course with that id", http.StatusNotFound)
	case errors.Is(err, model.ErrNotFound):
		http.Error(w, "Course not found", http.StatusNotFound)
	case errors.Is(err, model.ErrInvalidPage):
		http.Error(w, "Invalid page number", http.StatusBadRequest)
	default:
		h.logger.Error().Err(err).Msg(msg)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
