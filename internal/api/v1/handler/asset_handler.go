package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// AssetHandler handles course image asset endpoints
type AssetHandler struct {
	assetService service.AssetService
	validate     *validator.Validate
	logger       zerolog.Logger
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService service.AssetService, validate *validator.Validate, logger zerolog.Logger) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
		validate:     validate,
		logger:       logger.With().Str("handler", "AssetHandler").Logger(),
	}
}

// RegisterRoutes mounts asset routes behind strict auth.
func (h *AssetHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/assets/upload-url", authMw(http.HandlerFunc(h.createUploadURL)))
	mux.Handle("/assets/", authMw(http.HandlerFunc(h.getDownloadURL)))
}

// createUploadURL godoc
// @Summary Request an image upload slot
// @Description Returns an object key and a presigned PUT URL. The key becomes the course's selectedFile reference.
// @Tags assets
// @Accept json
// @Produce json
// @Param asset body dto.AssetUploadRequestDTO true "Upload request"
// @Success 200 {object} dto.AssetUploadResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 500 {string} string "Failed to generate upload URL"
// @Router /assets/upload-url [post]
func (h *AssetHandler) createUploadURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := middleware.UserID(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.AssetUploadRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	key, url, err := h.assetService.CreateUploadURL(r.Context(), userID, req.Filename)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to generate upload URL")
		http.Error(w, "Failed to generate upload URL", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.AssetUploadResponseDTO{Key: key, URL: url})
}

// getDownloadURL godoc
// @Summary Resolve an image download URL
// @Description Returns a presigned GET URL for a stored object key.
// @Tags assets
// @Produce json
// @Param key path string true "Object key"
// @Success 200 {object} dto.AssetDownloadResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 500 {string} string "Failed to generate download URL"
// @Router /assets/{key} [get]
func (h *AssetHandler) getDownloadURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := middleware.UserID(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, "/assets/")
	if key == "" {
		http.NotFound(w, r)
		return
	}
	url, err := h.assetService.GetDownloadURL(r.Context(), key)
	if err != nil {
		h.logger.Error().Err(err).Str("key", key).Msg("Failed to generate download URL")
		http.Error(w, "Failed to generate download URL", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.AssetDownloadResponseDTO{URL: url})
}
