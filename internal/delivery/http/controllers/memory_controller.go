package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"memoir/internal/delivery/http/helpers"
	"memoir/internal/delivery/http/middleware"
	"memoir/internal/domain"
)

// maxUploadBytes caps how much of a multipart submission is held in memory.
const maxUploadBytes = 32 << 20

// MemorySuccessResponse is the success response envelope for POST /events/{slug}/memories.
type MemorySuccessResponse struct {
	Data  *domain.Memory    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type MemoryController struct {
	Logger  *slog.Logger
	Service domain.MemoryService
}

func NewMemoryController(logger *slog.Logger, svc domain.MemoryService) *MemoryController {
	return &MemoryController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitMemory godoc
// @Summary Submit a memory to an event
// @Description Guest submission: multipart form with a message, an optional name, and an optional photo or video. The event's existence and lock state are checked against the store at submission time; a locked event reports event_locked, a missing one not_found.
// @Tags memories
// @Accept mpfd
// @Produce json
// @Param slug path string true "Event slug"
// @Param name formData string false "Sender name (defaults to Guest)"
// @Param message formData string true "Message text"
// @Param file formData file false "Photo or video"
// @Success 201 {object} controllers.MemorySuccessResponse "data contains the created memory"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (empty message)"
// @Failure 403 {object} helpers.APIResponse "error.code: event_locked"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/memories [post]
func (c *MemoryController) SubmitMemory(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}

	var media *domain.MediaUpload
	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		media = &domain.MediaUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        file,
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid file upload")
		return
	}

	memory, err := c.Service.Submit(r.Context(), slug, r.FormValue("name"), r.FormValue("message"), media)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrEventLocked):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeEventLocked, "event is closed for new memories")
		case errors.Is(err, domain.ErrEmptyMessage):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "message is required")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, memory)
}

// DeleteMemory godoc
// @Summary Delete a memory
// @Description Organizer moderation: removes one memory and decrements the event's counter (clamped at zero).
// @Tags memories
// @Produce json
// @Security BearerAuth
// @Param memoryID path string true "Memory ID"
// @Success 200 {object} helpers.APIResponse "data is null on success"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /memories/{memoryID} [delete]
func (c *MemoryController) DeleteMemory(w http.ResponseWriter, r *http.Request) {
	memoryID := r.PathValue("memoryID")
	if memoryID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing memoryID")
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), memoryID); err != nil {
		if errors.Is(err, domain.ErrMemoryNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "memory not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}
