package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"memoir/internal/delivery/http/helpers"
	"memoir/internal/delivery/http/middleware"
	"memoir/internal/domain"
)

// DriveExportRequest is the request body for POST /events/{eventID}/export/drive.
// The access token comes from the client's own OAuth exchange.
type DriveExportRequest struct {
	AccessToken string `json:"access_token"`
}

// DriveExportSuccessResponse is the success response envelope for Drive exports.
type DriveExportSuccessResponse struct {
	Data  *domain.FolderExport `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type ExportController struct {
	Logger   *slog.Logger
	Events   domain.EventService
	Memories domain.MemoryService
	Exports  domain.ExportService
	Users    domain.UserService
	Emails   domain.EmailService
}

func NewExportController(logger *slog.Logger,
	events domain.EventService,
	memories domain.MemoryService,
	exports domain.ExportService,
	users domain.UserService,
	emails domain.EmailService,
) *ExportController {
	return &ExportController{
		Logger:   logger,
		Events:   events,
		Memories: memories,
		Exports:  exports,
		Users:    users,
		Emails:   emails,
	}
}

// loadEventAndMemories resolves the event and its full memory list for an
// authenticated export request, writing the error response itself on failure.
func (c *ExportController) loadEventAndMemories(w http.ResponseWriter, r *http.Request) (*domain.Event, []*domain.Memory, bool) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return nil, nil, false
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return nil, nil, false
	}
	event, err := c.Events.GetEventByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return nil, nil, false
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return nil, nil, false
	}
	memories, err := c.Memories.ListByEvent(r.Context(), event.ID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return nil, nil, false
	}
	return event, memories, true
}

// ExportArchive godoc
// @Summary Download an event's memories as a zip archive
// @Description Builds a zip with a summary document and one file per memory with media. Individual media failures are skipped; the X-Media-Total and X-Media-Exported headers carry the batch outcome.
// @Tags exports
// @Produce application/zip
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {file} binary "zip archive"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/export/archive [post]
func (c *ExportController) ExportArchive(w http.ResponseWriter, r *http.Request) {
	event, memories, ok := c.loadEventAndMemories(w, r)
	if !ok {
		return
	}
	archive, report, err := c.Exports.ExportArchive(r.Context(), event.Name, memories)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "archive export failed", "event_id", event.ID, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", event.Name+"-memories.zip"))
	w.Header().Set("X-Media-Total", strconv.Itoa(report.MediaTotal))
	w.Header().Set("X-Media-Exported", strconv.Itoa(report.MediaExported))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(archive); err != nil {
		c.Logger.ErrorContext(r.Context(), "archive write failed", "event_id", event.ID, "err", err)
	}
}

// ExportToDrive godoc
// @Summary Export an event's memories into a Google Drive folder
// @Description Creates a folder in the organizer's Drive using the supplied OAuth access token and uploads the summary plus each memory's media. Individual media failures are listed in the report. Sends the organizer a notification email with the folder link.
// @Tags exports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body DriveExportRequest true "Drive access token"
// @Success 200 {object} controllers.DriveExportSuccessResponse "data contains folder id, link, and report"
// @Failure 400 {object} helpers.APIResponse "error.code: missing_credential"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/export/drive [post]
func (c *ExportController) ExportToDrive(w http.ResponseWriter, r *http.Request) {
	var req DriveExportRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, memories, ok := c.loadEventAndMemories(w, r)
	if !ok {
		return
	}
	result, err := c.Exports.ExportToFolder(r.Context(), req.AccessToken, event.Name, memories)
	if err != nil {
		if errors.Is(err, domain.ErrMissingCredential) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeMissingToken, "no access token provided")
			return
		}
		c.Logger.ErrorContext(r.Context(), "drive export failed", "event_id", event.ID, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	c.notifyOrganizer(r, event, result)

	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// notifyOrganizer emails the folder link to the organizer. Failures are
// logged only; the export already succeeded.
func (c *ExportController) notifyOrganizer(r *http.Request, event *domain.Event, result *domain.FolderExport) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return
	}
	user, err := c.Users.GetByID(r.Context(), userID)
	if err != nil {
		c.Logger.WarnContext(r.Context(), "export notification skipped", "event_id", event.ID, "err", err)
		return
	}
	err = c.Emails.SendExportReady(r.Context(), &domain.ExportReadyEmailData{
		Email:      user.Email,
		EventName:  event.Name,
		FolderLink: result.FolderLink,
	})
	if err != nil {
		c.Logger.WarnContext(r.Context(), "export notification failed", "event_id", event.ID, "err", err)
	}
}
