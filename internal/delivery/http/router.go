package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"memoir/internal/delivery/http/controllers"
	"memoir/internal/delivery/http/middleware"
	"memoir/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Guest routes (event read, memory submission) are public; everything else
// requires an organizer bearer token.
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	memoryController *controllers.MemoryController,
	exportController *controllers.ExportController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", auth(eventController.ListEvents))
	mux.HandleFunc("GET /events/{slug}", eventController.GetEventBySlug)
	mux.HandleFunc("POST /events/{eventID}/lock", auth(eventController.LockEvent))
	mux.HandleFunc("POST /events/{eventID}/unlock", auth(eventController.UnlockEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))

	// Memories
	mux.HandleFunc("POST /events/{slug}/memories", memoryController.SubmitMemory)
	mux.HandleFunc("DELETE /memories/{memoryID}", auth(memoryController.DeleteMemory))

	// Exports
	mux.HandleFunc("POST /events/{eventID}/export/archive", auth(exportController.ExportArchive))
	mux.HandleFunc("POST /events/{eventID}/export/drive", auth(exportController.ExportToDrive))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
