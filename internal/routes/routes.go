package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/solacejournal/solace-backend/internal/handlers"
)

// SetupRoutes wires all API routes. The journal handler is injected so the
// entry store behind it stays swappable.
func SetupRoutes(r *chi.Mux, journalHandler *handlers.JournalHandler) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.GetMe)
	r.Post("/api/auth/forgot-password", handlers.ForgotPassword)

	// Journal routes. Fixed paths are registered before the {id} routes so
	// "shared" and "analytics" are never read as entry ids.
	r.Route("/api/journal", func(r chi.Router) {
		r.Post("/", journalHandler.Create)
		r.Get("/", journalHandler.List)
		r.Get("/shared", journalHandler.Shared)
		r.Get("/analytics/mood", journalHandler.MoodAnalytics)
		r.Get("/analytics/tags", journalHandler.PopularTags)
		r.Get("/{id}", journalHandler.Get)
		r.Patch("/{id}", journalHandler.Update)
		r.Delete("/{id}", journalHandler.Delete)
		r.Patch("/{id}/archive", journalHandler.Archive)
		r.Patch("/{id}/unarchive", journalHandler.Unarchive)
		r.Patch("/{id}/favorite", journalHandler.ToggleFavorite)
		r.Post("/{id}/share", journalHandler.Share)
	})

	// Attachment uploads
	r.Post("/api/uploads", handlers.UploadAttachment)
}
