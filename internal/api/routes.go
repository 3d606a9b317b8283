package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// SetupRoutes configures all HTTP routes and returns the router.
func SetupRoutes(handlers *Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(RecoveryMiddleware(logger))
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware())

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1/calendars", func(r chi.Router) {
		r.Post("/", handlers.CreateCalendar)

		r.Route("/{slug}", func(r chi.Router) {
			r.Get("/", handlers.GetCalendar)
			r.Get("/days", handlers.GetDays)
			r.Get("/reminder.ics", handlers.GetReminder)

			// Role verification and logout
			r.Post("/access", handlers.VerifyAccess)
			r.Post("/admin", handlers.VerifyAdmin)
			r.Post("/logout", handlers.Logout)

			// Guestbook
			r.Get("/guestbook", handlers.GetGuestbook)
			r.Post("/guestbook", handlers.AddGuestbookMessage)

			// Admin-session endpoints (checked inside the handlers)
			r.Put("/days/{day}", handlers.UpdateDay)
			r.Put("/settings", handlers.UpdateSettings)
			r.Put("/codes", handlers.UpdateCodes)
		})
	})

	return r
}
