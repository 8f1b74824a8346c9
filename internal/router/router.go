// Package router sets up all HTTP routes and middleware chains for the
// portfolio API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"devfolio/internal/handlers"
	"devfolio/internal/metrics"
	"devfolio/internal/middleware"
)

// Deps holds what the routes are served by.
type Deps struct {
	Public  *handlers.Public
	Admin   *handlers.Admin
	Themes  *handlers.Themes
	Health  http.Handler
	Metrics *metrics.Metrics
	// APIKey guards /api/admin. Empty leaves it open.
	APIKey string
	// Limiter throttles public writes. Nil disables rate limiting.
	Limiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger(d.Metrics))
	r.Use(middleware.SecureHeaders)

	r.Method(http.MethodGet, "/health", d.Health)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public reads.
		r.Get("/projects", d.Public.Projects)
		r.Get("/settings", d.Public.Settings)
		r.Get("/theme", d.Public.ActiveTheme)
		r.Get("/theme.css", d.Public.ActiveThemeCSS)

		// Public writes, rate limited per client IP.
		r.Group(func(r chi.Router) {
			if d.Limiter != nil {
				r.Use(d.Limiter.Middleware)
			}
			r.Post("/inquiries", d.Public.SubmitInquiry)
			r.Post("/chats", d.Public.StartChat)
			r.Post("/chats/{id}/messages", d.Public.AppendChatMessage)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAPIKey(d.APIKey))

			r.Post("/login", d.Admin.Login)
			r.Post("/users", d.Admin.UserCreate)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", d.Admin.ProjectsList)
				r.Post("/", d.Admin.ProjectCreate)
				r.Get("/{id}", d.Admin.ProjectGet)
				r.Patch("/{id}", d.Admin.ProjectUpdate)
				r.Delete("/{id}", d.Admin.ProjectDelete)
			})

			r.Route("/inquiries", func(r chi.Router) {
				r.Get("/", d.Admin.InquiriesList)
				r.Get("/{id}", d.Admin.InquiryGet)
				r.Patch("/{id}", d.Admin.InquiryUpdate)
				r.Put("/{id}/status", d.Admin.InquirySetStatus)
				r.Delete("/{id}", d.Admin.InquiryDelete)
			})

			r.Patch("/settings", d.Admin.SettingsUpdate)

			r.Route("/chats", func(r chi.Router) {
				r.Get("/", d.Admin.ChatsList)
				r.Get("/{id}", d.Admin.ChatGet)
				r.Patch("/{id}", d.Admin.ChatUpdate)
				r.Delete("/{id}", d.Admin.ChatDelete)
			})

			r.Route("/themes", func(r chi.Router) {
				r.Get("/", d.Themes.List)
				r.Post("/", d.Themes.Create)
				r.Get("/{id}", d.Themes.Get)
				r.Patch("/{id}", d.Themes.Update)
				r.Delete("/{id}", d.Themes.Delete)
				r.Post("/{id}/activate", d.Themes.Activate)
				r.Post("/{id}/duplicate", d.Themes.Duplicate)
				r.Get("/{id}/history", d.Themes.History)
				r.Post("/{id}/history/{entryID}/revert", d.Themes.Revert)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	return r
}
