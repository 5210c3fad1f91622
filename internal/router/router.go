// Package router sets up all HTTP routes and middleware chains for the
// investor relations portal API. Routes are grouped into the public portal
// surface, the session-protected admin API and an internal machine surface.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"irportal/internal/handlers"
	"irportal/internal/middleware"
	"irportal/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. cronToken guards the internal endpoints;
// requestLimiter throttles the public submission endpoint.
func New(
	sessionStore *session.Store,
	admin *handlers.Admin,
	auth *handlers.Auth,
	public *handlers.Public,
	internal *handlers.Internal,
	cronToken string,
	requestLimiter *middleware.RateLimiter,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Admin API — session cookie auth with mandatory 2FA.
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)

			// 2FA — requires auth but NOT completed 2FA.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/2fa/setup", auth.TwoFASetup)
				r.Post("/2fa/verify", auth.TwoFAVerify)
			})

			// Authenticated + 2FA-verified admin area.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.Require2FA)

				r.Route("/news", func(r chi.Router) {
					r.Get("/", admin.NewsList)
					r.Post("/", admin.NewsCreate)
					r.Get("/{id}", admin.NewsGet)
					r.Patch("/{id}", admin.NewsUpdate)
					r.Delete("/{id}", admin.NewsDelete)
					r.Get("/{id}/stats", admin.NewsStats)
				})

				// Taxonomy management is restricted to the admin role;
				// editors only work with existing categories.
				r.Route("/categories", func(r chi.Router) {
					r.Get("/", admin.CategoriesList)
					r.With(middleware.RequireAdmin).Post("/", admin.CategoryCreate)
					r.With(middleware.RequireAdmin).Delete("/{id}", admin.CategoryDelete)
				})

				r.Route("/projects", func(r chi.Router) {
					r.Get("/", admin.ProjectsList)
					r.Post("/", admin.ProjectCreate)
					r.Patch("/{id}", admin.ProjectUpdate)
					r.Delete("/{id}", admin.ProjectDelete)
				})

				r.Route("/requests", func(r chi.Router) {
					r.Get("/", admin.RequestsList)
					r.Patch("/{id}", admin.RequestSetStatus)
				})

				r.With(middleware.RequireAdmin).Put("/profile/{key}", admin.ProfilePut)
				r.Post("/uploads/presign", admin.PresignUpload)
			})
		})

		// Internal machine endpoints — static token auth.
		r.Route("/internal", func(r chi.Router) {
			r.Use(middleware.CronToken(cronToken))
			r.Post("/publish-scheduled", internal.PublishScheduled)
		})

		// Public portal API.
		r.Get("/news", public.NewsList)
		r.Get("/news/{idOrSlug}", public.NewsDetail)
		r.Get("/projects", public.ProjectsList)
		r.Get("/profile", public.Profile)
		r.With(requestLimiter.Middleware).Post("/requests", public.RequestCreate)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
