package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/homeflix/homeflix/internal/auth"
	"github.com/homeflix/homeflix/internal/handlers"
	"github.com/homeflix/homeflix/internal/middleware"
)

// Handlers collects every resource handler the router mounts
type Handlers struct {
	Auth     *handlers.AuthHandler
	Movies   *handlers.MovieHandler
	Tags     *handlers.TagHandler
	Genres   *handlers.GenreHandler
	Listings *handlers.ListingHandler
	Profiles *handlers.ProfileHandler
}

// RegisterRoutes registers all application routes. Role checks live in
// the service layer; the router only distinguishes public from
// token-authenticated.
func RegisterRoutes(router chi.Router, h Handlers, authenticator auth.TokenAuthenticator, rateLimit middleware.RateLimitConfig) {
	// Public routes, rate limited by client IP
	router.With(middleware.RateLimitByIP(rateLimit)).Post("/auth/register", h.Auth.Register)
	router.With(middleware.RateLimitByIP(rateLimit)).Post("/auth/login", h.Auth.Login)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(auth.TokenAuth(authenticator))

		r.Post("/auth/logout", h.Auth.Logout)
		r.Post("/auth/logoutall", h.Auth.LogoutAll)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", h.Movies.List)
			r.Post("/", h.Movies.Create)
			r.Get("/{id}", h.Movies.Get)
			r.Put("/{id}", h.Movies.Update)
			r.Patch("/{id}", h.Movies.Update)
			r.Delete("/{id}", h.Movies.Delete)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.Tags.List)
			r.Post("/", h.Tags.Create)
			r.Get("/{id}", h.Tags.Get)
			r.Put("/{id}", h.Tags.Update)
			r.Patch("/{id}", h.Tags.Update)
			r.Delete("/{id}", h.Tags.Delete)
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", h.Genres.List)
			r.Post("/", h.Genres.Create)
			r.Get("/{id}", h.Genres.Get)
			r.Put("/{id}", h.Genres.Update)
			r.Patch("/{id}", h.Genres.Update)
			r.Delete("/{id}", h.Genres.Delete)
		})

		r.Route("/listings", func(r chi.Router) {
			r.Get("/", h.Listings.List)
			r.Post("/", h.Listings.Create)
			r.Get("/{id}", h.Listings.Get)
			r.Put("/{id}", h.Listings.Update)
			r.Patch("/{id}", h.Listings.Update)
			r.Delete("/{id}", h.Listings.Delete)
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", h.Profiles.List)
			r.Post("/", h.Profiles.Create)
			r.Get("/{id}", h.Profiles.Get)
			r.Put("/{id}", h.Profiles.Update)
			r.Patch("/{id}", h.Profiles.Update)
			r.Delete("/{id}", h.Profiles.Delete)
		})
	})
}
