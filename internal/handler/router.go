package handler

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the full API router.
func NewRouter(
	events *EventHandler,
	requests *RequestHandler,
	comments *CommentHandler,
	admin *AdminHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger)                  // structured access log
	r.Use(CORS)

	r.Get("/health", HealthCheck)

	// Public surface.
	r.Route("/events", func(r chi.Router) {
		r.Get("/", events.PublicSearch)
		r.Get("/{eventId}", events.PublicGet)
		r.Get("/{eventId}/comments", comments.PublicList)
		r.Get("/{eventId}/comments/{commentId}", comments.PublicGet)
	})
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", admin.ListCategories)
		r.Get("/{catId}", admin.GetCategory)
	})
	r.Route("/compilations", func(r chi.Router) {
		r.Get("/", admin.ListCompilations)
		r.Get("/{compId}", admin.GetCompilation)
	})

	// Per-user (private) surface.
	r.Route("/users/{userId}", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", events.ListOwn)
			r.Post("/", events.Create)
			r.Get("/{eventId}", events.GetOwn)
			r.Patch("/{eventId}", events.UpdateOwn)
			r.Get("/{eventId}/requests", requests.ListForEvent)
			r.Patch("/{eventId}/requests", requests.ChangeStatus)
		})
		r.Route("/requests", func(r chi.Router) {
			r.Get("/", requests.ListOwn)
			r.Post("/", requests.Create)
			r.Patch("/{requestId}/cancel", requests.Cancel)
		})
		r.Route("/comments", func(r chi.Router) {
			r.Get("/", comments.ListOwn)
			r.Post("/", comments.Create)
			r.Patch("/{commentId}", comments.Update)
			r.Delete("/{commentId}", comments.Delete)
		})
	})

	// Moderation surface.
	r.Route("/admin", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", admin.ListUsers)
			r.Post("/", admin.CreateUser)
			r.Delete("/{userId}", admin.DeleteUser)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", admin.CreateCategory)
			r.Patch("/{catId}", admin.UpdateCategory)
			r.Delete("/{catId}", admin.DeleteCategory)
		})
		r.Route("/events", func(r chi.Router) {
			r.Get("/", events.AdminSearch)
			r.Patch("/{eventId}", events.AdminUpdate)
		})
		r.Route("/compilations", func(r chi.Router) {
			r.Post("/", admin.CreateCompilation)
			r.Patch("/{compId}", admin.UpdateCompilation)
			r.Delete("/{compId}", admin.DeleteCompilation)
		})
		r.Route("/comments", func(r chi.Router) {
			r.Get("/", comments.Pending)
			r.Patch("/{commentId}/approve", comments.Approve)
			r.Patch("/{commentId}/reject", comments.Reject)
		})
	})

	return r
}
