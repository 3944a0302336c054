package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gorden73/Explore-with-me-sub000/internal/security"
	"github.com/gorden73/Explore-with-me-sub000/internal/transport/rest/response"
)

// Pinger reports store health for the readiness endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	Handler *Handler
	Store   Pinger

	AdminVerifier security.AdminTokenVerifier
	AdminIssuer   string

	Limiter         RateLimiter
	RateLimit       int
	RateLimitWindow time.Duration
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(HTTPLogger)
	r.Use(SecurityHeaders)
	if deps.Limiter != nil && deps.RateLimit > 0 {
		r.Use(RateLimitMiddleware(deps.Limiter, deps.RateLimit, deps.RateLimitWindow))
	}

	h := deps.Handler

	r.Get("/healthz", healthz(deps.Store))

	// Public surface.
	r.Get("/events", h.publicSearchEvents)
	r.Get("/events/{eventId}", h.getPublicEvent)
	r.Get("/categories", h.listCategories)
	r.Get("/categories/{catId}", h.getCategory)
	r.Get("/compilations", h.listCompilations)
	r.Get("/compilations/{compId}", h.getCompilation)

	// Per-user surface.
	r.Route("/users/{userId}", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.listMyEvents)
			r.Post("/", h.createEvent)
			r.Get("/{eventId}", h.getMyEvent)
			r.Patch("/{eventId}", h.updateMyEvent)
			r.Patch("/{eventId}/cancel", h.cancelMyEvent)

			r.Get("/{eventId}/requests", h.listEventRequests)
			r.Patch("/{eventId}/requests/{reqId}/confirm", h.confirmRequest)
			r.Patch("/{eventId}/requests/{reqId}/reject", h.rejectRequest)

			r.Post("/{eventId}/like", h.addLike)
			r.Get("/{eventId}/like", h.listLikes)
			r.Delete("/{eventId}/like", h.removeLike)
			r.Post("/{eventId}/dislike", h.addDislike)
			r.Get("/{eventId}/dislike", h.listDislikes)
			r.Delete("/{eventId}/dislike", h.removeDislike)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Get("/", h.listMyRequests)
			r.Post("/", h.addRequest)
			r.Patch("/{requestId}/cancel", h.cancelMyRequest)
		})
	})

	// Admin surface.
	r.Route("/admin", func(r chi.Router) {
		r.Use(AdminAuthMiddleware(deps.AdminVerifier, deps.AdminIssuer))

		r.Post("/users", h.createUser)
		r.Get("/users", h.listUsers)
		r.Delete("/users/{userId}", h.deleteUser)

		r.Post("/categories", h.createCategory)
		r.Patch("/categories/{catId}", h.renameCategory)
		r.Delete("/categories/{catId}", h.deleteCategory)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.adminSearchEvents)
			r.Put("/{eventId}", h.adminUpdateEvent)
			r.Patch("/{eventId}/publish", h.publishEvent)
			r.Patch("/{eventId}/reject", h.rejectEvent)
			r.Get("/{eventId}/likes", h.adminListLikes)
			r.Get("/{eventId}/dislikes", h.adminListDislikes)
		})

		r.Route("/compilations", func(r chi.Router) {
			r.Post("/", h.createCompilation)
			r.Delete("/{compId}", h.deleteCompilation)
			r.Patch("/{compId}/events/{eventId}", h.addCompilationEvent)
			r.Delete("/{compId}/events/{eventId}", h.removeCompilationEvent)
			r.Patch("/{compId}/pin", h.pinCompilation)
			r.Delete("/{compId}/pin", h.unpinCompilation)
		})
	})

	return r
}

func healthz(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
