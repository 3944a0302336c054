// Package rest is the statistics service's HTTP surface: POST /hit and
// GET /stats, sharing the main transport's envelope and middleware.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/gorden73/Explore-with-me-sub000/internal/pkg/wiretime"
	"github.com/gorden73/Explore-with-me-sub000/internal/stats"
	mainrest "github.com/gorden73/Explore-with-me-sub000/internal/transport/rest"
	"github.com/gorden73/Explore-with-me-sub000/internal/transport/rest/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	svc   *stats.Service
	store Pinger
}

func NewHandler(svc *stats.Service, store Pinger) *Handler {
	return &Handler{svc: svc, store: store}
}

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(mainrest.RequestID)
	r.Use(mainrest.HTTPLogger)

	r.Get("/healthz", h.healthz)
	r.Post("/hit", h.recordHit)
	r.Get("/stats", h.getStats)

	return r
}

type hitRequest struct {
	App       string        `json:"app"`
	URI       string        `json:"uri"`
	IP        string        `json:"ip"`
	Timestamp wiretime.Time `json:"timestamp"`
}

type hitResponse struct {
	ID        int64         `json:"id"`
	App       string        `json:"app"`
	URI       string        `json:"uri"`
	IP        string        `json:"ip"`
	Timestamp wiretime.Time `json:"timestamp"`
}

type viewStatsResponse struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

func (h *Handler) recordHit(w http.ResponseWriter, r *http.Request) {
	var req hitRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		mainrest.WriteError(w, r, domain.ErrValidation("malformed request body"))
		return
	}

	hit, err := h.svc.RecordHit(r.Context(), req.App, req.URI, req.IP, req.Timestamp.Time)
	if err != nil {
		mainrest.WriteError(w, r, err)
		return
	}

	response.Data(w, http.StatusCreated, hitResponse{
		ID:        hit.ID,
		App:       hit.App,
		URI:       hit.URI,
		IP:        hit.IP,
		Timestamp: wiretime.New(hit.Timestamp),
	})
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := requiredTime(q.Get("start"), "start")
	if err != nil {
		mainrest.WriteError(w, r, err)
		return
	}
	end, err := requiredTime(q.Get("end"), "end")
	if err != nil {
		mainrest.WriteError(w, r, err)
		return
	}

	unique := false
	if raw := q.Get("unique"); raw == "true" {
		unique = true
	}

	rowsOut, err := h.svc.Stats(r.Context(), start, end, q["uris"], unique)
	if err != nil {
		mainrest.WriteError(w, r, err)
		return
	}

	out := make([]viewStatsResponse, len(rowsOut))
	for i, vs := range rowsOut {
		out[i] = viewStatsResponse{App: vs.App, URI: vs.URI, Hits: vs.Hits}
	}
	response.Data(w, http.StatusOK, out)
}

func requiredTime(raw, name string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, domain.ErrValidationMeta("invalid query parameter", map[string]string{
			name: "is required",
		})
	}
	t, err := wiretime.Parse(raw)
	if err != nil {
		return time.Time{}, domain.ErrValidationMeta("invalid query parameter", map[string]string{
			name: "must match " + wiretime.Layout,
		})
	}
	return t.Time, nil
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
