package rest

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/category"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/compilation"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/event"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/rating"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/request"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/user"
)

type Handler struct {
	users        *user.Service
	categories   *category.Service
	events       *event.Service
	requests     *request.Service
	ratings      *rating.Service
	compilations *compilation.Service
}

func NewHandler(
	users *user.Service,
	categories *category.Service,
	events *event.Service,
	requests *request.Service,
	ratings *rating.Service,
	compilations *compilation.Service,
) *Handler {
	return &Handler{
		users:        users,
		categories:   categories,
		events:       events,
		requests:     requests,
		ratings:      ratings,
		compilations: compilations,
	}
}

func decode(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return domain.ErrValidation("malformed request body")
	}
	return nil
}
