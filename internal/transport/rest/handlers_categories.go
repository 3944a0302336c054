package rest

import (
	"net/http"

	"github.com/gorden73/Explore-with-me-sub000/internal/transport/rest/response"
)

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req newCategoryRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, r, err)
		return
	}

	c, err := h.categories.Create(r.Context(), req.Name)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, toCategoryResponse(*c))
}

func (h *Handler) renameCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "catId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	var req newCategoryRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, r, err)
		return
	}

	c, err := h.categories.Rename(r.Context(), id, req.Name)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toCategoryResponse(*c))
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "catId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "catId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	c, err := h.categories.Get(r.Context(), id)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toCategoryResponse(*c))
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	from, size, err := page(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	cats, err := h.categories.List(r.Context(), int(from), int(size))
	if err != nil {
		writeErr(w, r, err)
		return
	}

	out := make([]categoryResponse, len(cats))
	for i, c := range cats {
		out[i] = toCategoryResponse(c)
	}
	response.Data(w, http.StatusOK, out)
}
