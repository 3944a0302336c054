package rest

import (
	"net/http"

	"github.com/gorden73/Explore-with-me-sub000/internal/transport/rest/response"
)

func (h *Handler) createCompilation(w http.ResponseWriter, r *http.Request) {
	var req newCompilationRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, r, err)
		return
	}

	v, err := h.compilations.Create(r.Context(), req.Title, req.Pinned, req.Events)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, toCompilationResponse(*v))
}

func (h *Handler) deleteCompilation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "compId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	if err := h.compilations.Delete(r.Context(), id); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addCompilationEvent(w http.ResponseWriter, r *http.Request) {
	compID, err := pathID(r, "compId")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	if err := h.compilations.AddEvent(r.Context(), compID, eventID); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeCompilationEvent(w http.ResponseWriter, r *http.Request) {
	compID, err := pathID(r, "compId")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	if err := h.compilations.RemoveEvent(r.Context(), compID, eventID); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pinCompilation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "compId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	if err := h.compilations.Pin(r.Context(), id); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unpinCompilation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "compId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	if err := h.compilations.Unpin(r.Context(), id); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getCompilation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "compId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	v, err := h.compilations.Get(r.Context(), id)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toCompilationResponse(*v))
}

func (h *Handler) listCompilations(w http.ResponseWriter, r *http.Request) {
	pinned, err := queryBoolPtr(r, "pinned")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	from, size, err := page(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	views, err := h.compilations.List(r.Context(), pinned, int(from), int(size))
	if err != nil {
		writeErr(w, r, err)
		return
	}

	out := make([]compilationResponse, len(views))
	for i, v := range views {
		out[i] = toCompilationResponse(v)
	}
	response.Data(w, http.StatusOK, out)
}
