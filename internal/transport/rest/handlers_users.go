package rest

import (
	"net/http"

	"github.com/gorden73/Explore-with-me-sub000/internal/transport/rest/response"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req newUserRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, r, err)
		return
	}

	v, err := h.users.Register(r.Context(), req.Email, req.Name)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, toUserResponse(*v))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ids, err := queryIDs(r, "ids")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	from, size, err := page(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	views, err := h.users.List(r.Context(), ids, int(from), int(size))
	if err != nil {
		writeErr(w, r, err)
		return
	}

	out := make([]userResponse, len(views))
	for i, v := range views {
		out[i] = toUserResponse(v)
	}
	response.Data(w, http.StatusOK, out)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
