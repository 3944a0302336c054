package rest

import (
	"net/http"

	"github.com/gorden73/Explore-with-me-sub000/internal/transport/rest/response"
)

func (h *Handler) addLike(w http.ResponseWriter, r *http.Request) {
	h.addVote(w, r, true)
}

func (h *Handler) addDislike(w http.ResponseWriter, r *http.Request) {
	h.addVote(w, r, false)
}

func (h *Handler) addVote(w http.ResponseWriter, r *http.Request, isLike bool) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	var res any
	if isLike {
		out, err := h.ratings.AddLike(r.Context(), userID, eventID)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		res = toRatingResponse(out)
	} else {
		out, err := h.ratings.AddDislike(r.Context(), userID, eventID)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		res = toRatingResponse(out)
	}
	response.Data(w, http.StatusCreated, res)
}

func (h *Handler) removeLike(w http.ResponseWriter, r *http.Request) {
	h.removeVote(w, r, true)
}

func (h *Handler) removeDislike(w http.ResponseWriter, r *http.Request) {
	h.removeVote(w, r, false)
}

func (h *Handler) removeVote(w http.ResponseWriter, r *http.Request, isLike bool) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	var res any
	if isLike {
		out, err := h.ratings.RemoveLike(r.Context(), userID, eventID)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		res = toRatingResponse(out)
	} else {
		out, err := h.ratings.RemoveDislike(r.Context(), userID, eventID)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		res = toRatingResponse(out)
	}
	response.Data(w, http.StatusOK, res)
}

func (h *Handler) listLikes(w http.ResponseWriter, r *http.Request) {
	h.listVotes(w, r, true)
}

func (h *Handler) listDislikes(w http.ResponseWriter, r *http.Request) {
	h.listVotes(w, r, false)
}

func (h *Handler) listVotes(w http.ResponseWriter, r *http.Request, isLike bool) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	var list any
	if isLike {
		out, err := h.ratings.ListLikes(r.Context(), &userID, eventID)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		list = toLikeResponses(out)
	} else {
		out, err := h.ratings.ListDislikes(r.Context(), &userID, eventID)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		list = toLikeResponses(out)
	}
	response.Data(w, http.StatusOK, list)
}

// Admin listing skips the initiator gate.
func (h *Handler) adminListLikes(w http.ResponseWriter, r *http.Request) {
	h.adminListVotes(w, r, true)
}

func (h *Handler) adminListDislikes(w http.ResponseWriter, r *http.Request) {
	h.adminListVotes(w, r, false)
}

func (h *Handler) adminListVotes(w http.ResponseWriter, r *http.Request, isLike bool) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	var list any
	if isLike {
		out, err := h.ratings.ListLikes(r.Context(), nil, eventID)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		list = toLikeResponses(out)
	} else {
		out, err := h.ratings.ListDislikes(r.Context(), nil, eventID)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		list = toLikeResponses(out)
	}
	response.Data(w, http.StatusOK, list)
}
