package rest

import (
	"net/http"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/gorden73/Explore-with-me-sub000/internal/transport/rest/response"
)

func (h *Handler) addRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	eventID, err := queryInt(r, "eventId", 0)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if eventID <= 0 {
		writeErr(w, r, domain.ErrValidationMeta("invalid query parameter", map[string]string{
			"eventId": "must be a positive integer",
		}))
		return
	}

	rq, err := h.requests.Add(r.Context(), userID, eventID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, toRequestResponse(*rq))
}

func (h *Handler) listMyRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	reqs, err := h.requests.ListMine(r.Context(), userID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toRequestResponses(reqs))
}

func (h *Handler) cancelMyRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	requestID, err := pathID(r, "requestId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	rq, err := h.requests.CancelByRequester(r.Context(), userID, requestID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toRequestResponse(*rq))
}

func (h *Handler) listEventRequests(w http.ResponseWriter, r *http.Request) {
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

	reqs, err := h.requests.ListForEvent(r.Context(), userID, eventID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toRequestResponses(reqs))
}

func (h *Handler) confirmRequest(w http.ResponseWriter, r *http.Request) {
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
	requestID, err := pathID(r, "reqId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	outcome, err := h.requests.Confirm(r.Context(), userID, eventID, requestID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toConfirmResponse(outcome))
}

func (h *Handler) rejectRequest(w http.ResponseWriter, r *http.Request) {
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
	requestID, err := pathID(r, "reqId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	rq, err := h.requests.Reject(r.Context(), userID, eventID, requestID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toRequestResponse(*rq))
}
