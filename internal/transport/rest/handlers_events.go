package rest

import (
	"net/http"
	"strings"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/event"
	"github.com/gorden73/Explore-with-me-sub000/internal/transport/rest/response"
)

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	var req newEventRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, r, err)
		return
	}
	if req.EventDate.IsZero() {
		writeErr(w, r, domain.ErrValidationMeta("invalid event date", map[string]string{
			"eventDate": "is required",
		}))
		return
	}

	// Moderation defaults to on when the field is omitted.
	moderation := true
	if req.RequestModeration != nil {
		moderation = *req.RequestModeration
	}

	v, err := h.events.Create(r.Context(), event.CreateCmd{
		InitiatorID:       userID,
		CategoryID:        req.Category,
		Annotation:        req.Annotation,
		Description:       req.Description,
		Title:             req.Title,
		EventDate:         req.EventDate.Time,
		Paid:              req.Paid,
		ParticipantLimit:  req.ParticipantLimit,
		RequestModeration: moderation,
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, toEventResponse(*v))
}

func (h *Handler) listMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeErr(w, r, err)
		return
	}
	from, size, err := page(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	views, err := h.events.ListByInitiator(r.Context(), userID, int(from), int(size))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toEventResponses(views))
}

func (h *Handler) getMyEvent(w http.ResponseWriter, r *http.Request) {
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

	v, err := h.events.GetByInitiator(r.Context(), userID, eventID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toEventResponse(*v))
}

func (h *Handler) updateMyEvent(w http.ResponseWriter, r *http.Request) {
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

	var req updateEventRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, r, err)
		return
	}

	v, err := h.events.UpdateByInitiator(r.Context(), userID, eventID, req.toPatch())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toEventResponse(*v))
}

func (h *Handler) cancelMyEvent(w http.ResponseWriter, r *http.Request) {
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

	v, err := h.events.CancelByUser(r.Context(), userID, eventID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toEventResponse(*v))
}

func (h *Handler) adminSearchEvents(w http.ResponseWriter, r *http.Request) {
	f, err := adminFilter(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	views, err := h.events.SearchAdmin(r.Context(), f)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toEventResponses(views))
}

func (h *Handler) adminUpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	var req updateEventRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, r, err)
		return
	}

	v, err := h.events.UpdateByAdmin(r.Context(), eventID, req.toPatch())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toEventResponse(*v))
}

func (h *Handler) publishEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	v, err := h.events.Publish(r.Context(), eventID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toEventResponse(*v))
}

func (h *Handler) rejectEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	v, err := h.events.Reject(r.Context(), eventID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toEventResponse(*v))
}

func (h *Handler) publicSearchEvents(w http.ResponseWriter, r *http.Request) {
	f, err := publicFilter(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	views, err := h.events.SearchPublic(r.Context(), f, clientIP(r))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toEventResponses(views))
}

func (h *Handler) getPublicEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeErr(w, r, err)
		return
	}

	v, err := h.events.GetPublic(r.Context(), eventID, clientIP(r))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, toEventResponse(*v))
}

func publicFilter(r *http.Request) (event.PublicFilter, error) {
	var f event.PublicFilter

	f.Text = strings.TrimSpace(r.URL.Query().Get("text"))

	categories, err := queryIDs(r, "categories")
	if err != nil {
		return f, err
	}
	f.Categories = categories

	if f.Paid, err = queryBoolPtr(r, "paid"); err != nil {
		return f, err
	}
	if f.OnlyAvailable, err = queryBool(r, "onlyAvailable", false); err != nil {
		return f, err
	}

	start, err := queryTime(r, "rangeStart")
	if err != nil {
		return f, err
	}
	end, err := queryTime(r, "rangeEnd")
	if err != nil {
		return f, err
	}
	if start != nil {
		f.RangeStart = &start.Time
	}
	if end != nil {
		f.RangeEnd = &end.Time
	}

	switch raw := r.URL.Query().Get("sort"); raw {
	case "", string(event.SortEventDate):
		f.Sort = event.SortEventDate
	case string(event.SortViews):
		f.Sort = event.SortViews
	case string(event.SortRating):
		f.Sort = event.SortRating
	default:
		return f, domain.ErrValidationMeta("invalid query parameter", map[string]string{
			"sort": "must be EVENT_DATE, VIEWS or RATING",
		})
	}

	from, size, err := page(r)
	if err != nil {
		return f, err
	}
	f.From = int(from)
	f.Size = int(size)
	return f, nil
}

func adminFilter(r *http.Request) (event.AdminFilter, error) {
	var f event.AdminFilter

	users, err := queryIDs(r, "users")
	if err != nil {
		return f, err
	}
	f.Users = users

	categories, err := queryIDs(r, "categories")
	if err != nil {
		return f, err
	}
	f.Categories = categories

	for _, raw := range queryStrings(r, "states") {
		st := domain.EventState(raw)
		if !st.Valid() {
			return f, domain.ErrValidationMeta("invalid query parameter", map[string]string{
				"states": "unknown state " + raw,
			})
		}
		f.States = append(f.States, st)
	}

	start, err := queryTime(r, "rangeStart")
	if err != nil {
		return f, err
	}
	end, err := queryTime(r, "rangeEnd")
	if err != nil {
		return f, err
	}
	if start != nil {
		f.RangeStart = &start.Time
	}
	if end != nil {
		f.RangeEnd = &end.Time
	}

	from, size, err := page(r)
	if err != nil {
		return f, err
	}
	f.From = int(from)
	f.Size = int(size)
	return f, nil
}
