package rest

import (
	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/gorden73/Explore-with-me-sub000/internal/pkg/wiretime"
	"github.com/gorden73/Explore-with-me-sub000/internal/service/rating"
)

type newUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type userResponse struct {
	ID     int64   `json:"id"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

func toUserResponse(v domain.UserView) userResponse {
	return userResponse{ID: v.ID, Email: v.Email, Name: v.Name, Rating: v.Rating}
}

type newCategoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toCategoryResponse(c domain.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name}
}

type newEventRequest struct {
	Annotation        string        `json:"annotation"`
	Category          int64         `json:"category"`
	Description       string        `json:"description"`
	EventDate         wiretime.Time `json:"eventDate"`
	Paid              bool          `json:"paid"`
	ParticipantLimit  int64         `json:"participantLimit"`
	RequestModeration *bool         `json:"requestModeration"`
	Title             string        `json:"title"`
}

type updateEventRequest struct {
	Annotation        *string        `json:"annotation"`
	Category          *int64         `json:"category"`
	Description       *string        `json:"description"`
	EventDate         *wiretime.Time `json:"eventDate"`
	Paid              *bool          `json:"paid"`
	ParticipantLimit  *int64         `json:"participantLimit"`
	RequestModeration *bool          `json:"requestModeration"`
	Title             *string        `json:"title"`
}

func (r updateEventRequest) toPatch() domain.EventPatch {
	p := domain.EventPatch{
		Annotation:        r.Annotation,
		Description:       r.Description,
		CategoryID:        r.Category,
		Paid:              r.Paid,
		ParticipantLimit:  r.ParticipantLimit,
		RequestModeration: r.RequestModeration,
		Title:             r.Title,
	}
	if r.EventDate != nil {
		t := r.EventDate.Time
		p.EventDate = &t
	}
	return p
}

type eventResponse struct {
	ID                int64          `json:"id"`
	Annotation        string         `json:"annotation"`
	Description       string         `json:"description"`
	Category          int64          `json:"category"`
	EventDate         wiretime.Time  `json:"eventDate"`
	Paid              bool           `json:"paid"`
	ParticipantLimit  int64          `json:"participantLimit"`
	RequestModeration bool           `json:"requestModeration"`
	Title             string         `json:"title"`
	Initiator         int64          `json:"initiator"`
	State             string         `json:"state"`
	CreatedOn         wiretime.Time  `json:"createdOn"`
	PublishedOn       *wiretime.Time `json:"publishedOn,omitempty"`
	ConfirmedRequests int64          `json:"confirmedRequests"`
	Views             int64          `json:"views"`
	Likes             int64          `json:"likes"`
	Dislikes          int64          `json:"dislikes"`
	Rating            float64        `json:"rating"`
	IsAvailable       bool           `json:"isAvailable"`
}

func toEventResponse(v domain.EventView) eventResponse {
	out := eventResponse{
		ID:                v.ID,
		Annotation:        v.Annotation,
		Description:       v.Description,
		Category:          v.CategoryID,
		EventDate:         wiretime.New(v.EventDate),
		Paid:              v.Paid,
		ParticipantLimit:  v.ParticipantLimit,
		RequestModeration: v.RequestModeration,
		Title:             v.Title,
		Initiator:         v.InitiatorID,
		State:             string(v.State),
		CreatedOn:         wiretime.New(v.CreatedOn),
		ConfirmedRequests: v.ConfirmedRequests,
		Views:             v.Views,
		Likes:             v.Likes,
		Dislikes:          v.Dislikes,
		Rating:            v.Rating,
		IsAvailable:       v.IsAvailable,
	}
	if v.PublishedOn != nil {
		t := wiretime.New(*v.PublishedOn)
		out.PublishedOn = &t
	}
	return out
}

func toEventResponses(views []domain.EventView) []eventResponse {
	out := make([]eventResponse, len(views))
	for i, v := range views {
		out[i] = toEventResponse(v)
	}
	return out
}

type requestResponse struct {
	ID        int64         `json:"id"`
	Event     int64         `json:"event"`
	Requester int64         `json:"requester"`
	Created   wiretime.Time `json:"created"`
	Status    string        `json:"status"`
}

func toRequestResponse(rq domain.Request) requestResponse {
	return requestResponse{
		ID:        rq.ID,
		Event:     rq.EventID,
		Requester: rq.RequesterID,
		Created:   wiretime.New(rq.Created),
		Status:    string(rq.State),
	}
}

func toRequestResponses(reqs []domain.Request) []requestResponse {
	out := make([]requestResponse, len(reqs))
	for i, rq := range reqs {
		out[i] = toRequestResponse(rq)
	}
	return out
}

type confirmResponse struct {
	Request      requestResponse `json:"request"`
	LimitReached bool            `json:"limitReached"`
	AutoRejected []int64         `json:"autoRejected,omitempty"`
}

func toConfirmResponse(o *domain.ConfirmOutcome) confirmResponse {
	return confirmResponse{
		Request:      toRequestResponse(*o.Request),
		LimitReached: o.LimitReached,
		AutoRejected: o.AutoRejected,
	}
}

type newCompilationRequest struct {
	Title  string  `json:"title"`
	Pinned bool    `json:"pinned"`
	Events []int64 `json:"events"`
}

type compilationResponse struct {
	ID     int64           `json:"id"`
	Title  string          `json:"title"`
	Pinned bool            `json:"pinned"`
	Events []eventResponse `json:"events"`
}

func toCompilationResponse(v domain.CompilationView) compilationResponse {
	return compilationResponse{
		ID:     v.ID,
		Title:  v.Title,
		Pinned: v.Pinned,
		Events: toEventResponses(v.Events),
	}
}

type ratingResponse struct {
	Event           int64   `json:"event"`
	Likes           int64   `json:"likes"`
	Dislikes        int64   `json:"dislikes"`
	Rating          float64 `json:"rating"`
	InitiatorRating float64 `json:"initiatorRating"`
}

func toRatingResponse(r *rating.EventRating) ratingResponse {
	return ratingResponse{
		Event:           r.EventID,
		Likes:           r.Likes,
		Dislikes:        r.Dislikes,
		Rating:          r.Rating,
		InitiatorRating: r.InitiatorRating,
	}
}

type likeResponse struct {
	ID     int64 `json:"id"`
	User   int64 `json:"user"`
	Event  int64 `json:"event"`
	IsLike bool  `json:"isLike"`
}

func toLikeResponses(likes []domain.Like) []likeResponse {
	out := make([]likeResponse, len(likes))
	for i, l := range likes {
		out[i] = likeResponse{ID: l.ID, User: l.UserID, Event: l.EventID, IsLike: l.IsLike}
	}
	return out
}
