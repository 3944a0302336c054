package domain

import (
	"strings"
	"time"
)

type EventState string

const (
	StatePending   EventState = "PENDING"
	StatePublished EventState = "PUBLISHED"
	StateCanceled  EventState = "CANCELED"
	StateReject    EventState = "REJECT"
)

func (s EventState) Valid() bool {
	return s == StatePending || s == StatePublished || s == StateCanceled || s == StateReject
}

// Terminal states never transition again; only PENDING is mutable.
func (s EventState) Terminal() bool { return s != StatePending }

// MinEventLead is the minimum gap between "now" and a user-supplied event date.
const MinEventLead = 2 * time.Hour

type Event struct {
	ID                int64
	Annotation        string
	Description       string
	CategoryID        int64
	EventDate         time.Time
	Paid              bool
	ParticipantLimit  int64 // 0 = unlimited
	RequestModeration bool
	Title             string
	InitiatorID       int64

	State       EventState
	CreatedOn   time.Time
	PublishedOn *time.Time
}

func NewEvent(initiatorID, categoryID int64, annotation, description, title string, eventDate time.Time, paid bool, participantLimit int64, requestModeration bool, now time.Time) (*Event, error) {
	annotation = strings.TrimSpace(annotation)
	description = strings.TrimSpace(description)
	title = strings.TrimSpace(title)

	if len(annotation) < 20 || len(annotation) > 2000 {
		return nil, ErrValidation("annotation must be 20-2000 chars")
	}
	if len(description) < 20 || len(description) > 7000 {
		return nil, ErrValidation("description must be 20-7000 chars")
	}
	if len(title) < 3 || len(title) > 120 {
		return nil, ErrValidation("title must be 3-120 chars")
	}
	if participantLimit < 0 {
		return nil, ErrValidation("participant limit must be >= 0 (0 means unlimited)")
	}
	if eventDate.Before(now.Add(MinEventLead)) {
		return nil, ErrValidationMeta("invalid event date", map[string]string{
			"event_date": "must be at least two hours from now",
		})
	}

	return &Event{
		Annotation:        annotation,
		Description:       description,
		CategoryID:        categoryID,
		EventDate:         eventDate.UTC(),
		Paid:              paid,
		ParticipantLimit:  participantLimit,
		RequestModeration: requestModeration,
		Title:             title,
		InitiatorID:       initiatorID,
		State:             StatePending,
		CreatedOn:         now.UTC(),
	}, nil
}

func (e *Event) Publish(now time.Time) error {
	if e.State != StatePending {
		return ErrForbidden("only a pending event can be published")
	}
	t := now.UTC()
	e.State = StatePublished
	e.PublishedOn = &t
	return nil
}

func (e *Event) Reject() error {
	if e.State != StatePending {
		return ErrForbidden("only a pending event can be rejected")
	}
	e.State = StateReject
	return nil
}

func (e *Event) CancelByInitiator(userID int64) error {
	if e.InitiatorID != userID {
		return ErrForbidden("only the initiator can cancel the event")
	}
	if e.State != StatePending {
		return ErrForbidden("only a pending event can be canceled")
	}
	e.State = StateCanceled
	return nil
}

// EventPatch carries a partial update: nil fields are left untouched.
type EventPatch struct {
	Annotation        *string
	Description       *string
	CategoryID        *int64
	EventDate         *time.Time
	Paid              *bool
	ParticipantLimit  *int64
	RequestModeration *bool
	Title             *string
}

// ApplyPatch merges non-nil fields. Admin updates skip the event-date
// lead-time check; user updates must keep the two-hour gap.
func (e *Event) ApplyPatch(p EventPatch, now time.Time, byAdmin bool) error {
	if p.Annotation != nil {
		v := strings.TrimSpace(*p.Annotation)
		if len(v) < 20 || len(v) > 2000 {
			return ErrValidation("annotation must be 20-2000 chars")
		}
		e.Annotation = v
	}
	if p.Description != nil {
		v := strings.TrimSpace(*p.Description)
		if len(v) < 20 || len(v) > 7000 {
			return ErrValidation("description must be 20-7000 chars")
		}
		e.Description = v
	}
	if p.Title != nil {
		v := strings.TrimSpace(*p.Title)
		if len(v) < 3 || len(v) > 120 {
			return ErrValidation("title must be 3-120 chars")
		}
		e.Title = v
	}
	if p.CategoryID != nil {
		e.CategoryID = *p.CategoryID
	}
	if p.EventDate != nil {
		if !byAdmin && !p.EventDate.After(now.Add(MinEventLead)) {
			return ErrValidationMeta("invalid event date", map[string]string{
				"event_date": "must be more than two hours from now",
			})
		}
		e.EventDate = p.EventDate.UTC()
	}
	if p.Paid != nil {
		e.Paid = *p.Paid
	}
	if p.ParticipantLimit != nil {
		if *p.ParticipantLimit < 0 {
			return ErrValidation("participant limit must be >= 0 (0 means unlimited)")
		}
		e.ParticipantLimit = *p.ParticipantLimit
	}
	if p.RequestModeration != nil {
		if !byAdmin {
			return ErrForbidden("only admin can change request moderation")
		}
		e.RequestModeration = *p.RequestModeration
	}
	return nil
}

// EventView is the read projection of an event: counters are derived on
// every read, never persisted as aggregate state.
type EventView struct {
	Event
	ConfirmedRequests int64
	Views             int64
	Likes             int64
	Dislikes          int64
	Rating            float64
	IsAvailable       bool
}

// Snapshot derives the read projection from the raw aggregate and fresh counts.
func Snapshot(e *Event, confirmed, likes, dislikes, views int64) EventView {
	return EventView{
		Event:             *e,
		ConfirmedRequests: confirmed,
		Views:             views,
		Likes:             likes,
		Dislikes:          dislikes,
		Rating:            Rating(likes, dislikes),
		IsAvailable:       e.ParticipantLimit == 0 || confirmed < e.ParticipantLimit,
	}
}
