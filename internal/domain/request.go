package domain

import "time"

type RequestState string

const (
	RequestPending RequestState = "PENDING"
	RequestConfirm RequestState = "CONFIRM"
	RequestReject  RequestState = "REJECT"
	RequestCancel  RequestState = "CANCEL"
)

// Active means the request still occupies the (requester, event) slot.
func (s RequestState) Active() bool {
	return s == RequestPending || s == RequestConfirm
}

type Request struct {
	ID          int64
	EventID     int64
	RequesterID int64
	Created     time.Time
	State       RequestState
}

// ConfirmOutcome reports what a confirmation did: the updated request and,
// when the capacity got exhausted, the ids bulk-rejected by the cascade.
type ConfirmOutcome struct {
	Request      *Request
	LimitReached bool
	AutoRejected []int64
}

// CheckConfirm validates a confirmation against the current capacity picture.
// The caller must hold the event row lock while evaluating it.
func CheckConfirm(reqState RequestState, participantLimit, confirmed int64) error {
	if reqState == RequestConfirm {
		return ErrValidation("request is already confirmed")
	}
	if reqState == RequestCancel {
		return ErrValidation("a canceled request cannot be confirmed")
	}
	if participantLimit > 0 && confirmed >= participantLimit {
		return ErrConflictMeta("participant limit reached", map[string]string{
			"reason": "capacity_full",
		})
	}
	return nil
}

// CascadeAfterConfirm reports whether confirming one more request exhausts
// the capacity, which must bulk-reject every remaining pending request.
func CascadeAfterConfirm(participantLimit, confirmedBefore int64) bool {
	return participantLimit > 0 && confirmedBefore+1 >= participantLimit
}
