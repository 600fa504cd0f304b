package model

// EventState is the publication status of an event.
type EventState string

const (
	EventPending   EventState = "PENDING"
	EventPublished EventState = "PUBLISHED"
	EventCanceled  EventState = "CANCELED"
)

// RequestStatus is the lifecycle status of a participation request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestConfirmed RequestStatus = "CONFIRMED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestCanceled  RequestStatus = "CANCELED"
)

// CommentStatus is the moderation status of a comment.
type CommentStatus string

const (
	CommentPending  CommentStatus = "PENDING"
	CommentApproved CommentStatus = "APPROVED"
	CommentRejected CommentStatus = "REJECTED"
)

// State actions accepted in event update payloads.
const (
	ActionSendToReview = "SEND_TO_REVIEW"
	ActionCancelReview = "CANCEL_REVIEW"
	ActionPublishEvent = "PUBLISH_EVENT"
	ActionRejectEvent  = "REJECT_EVENT"
)

// Explicit transition tables. An entity status may only move along these
// edges; everything else is a conflict. The one exception is the
// requester's self-cancel, which is allowed from any request status (see
// RequestRepository.Cancel).
var (
	eventTransitions = map[EventState][]EventState{
		EventPending:   {EventPublished, EventCanceled},
		EventPublished: {},
		EventCanceled:  {EventPending},
	}

	requestTransitions = map[RequestStatus][]RequestStatus{
		RequestPending:   {RequestConfirmed, RequestRejected, RequestCanceled},
		RequestConfirmed: {RequestCanceled},
		RequestRejected:  {RequestCanceled},
		RequestCanceled:  {},
	}

	commentTransitions = map[CommentStatus][]CommentStatus{
		CommentPending:  {CommentApproved, CommentRejected},
		CommentApproved: {CommentPending},
		CommentRejected: {CommentPending},
	}
)

// CanTransition reports whether an event may move from s to the given state.
func (s EventState) CanTransition(to EventState) bool {
	return contains(eventTransitions[s], to)
}

// CanTransition reports whether a request may move from s to the given status.
func (s RequestStatus) CanTransition(to RequestStatus) bool {
	return contains(requestTransitions[s], to)
}

// CanTransition reports whether a comment may move from s to the given status.
func (s CommentStatus) CanTransition(to CommentStatus) bool {
	return contains(commentTransitions[s], to)
}

// ParseEventState converts a string into an EventState.
func ParseEventState(s string) (EventState, bool) {
	switch EventState(s) {
	case EventPending, EventPublished, EventCanceled:
		return EventState(s), true
	}
	return "", false
}

func contains[T comparable](xs []T, x T) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
