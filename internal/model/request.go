package model

import "github.com/asyachem/explore-events/internal/apperr"

// Request is a user's attempt to reserve a seat at an event. At most one
// request may exist per (event, requester) pair.
type Request struct {
	ID          string        `json:"id"`
	EventID     string        `json:"event"`
	RequesterID string        `json:"requester"`
	Status      RequestStatus `json:"status"`
	Created     DateTime      `json:"created"`
}

// StatusUpdate is the organizer's batch decision payload.
type StatusUpdate struct {
	RequestIDs []string      `json:"requestIds"`
	Status     RequestStatus `json:"status"`
}

// StatusUpdateResult reports which requests were moved by a batch update.
type StatusUpdateResult struct {
	ConfirmedRequests []Request `json:"confirmedRequests"`
	RejectedRequests  []Request `json:"rejectedRequests"`
}

// InitialRequestStatus is the admission rule for a newly created request:
// moderated events with a finite limit start PENDING, everything else is
// auto-confirmed. A zero limit bypasses moderation entirely.
func InitialRequestStatus(requestModeration bool, participantLimit int) RequestStatus {
	if requestModeration && participantLimit > 0 {
		return RequestPending
	}
	return RequestConfirmed
}

// AdjudicateBatch applies an organizer's confirm/reject decision to a batch
// of requests against event, in the order supplied. It mutates event and
// requests in place and must run with the event row locked; callers discard
// all mutations when an error is returned (the batch is all-or-nothing).
//
// Rules:
//   - the event must require moderation (requestModeration set and a
//     finite participant limit), otherwise nothing needs confirming;
//   - every request in the batch must be PENDING;
//   - confirmations stop the whole batch once the limit is reached;
//   - rejections are unconditional.
func AdjudicateBatch(event *Event, requests []*Request, target RequestStatus) (*StatusUpdateResult, error) {
	if target != RequestConfirmed && target != RequestRejected {
		return nil, apperr.Conflict("unsupported target status: %s", target)
	}
	if !event.RequestModeration || event.ParticipantLimit == 0 {
		return nil, apperr.Conflict("confirmation is not required: moderation is off or the limit is zero")
	}

	// All-or-nothing precondition: a single non-pending member fails the
	// whole batch before anything is touched.
	for _, req := range requests {
		if !req.Status.CanTransition(target) {
			return nil, apperr.Conflict("request %s must be in PENDING status", req.ID)
		}
	}

	result := &StatusUpdateResult{
		ConfirmedRequests: []Request{},
		RejectedRequests:  []Request{},
	}
	for _, req := range requests {
		if target == RequestConfirmed {
			if event.ConfirmedRequests >= event.ParticipantLimit {
				return nil, apperr.Conflict("the participant limit has been reached")
			}
			req.Status = RequestConfirmed
			event.ConfirmedRequests++
			result.ConfirmedRequests = append(result.ConfirmedRequests, *req)
			continue
		}
		req.Status = RequestRejected
		result.RejectedRequests = append(result.RejectedRequests, *req)
	}
	return result, nil
}
