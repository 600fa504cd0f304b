package model

import (
	"fmt"
	"sync"
	"testing"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialRequestStatus(t *testing.T) {
	// Moderated with a finite limit is the only combination that queues.
	assert.Equal(t, RequestPending, InitialRequestStatus(true, 5))

	assert.Equal(t, RequestConfirmed, InitialRequestStatus(false, 5))
	assert.Equal(t, RequestConfirmed, InitialRequestStatus(false, 0))
	// A zero limit bypasses moderation even when the flag is set.
	assert.Equal(t, RequestConfirmed, InitialRequestStatus(true, 0))
}

func moderatedEvent(limit, confirmed int) *Event {
	return &Event{
		ID:                "evt-1",
		ParticipantLimit:  limit,
		RequestModeration: true,
		State:             EventPublished,
		ConfirmedRequests: confirmed,
	}
}

func pendingRequests(n int) []*Request {
	reqs := make([]*Request, n)
	for i := range reqs {
		reqs[i] = &Request{ID: fmt.Sprintf("req-%d", i+1), EventID: "evt-1", Status: RequestPending}
	}
	return reqs
}

func TestAdjudicateBatch_ConfirmWithinLimit(t *testing.T) {
	event := moderatedEvent(3, 1)
	reqs := pendingRequests(2)

	result, err := AdjudicateBatch(event, reqs, RequestConfirmed)
	require.NoError(t, err)

	assert.Len(t, result.ConfirmedRequests, 2)
	assert.Empty(t, result.RejectedRequests)
	assert.Equal(t, 3, event.ConfirmedRequests)
	for _, req := range reqs {
		assert.Equal(t, RequestConfirmed, req.Status)
	}
}

func TestAdjudicateBatch_PreservesSuppliedOrder(t *testing.T) {
	event := moderatedEvent(10, 0)
	reqs := []*Request{
		{ID: "req-c", Status: RequestPending},
		{ID: "req-a", Status: RequestPending},
		{ID: "req-b", Status: RequestPending},
	}

	result, err := AdjudicateBatch(event, reqs, RequestConfirmed)
	require.NoError(t, err)

	ids := make([]string, 0, len(result.ConfirmedRequests))
	for _, req := range result.ConfirmedRequests {
		ids = append(ids, req.ID)
	}
	assert.Equal(t, []string{"req-c", "req-a", "req-b"}, ids)
}

func TestAdjudicateBatch_LimitReachedAbortsWholeBatch(t *testing.T) {
	event := moderatedEvent(2, 2)
	reqs := pendingRequests(1)

	_, err := AdjudicateBatch(event, reqs, RequestConfirmed)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, 2, event.ConfirmedRequests)
}

func TestAdjudicateBatch_LimitHitMidBatchIsConflict(t *testing.T) {
	// Room for one seat but two requests: strict policy fails the whole
	// batch instead of soft-rejecting the overflow.
	event := moderatedEvent(2, 1)
	reqs := pendingRequests(2)

	_, err := AdjudicateBatch(event, reqs, RequestConfirmed)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestAdjudicateBatch_NonPendingMemberFailsBatch(t *testing.T) {
	event := moderatedEvent(5, 0)
	reqs := pendingRequests(3)
	reqs[1].Status = RequestCanceled

	_, err := AdjudicateBatch(event, reqs, RequestConfirmed)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// The precondition runs before any mutation.
	assert.Equal(t, RequestPending, reqs[0].Status)
	assert.Equal(t, RequestPending, reqs[2].Status)
	assert.Equal(t, 0, event.ConfirmedRequests)
}

func TestAdjudicateBatch_RejectIgnoresCapacity(t *testing.T) {
	event := moderatedEvent(1, 1)
	reqs := pendingRequests(3)

	result, err := AdjudicateBatch(event, reqs, RequestRejected)
	require.NoError(t, err)

	assert.Len(t, result.RejectedRequests, 3)
	assert.Empty(t, result.ConfirmedRequests)
	assert.Equal(t, 1, event.ConfirmedRequests)
}

func TestAdjudicateBatch_ModerationNotRequired(t *testing.T) {
	tests := []struct {
		name       string
		moderation bool
		limit      int
	}{
		{"moderation off", false, 5},
		{"unlimited", true, 0},
		{"both", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &Event{RequestModeration: tt.moderation, ParticipantLimit: tt.limit}
			_, err := AdjudicateBatch(event, pendingRequests(1), RequestConfirmed)
			require.Error(t, err)
			assert.True(t, apperr.IsConflict(err))
		})
	}
}

func TestAdjudicateBatch_UnsupportedTarget(t *testing.T) {
	event := moderatedEvent(5, 0)
	_, err := AdjudicateBatch(event, pendingRequests(1), RequestCanceled)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

// Limit of one, two pending requesters: confirming the first fills the
// event, confirming the second fails and changes nothing.
func TestAdjudicateBatch_LimitOneScenario(t *testing.T) {
	event := moderatedEvent(1, 0)
	reqA := &Request{ID: "req-a", Status: RequestPending}
	reqB := &Request{ID: "req-b", Status: RequestPending}

	result, err := AdjudicateBatch(event, []*Request{reqA}, RequestConfirmed)
	require.NoError(t, err)
	require.Len(t, result.ConfirmedRequests, 1)
	assert.Equal(t, RequestConfirmed, reqA.Status)
	assert.Equal(t, 1, event.ConfirmedRequests)

	_, err = AdjudicateBatch(event, []*Request{reqB}, RequestConfirmed)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, RequestPending, reqB.Status)
	assert.Equal(t, 1, event.ConfirmedRequests)
}

// Concurrent batches serialized on the event (as the row lock does in the
// repository) must never confirm past the limit, and the counter must
// always equal the number of CONFIRMED requests.
func TestAdjudicateBatch_SerializedConcurrencyNeverExceedsLimit(t *testing.T) {
	const limit = 10
	const attempts = 50

	event := moderatedEvent(limit, 0)
	reqs := pendingRequests(attempts)

	var (
		mu        sync.Mutex // stands in for the event row lock
		wg        sync.WaitGroup
		confirmed int
		conflicts int
	)
	for _, req := range reqs {
		wg.Add(1)
		go func(req *Request) {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			if _, err := AdjudicateBatch(event, []*Request{req}, RequestConfirmed); err != nil {
				conflicts++
				return
			}
			confirmed++
		}(req)
	}
	wg.Wait()

	assert.Equal(t, limit, confirmed)
	assert.Equal(t, attempts-limit, conflicts)
	assert.Equal(t, limit, event.ConfirmedRequests)

	// Counter invariant against the row-level truth.
	actual := 0
	for _, req := range reqs {
		if req.Status == RequestConfirmed {
			actual++
		}
	}
	assert.Equal(t, event.ConfirmedRequests, actual)
}
