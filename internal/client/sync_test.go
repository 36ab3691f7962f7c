package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   []PendingEntry
	respond func(PendingEntry) error
	gate    chan struct{} // when set, each call blocks until the gate closes
}

func (f *fakeSubmitter) CreateExchangeRequest(_ context.Context, entry PendingEntry) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, entry)
	if f.respond != nil {
		return f.respond(entry)
	}
	return nil
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	cleared  int
}

func (n *recordingNotifier) Show(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cleared++
}

func alwaysOnline(context.Context) bool  { return true }
func alwaysOffline(context.Context) bool { return false }

func entry(to int64) PendingEntry {
	return PendingEntry{ToProfileID: to, SkillID1: 5, SkillID2: 10}
}

func TestSubmit_OnlineSendsDirectly(t *testing.T) {
	q := newTestQueue(t)
	api := &fakeSubmitter{}
	c := NewCoordinator(api, q, alwaysOnline, nil)

	result, err := c.Submit(context.Background(), entry(2))
	require.NoError(t, err)
	assert.Equal(t, SubmitSent, result)
	assert.Equal(t, 1, api.callCount())

	entries, err := q.DrainAll()
	require.NoError(t, err)
	assert.Empty(t, entries, "accepted submissions must not be queued")
}

func TestSubmit_OfflineQueuesWithoutNetworkCall(t *testing.T) {
	q := newTestQueue(t)
	api := &fakeSubmitter{}
	c := NewCoordinator(api, q, alwaysOffline, nil)

	result, err := c.Submit(context.Background(), entry(2))
	require.NoError(t, err)
	assert.Equal(t, SubmitSavedOffline, result)
	assert.Zero(t, api.callCount(), "no network attempt while offline")

	entries, err := q.DrainAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ToProfileID)
}

func TestSubmit_TransportFailureQueues(t *testing.T) {
	q := newTestQueue(t)
	api := &fakeSubmitter{respond: func(PendingEntry) error { return errors.New("connection refused") }}
	c := NewCoordinator(api, q, alwaysOnline, nil)

	result, err := c.Submit(context.Background(), entry(2))
	require.NoError(t, err)
	assert.Equal(t, SubmitSavedOffline, result)

	entries, err := q.DrainAll()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSubmit_ServerRejectionIsSurfacedNotQueued(t *testing.T) {
	q := newTestQueue(t)
	rejection := &APIError{StatusCode: http.StatusBadRequest, Message: "Cannot request an exchange with yourself."}
	api := &fakeSubmitter{respond: func(PendingEntry) error { return rejection }}
	c := NewCoordinator(api, q, alwaysOnline, nil)

	_, err := c.Submit(context.Background(), entry(2))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	entries, qerr := q.DrainAll()
	require.NoError(t, qerr)
	assert.Empty(t, entries, "server rejections are not retried")
}

func TestDrain_RemovesOnlyAcceptedEntries(t *testing.T) {
	q := newTestQueue(t)
	require.NoError(t, q.Enqueue(entry(2)))
	require.NoError(t, q.Enqueue(entry(3)))
	require.NoError(t, q.Enqueue(entry(4)))

	// The middle entry now refers to something the server rejects.
	api := &fakeSubmitter{respond: func(e PendingEntry) error {
		if e.ToProfileID == 3 {
			return &APIError{StatusCode: http.StatusBadRequest, Message: "Missing required fields"}
		}
		return nil
	}}
	notifier := &recordingNotifier{}
	c := NewCoordinator(api, q, alwaysOnline, notifier)

	report, err := c.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Synced)
	require.Len(t, report.Outcomes, 3)
	assert.True(t, report.Outcomes[0].Ok())
	assert.False(t, report.Outcomes[1].Ok())
	assert.True(t, report.Outcomes[2].Ok())

	// A later entry succeeded even though an earlier one failed.
	remaining, err := q.DrainAll()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, int64(3), remaining[0].ToProfileID)

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Synced 2 pending items.", notifier.messages[0])
}

func TestDrain_ReplaysInInsertionOrder(t *testing.T) {
	q := newTestQueue(t)
	require.NoError(t, q.Enqueue(entry(2)))
	require.NoError(t, q.Enqueue(entry(3)))

	api := &fakeSubmitter{}
	c := NewCoordinator(api, q, alwaysOnline, nil)

	_, err := c.Drain(context.Background())
	require.NoError(t, err)

	require.Len(t, api.calls, 2)
	assert.Equal(t, int64(2), api.calls[0].ToProfileID)
	assert.Equal(t, int64(3), api.calls[1].ToProfileID)
}

func TestDrain_EmptyQueueNoNotice(t *testing.T) {
	q := newTestQueue(t)
	api := &fakeSubmitter{}
	notifier := &recordingNotifier{}
	c := NewCoordinator(api, q, alwaysOnline, notifier)

	report, err := c.Drain(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Synced)
	assert.Zero(t, api.callCount())

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Empty(t, notifier.messages)
}

func TestDrain_SyncedEntryIsNotReplayedTwice(t *testing.T) {
	q := newTestQueue(t)
	require.NoError(t, q.Enqueue(entry(2)))

	api := &fakeSubmitter{}
	c := NewCoordinator(api, q, alwaysOnline, nil)

	_, err := c.Drain(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, api.callCount())

	report, err := c.Drain(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Outcomes)
	assert.Equal(t, 1, api.callCount(), "second pass finds nothing to replay")
}

func TestDrain_ConcurrentPassIsRejected(t *testing.T) {
	q := newTestQueue(t)
	require.NoError(t, q.Enqueue(entry(2)))

	gate := make(chan struct{})
	api := &fakeSubmitter{gate: gate}
	c := NewCoordinator(api, q, alwaysOnline, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := c.Drain(context.Background())
		assert.NoError(t, err)
	}()

	// Wait until the first pass is inside the replay call, then try again.
	require.Eventually(t, func() bool { return c.draining.Load() }, time.Second, time.Millisecond)
	_, err := c.Drain(context.Background())
	assert.ErrorIs(t, err, ErrDrainInProgress)

	close(gate)
	<-done

	// Only one replay attempt happened for the single entry.
	assert.Equal(t, 1, api.callCount())
}

func TestWatch_DrainsOnReconnect(t *testing.T) {
	q := newTestQueue(t)
	require.NoError(t, q.Enqueue(entry(2)))

	api := &fakeSubmitter{}
	var online atomic.Bool
	probe := func(context.Context) bool { return online.Load() }
	c := NewCoordinator(api, q, probe, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() { defer close(done); c.Watch(ctx, 5*time.Millisecond) }()

	// Still offline, nothing replays.
	time.Sleep(25 * time.Millisecond)
	assert.Zero(t, api.callCount())

	online.Store(true)
	require.Eventually(t, func() bool { return api.callCount() == 1 }, time.Second, time.Millisecond)

	// Staying online triggers no further passes.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, api.callCount())

	cancel()
	<-done
}
