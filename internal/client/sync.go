package client

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Submitter is the server call a drain pass replays. *APIClient implements it.
type Submitter interface {
	CreateExchangeRequest(ctx context.Context, entry PendingEntry) error
}

// Probe reports whether the device currently has connectivity.
type Probe func(ctx context.Context) bool

// Notifier receives the transient "synced" notice after a successful drain
// pass. Show is followed by Clear after a fixed delay.
type Notifier interface {
	Show(message string)
	Clear()
}

type noopNotifier struct{}

func (noopNotifier) Show(string) {}
func (noopNotifier) Clear()      {}

// noticeClearDelay is how long the synced notice stays up.
const noticeClearDelay = 3 * time.Second

// ErrDrainInProgress is returned when a drain pass is requested while another
// is still running. The caller is expected to drop the request; the running
// pass already covers the queue.
var ErrDrainInProgress = errors.New("drain pass already in progress")

// SubmitResult tells the caller what happened to a submission.
type SubmitResult int

const (
	// SubmitSent means the server accepted the request.
	SubmitSent SubmitResult = iota
	// SubmitSavedOffline means the request was written to the pending queue.
	SubmitSavedOffline
)

// ReplayOutcome is the per-entry result of a drain pass.
type ReplayOutcome struct {
	Entry QueuedEntry
	Err   error // nil when the server accepted and the entry was removed
}

func (o ReplayOutcome) Ok() bool { return o.Err == nil }

// DrainReport aggregates one full drain pass.
type DrainReport struct {
	Outcomes []ReplayOutcome
	Synced   int
}

// Coordinator reconciles queued local exchange requests with the server
// whenever connectivity allows. It owns the pending queue exclusively.
type Coordinator struct {
	api      Submitter
	queue    *PendingQueue
	online   Probe
	notifier Notifier
	log      *logrus.Entry

	draining atomic.Bool
}

func NewCoordinator(api Submitter, queue *PendingQueue, online Probe, notifier Notifier) *Coordinator {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Coordinator{
		api:      api,
		queue:    queue,
		online:   online,
		notifier: notifier,
		log:      logrus.WithField("component", "sync"),
	}
}

// Submit attempts the network call immediately and falls back to the queue.
// Offline: no network attempt, straight to the queue. Transport failure:
// queued as best-effort durability (a server write the client never saw can
// produce a duplicate; the server does not deduplicate). A response the
// server actually produced is surfaced to the caller, not queued.
func (c *Coordinator) Submit(ctx context.Context, entry PendingEntry) (SubmitResult, error) {
	if !c.online(ctx) {
		if err := c.queue.Enqueue(entry); err != nil {
			return 0, err
		}
		c.log.WithField("to", entry.ToProfileID).Info("offline, saved exchange request locally")
		return SubmitSavedOffline, nil
	}

	err := c.api.CreateExchangeRequest(ctx, entry)
	if err == nil {
		return SubmitSent, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return 0, err
	}

	if qerr := c.queue.Enqueue(entry); qerr != nil {
		return 0, qerr
	}
	c.log.WithError(err).Info("network failure, saved exchange request locally")
	return SubmitSavedOffline, nil
}

// Drain replays the queued entries against the server in insertion order.
// Accepted entries are removed; everything else stays queued for the next
// pass. Only one drain pass runs at a time.
func (c *Coordinator) Drain(ctx context.Context) (DrainReport, error) {
	if !c.draining.CompareAndSwap(false, true) {
		return DrainReport{}, ErrDrainInProgress
	}
	defer c.draining.Store(false)

	entries, err := c.queue.DrainAll()
	if err != nil {
		return DrainReport{}, err
	}
	if len(entries) == 0 {
		return DrainReport{}, nil
	}

	report := DrainReport{Outcomes: make([]ReplayOutcome, 0, len(entries))}
	for _, entry := range entries {
		outcome := ReplayOutcome{Entry: entry, Err: c.api.CreateExchangeRequest(ctx, entry.PendingEntry)}
		if outcome.Ok() {
			if err := c.queue.Remove(entry.Key); err != nil {
				return report, err
			}
			report.Synced++
		} else {
			c.log.WithError(outcome.Err).WithField("key", entry.Key).Warn("failed to sync pending entry")
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	if report.Synced > 0 {
		c.notifier.Show(fmt.Sprintf("Synced %d pending items.", report.Synced))
		time.AfterFunc(noticeClearDelay, c.notifier.Clear)
	}

	return report, nil
}

// Watch polls connectivity and runs a drain pass on every offline-to-online
// edge, plus once at startup when already online. It returns when ctx is
// cancelled. A pass that collides with a running one is simply skipped.
func (c *Coordinator) Watch(ctx context.Context, interval time.Duration) {
	wasOnline := c.online(ctx)
	if wasOnline {
		c.drainLogged(ctx)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			nowOnline := c.online(ctx)
			if nowOnline && !wasOnline {
				c.log.Info("connectivity restored")
				c.drainLogged(ctx)
			}
			wasOnline = nowOnline
		}
	}
}

func (c *Coordinator) drainLogged(ctx context.Context) {
	if _, err := c.Drain(ctx); err != nil && !errors.Is(err, ErrDrainInProgress) {
		c.log.WithError(err).Warn("drain pass failed")
	}
}
