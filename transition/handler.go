// Package transition turns geofence transition events into reminder
// notifications. Events arrive through Deliver, are queued, and each one is
// handled by a short-lived task on a worker pool.
package transition

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/georemind/core"
	"github.com/poiesic/georemind/geofence"
	"github.com/poiesic/georemind/notification"
)

const (
	// DefaultTargetID identifies the handler to the geofencing service.
	DefaultTargetID  = "georemind.transition"
	defaultQueueSize = 64
)

// Outcome is the result of handling one event.
type Outcome string

const (
	OutcomeNotified     Outcome = "notified"
	OutcomeEventError   Outcome = "event_error"
	OutcomeIgnored      Outcome = "ignored"
	OutcomeNoGeofences  Outcome = "no_geofences"
	OutcomeStale        Outcome = "stale"
	OutcomeNotifyFailed Outcome = "notify_failed"
	OutcomeDropped      Outcome = "dropped"
)

// ReminderSource looks reminders up by ID.
type ReminderSource interface {
	GetReminder(ctx context.Context, id string) core.Result[*core.Reminder]
}

type task struct {
	ctx   context.Context
	event geofence.Event
}

// Handler is the geofencing callback target.
type Handler struct {
	reminders ReminderSource
	notifier  notification.Notifier
	pool      *ants.PoolWithFuncGeneric[task]
	poolSize  int
	queueSize int
	targetID  string
	metrics   *Metrics
	logger    *slog.Logger

	events chan geofence.Event
	done   chan struct{}

	// mu guards the lifecycle flags. stopped is closed when a started Run
	// returns.
	mu        sync.Mutex
	started   bool
	runExited bool
	closed    bool
	stopped   chan struct{}
	senders   sync.WaitGroup
	closeOnce sync.Once
	inflight  sync.WaitGroup
}

var _ geofence.CallbackTarget = (*Handler)(nil)

// Option configures a Handler.
type Option func(*Handler) error

// WithPoolSize sets the number of concurrent event tasks.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(h *Handler) error {
		if size < 1 {
			size = 1
		}
		h.poolSize = size
		return nil
	}
}

// WithQueueSize sets the capacity of the inbound event queue.
func WithQueueSize(size int) Option {
	return func(h *Handler) error {
		if size < 1 {
			size = 1
		}
		h.queueSize = size
		return nil
	}
}

// WithTargetID overrides the callback target identity.
func WithTargetID(id string) Option {
	return func(h *Handler) error {
		if id != "" {
			h.targetID = id
		}
		return nil
	}
}

// WithMetrics enables outcome counters.
func WithMetrics(metrics *Metrics) Option {
	return func(h *Handler) error {
		h.metrics = metrics
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) error {
		if logger == nil {
			logger = slog.Default()
		}
		h.logger = logger
		return nil
	}
}

// NewHandler creates a transition handler. Call Run to start processing and
// Close to release it.
func NewHandler(reminders ReminderSource, notifier notification.Notifier, opts ...Option) (*Handler, error) {
	if reminders == nil {
		return nil, ErrRepositoryRequired
	}
	if notifier == nil {
		return nil, ErrNotifierRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	h := &Handler{
		reminders: reminders,
		notifier:  notifier,
		poolSize:  poolSize,
		queueSize: defaultQueueSize,
		targetID:  DefaultTargetID,
		logger:    slog.Default(),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}

	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}

	// Pool is created after options so the panic handler gets the final logger
	pool, err := ants.NewPoolWithFuncGeneric(h.poolSize, h.runTask,
		ants.WithPanicHandler(func(p any) {
			h.metrics.IncrementPanics()
			h.logger.Error("transition task panicked", "panic", p)
		}))
	if err != nil {
		return nil, err
	}
	h.pool = pool
	h.events = make(chan geofence.Event, h.queueSize)

	return h, nil
}

// TargetID returns the stable callback identity.
func (h *Handler) TargetID() string {
	return h.targetID
}

// Deliver queues an event for handling. It blocks while the queue is full.
// Once the handler is closed, or Run returned, it fails with ErrHandlerClosed.
func (h *Handler) Deliver(ctx context.Context, event geofence.Event) error {
	h.mu.Lock()
	if h.closed || h.runExited {
		h.mu.Unlock()
		return ErrHandlerClosed
	}
	h.senders.Add(1)
	h.mu.Unlock()
	defer h.senders.Done()

	select {
	case h.events <- event:
		return nil
	case <-h.done:
		return ErrHandlerClosed
	case <-h.stopped:
		return ErrHandlerClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run dispatches queued events to the worker pool until ctx is cancelled or
// the handler is closed. It returns nil at once when the handler is already
// closed. Events accepted by Deliver and not dispatched here are handled by
// Close.
func (h *Handler) Run(ctx context.Context) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	if h.started {
		h.mu.Unlock()
		return ErrAlreadyRunning
	}
	h.started = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.runExited = true
		h.mu.Unlock()
		close(h.stopped)
	}()

	// Tasks outlive cancellation of Run's context
	taskCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.done:
			return nil
		case event := <-h.events:
			h.dispatch(taskCtx, event)
		}
	}
}

// Close stops accepting events, handles the events still queued, waits for
// in-flight tasks and releases the pool.
func (h *Handler) Close() error {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		h.closed = true
		started := h.started
		h.mu.Unlock()
		close(h.done)

		// No Deliver can enqueue after this point
		h.senders.Wait()
		if started {
			<-h.stopped
		}

	drain:
		for {
			select {
			case event := <-h.events:
				h.dispatch(context.Background(), event)
			default:
				break drain
			}
		}

		h.inflight.Wait()
		h.pool.Release()
	})
	return nil
}

func (h *Handler) dispatch(ctx context.Context, event geofence.Event) {
	h.inflight.Add(1)
	if err := h.pool.Invoke(task{ctx: ctx, event: event}); err != nil {
		h.inflight.Done()
		h.metrics.ObserveOutcome(OutcomeDropped, time.Now())
		h.logger.Error("error dispatching transition event", "err", err)
	}
}

func (h *Handler) runTask(t task) {
	defer h.inflight.Done()
	h.Handle(t.ctx, t.event)
}

// Handle processes one event synchronously and reports what happened. Only
// the first triggering geofence is considered. Failures are logged, never
// retried.
func (h *Handler) Handle(ctx context.Context, event geofence.Event) Outcome {
	start := time.Now()
	outcome := h.handle(ctx, event)
	h.metrics.ObserveOutcome(outcome, start)
	return outcome
}

func (h *Handler) handle(ctx context.Context, event geofence.Event) Outcome {
	if event.HasError() {
		h.logger.Error(geofence.ErrorMessage(event.ErrorCode), "code", event.ErrorCode)
		return OutcomeEventError
	}

	if event.Transition != geofence.TransitionEnter {
		h.logger.Debug("ignoring geofence transition", "transition", event.Transition)
		return OutcomeIgnored
	}
	h.logger.Info("geofence entered", "triggering", len(event.TriggeringGeofences))

	if len(event.TriggeringGeofences) == 0 {
		return OutcomeNoGeofences
	}
	requestID := event.TriggeringGeofences[0].RequestID

	result := h.reminders.GetReminder(ctx, requestID)
	reminder, ok := result.Data()
	if !ok {
		h.logger.Debug("no reminder for geofence", "request_id", requestID, "reason", result.Message())
		return OutcomeStale
	}

	if err := h.notifier.Notify(ctx, core.DataItemFromReminder(reminder)); err != nil {
		h.logger.Error("error sending reminder notification", "request_id", requestID, "err", err)
		return OutcomeNotifyFailed
	}
	return OutcomeNotified
}
