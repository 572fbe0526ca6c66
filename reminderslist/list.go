// Package reminderslist loads the saved reminders for display.
package reminderslist

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/poiesic/georemind/core"
)

// ErrRepositoryRequired is returned when no reminder repository is provided.
var ErrRepositoryRequired = errors.New("reminder repository required")

// ReminderSource lists stored reminders.
type ReminderSource interface {
	GetReminders(ctx context.Context) core.Result[[]*core.Reminder]
}

// Monitor observes the list screen signals.
type Monitor interface {
	LoadingChanged(loading bool)
	SnackBar(message string)
}

type noopMonitor struct{}

func (noopMonitor) LoadingChanged(_ bool) {}
func (noopMonitor) SnackBar(_ string)     {}

// List holds the most recently loaded reminders.
type List struct {
	mu        sync.Mutex
	reminders ReminderSource
	monitor   Monitor
	logger    *slog.Logger
	items     []core.ReminderDataItem
	noData    bool
	loading   bool
}

// Option configures a List.
type Option func(*List)

// WithMonitor sets the signal observer.
func WithMonitor(monitor Monitor) Option {
	return func(l *List) {
		if monitor != nil {
			l.monitor = monitor
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *List) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates an empty list.
func New(reminders ReminderSource, opts ...Option) (*List, error) {
	if reminders == nil {
		return nil, ErrRepositoryRequired
	}
	l := &List{
		reminders: reminders,
		monitor:   noopMonitor{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// LoadReminders fetches all reminders. On failure the previous items are kept
// and the failure message is shown in the snack bar.
func (l *List) LoadReminders(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.setLoading(true)
	defer l.setLoading(false)

	result := core.MapResult(l.reminders.GetReminders(ctx), toDataItems)
	result.Match(
		func(items []core.ReminderDataItem) {
			l.items = items
		},
		func(message string) {
			l.logger.Warn("error loading reminders", "err", result.Err())
			l.monitor.SnackBar(message)
		},
	)
	l.noData = len(l.items) == 0
}

// Items returns the loaded reminders in insertion order.
func (l *List) Items() []core.ReminderDataItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.ReminderDataItem(nil), l.items...)
}

// ShowNoData reports whether the last load left the list empty.
func (l *List) ShowNoData() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.noData
}

// Loading reports whether a load is in progress.
func (l *List) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// setLoading updates the loading flag. Caller holds mu.
func (l *List) setLoading(loading bool) {
	l.loading = loading
	l.monitor.LoadingChanged(loading)
}

func toDataItems(reminders []*core.Reminder) []core.ReminderDataItem {
	items := make([]core.ReminderDataItem, 0, len(reminders))
	for _, r := range reminders {
		items = append(items, core.DataItemFromReminder(r))
	}
	return items
}
