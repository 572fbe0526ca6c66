// Package savereminder validates a pending reminder, registers its geofence
// and persists it. Persisting only happens after the geofence was accepted.
package savereminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/poiesic/georemind/core"
	"github.com/poiesic/georemind/geofence"
)

// Registrar registers the geofence of a reminder.
type Registrar interface {
	Register(ctx context.Context, reminder *core.Reminder) error
}

// Activator is implemented by registrars whose service holds back initial
// triggers until the reminder is stored.
type Activator interface {
	Activate(ctx context.Context, requestIDs ...string) error
}

// ReminderSaver persists reminders.
type ReminderSaver interface {
	SaveReminder(ctx context.Context, reminder *core.Reminder) error
}

// Flow is the save state machine. One Flow runs one save at a time.
type Flow struct {
	mu        sync.Mutex
	reminders ReminderSaver
	registrar Registrar
	monitor   Monitor
	logger    *slog.Logger
	state     State
	selected  *core.PointOfInterest
}

// Option configures a Flow.
type Option func(*Flow)

// WithMonitor sets the signal observer.
func WithMonitor(monitor Monitor) Option {
	return func(f *Flow) {
		if monitor != nil {
			f.monitor = monitor
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFlow creates a save flow in the Editing state.
func NewFlow(reminders ReminderSaver, registrar Registrar, opts ...Option) (*Flow, error) {
	if reminders == nil {
		return nil, ErrRepositoryRequired
	}
	if registrar == nil {
		return nil, ErrRegistrarRequired
	}
	f := &Flow{
		reminders: reminders,
		registrar: registrar,
		monitor:   &noopMonitor{},
		logger:    slog.Default(),
		state:     StateEditing,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SelectLocation stores the point of interest picked for the pending reminder.
func (f *Flow) SelectLocation(poi *core.PointOfInterest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if poi == nil {
		f.monitor.SnackBarInt(core.MsgSelectPOI)
		return core.ErrNoPointSelected
	}
	selected := *poi
	f.selected = &selected
	return nil
}

// NewItem builds a pending item from the entered text and the selected
// location.
func (f *Flow) NewItem(title, description string) *core.ReminderDataItem {
	f.mu.Lock()
	defer f.mu.Unlock()

	item := core.NewReminderDataItem(title, description, "", nil, nil)
	if f.selected != nil {
		item.Location = f.selected.Name
		item.Latitude = core.Float(f.selected.Latitude)
		item.Longitude = core.Float(f.selected.Longitude)
	}
	return item
}

// Clear drops the selected location and returns to Editing.
func (f *Flow) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = nil
	f.setState(StateEditing)
}

// Validate checks the item and reports the first missing field through the
// monitor's snack bar.
func (f *Flow) Validate(item *core.ReminderDataItem) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validate(item) == nil
}

// Save validates the item, registers its geofence and persists it. Nothing is
// persisted when registration fails; the returned error then wraps
// geofence.ErrRegistration.
func (f *Flow) Save(ctx context.Context, item *core.ReminderDataItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.validate(item); err != nil {
		return err
	}
	reminder := item.ToReminder()

	f.monitor.LoadingChanged(true)
	defer f.monitor.LoadingChanged(false)

	f.setState(StateRegisteringGeofence)
	if err := f.registrar.Register(ctx, reminder); err != nil {
		f.setState(StateRegistrationFailed)
		f.monitor.Toast(core.MsgErrorAddingGeofence)
		f.logger.Warn("geofence registration failed", "id", reminder.ID, "error", err)
		if !errors.Is(err, geofence.ErrRegistration) {
			err = fmt.Errorf("%w: %w", geofence.ErrRegistration, err)
		}
		return err
	}

	return f.persist(ctx, reminder)
}

// ValidateAndSaveReminder validates and persists the item without registering
// a geofence. Used once registration already succeeded.
func (f *Flow) ValidateAndSaveReminder(ctx context.Context, item *core.ReminderDataItem) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.validate(item); err != nil {
		return false
	}

	f.monitor.LoadingChanged(true)
	defer f.monitor.LoadingChanged(false)

	return f.persist(ctx, item.ToReminder()) == nil
}

// validate runs the validation step. Caller holds mu.
func (f *Flow) validate(item *core.ReminderDataItem) error {
	f.setState(StateValidating)
	if err := core.ValidateDataItem(item); err != nil {
		f.setState(StateInvalid)
		key := core.MessageKey(err)
		if key == "" {
			key = core.MsgEnterTitle
		}
		f.monitor.SnackBarInt(key)
		return err
	}
	f.setState(StateValid)
	return nil
}

// persist writes the reminder. Caller holds mu.
func (f *Flow) persist(ctx context.Context, reminder *core.Reminder) error {
	f.setState(StatePersisting)
	if err := f.reminders.SaveReminder(ctx, reminder); err != nil {
		f.setState(StatePersistFailed)
		f.monitor.ErrorMessage(err.Error())
		f.logger.Error("error saving reminder", "id", reminder.ID, "err", err)
		return err
	}
	f.monitor.Toast(core.MsgReminderSaved)
	f.setState(StateDone)
	f.logger.Debug("reminder saved", "id", reminder.ID)

	// The region may already contain the device; its ENTER must not reach the
	// handler before the record exists.
	if activator, ok := f.registrar.(Activator); ok {
		if err := activator.Activate(ctx, reminder.ID); err != nil {
			f.logger.Warn("error activating geofence", "id", reminder.ID, "error", err)
		}
	}
	return nil
}

// setState records a transition. Caller holds mu.
func (f *Flow) setState(to State) {
	from := f.state
	f.state = to
	f.monitor.StateChanged(from, to)
}
