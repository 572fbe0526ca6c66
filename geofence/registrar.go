package geofence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/georemind/core"
)

// Registrar turns reminders into geofencing requests.
type Registrar struct {
	client Client
	target CallbackTarget
	radius float64
	logger *slog.Logger
}

// RegistrarOption configures a Registrar.
type RegistrarOption func(*Registrar) error

// WithRadius sets the region radius in meters.
// Default is DefaultRadiusMeters.
func WithRadius(meters float64) RegistrarOption {
	return func(r *Registrar) error {
		if meters <= 0 {
			return fmt.Errorf("%w: radius must be positive", ErrInvalidGeofence)
		}
		r.radius = meters
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) RegistrarOption {
	return func(r *Registrar) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRegistrar creates a Registrar submitting to client with target as the
// callback for every region.
func NewRegistrar(client Client, target CallbackTarget, opts ...RegistrarOption) (*Registrar, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	if target == nil {
		return nil, ErrTargetRequired
	}
	r := &Registrar{
		client: client,
		target: target,
		radius: DefaultRadiusMeters,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Radius returns the configured region radius in meters.
func (r *Registrar) Radius() float64 {
	return r.radius
}

// GeofenceFor builds the region for a reminder.
func (r *Registrar) GeofenceFor(reminder *core.Reminder) (Geofence, error) {
	if reminder == nil || !reminder.HasCoordinates() {
		return Geofence{}, ErrMissingCoordinates
	}
	g := Geofence{
		RequestID:       reminder.ID,
		Latitude:        *reminder.Latitude,
		Longitude:       *reminder.Longitude,
		RadiusMeters:    r.radius,
		Expiration:      NeverExpire,
		TransitionTypes: TransitionEnter,
	}
	return g, g.Validate()
}

// Register submits an ENTER region for the reminder. Any failure wraps
// ErrRegistration. Registering an ID again replaces its region.
func (r *Registrar) Register(ctx context.Context, reminder *core.Reminder) error {
	g, err := r.GeofenceFor(reminder)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegistration, err)
	}

	request := Request{
		Geofences:      []Geofence{g},
		InitialTrigger: InitialTriggerEnter,
	}
	if err := r.client.AddGeofences(ctx, request, r.target); err != nil {
		return fmt.Errorf("%w: %w", ErrRegistration, err)
	}

	r.logger.Debug("geofence added", "request_id", g.RequestID,
		"latitude", g.Latitude, "longitude", g.Longitude, "radius", g.RadiusMeters)
	return nil
}

// Activate releases the initial triggers of regions whose reminders are now
// stored. It is a no-op for clients that fire initial triggers on their own.
func (r *Registrar) Activate(ctx context.Context, requestIDs ...string) error {
	activator, ok := r.client.(Activator)
	if !ok || len(requestIDs) == 0 {
		return nil
	}
	return activator.Activate(ctx, requestIDs...)
}

// Unregister removes the regions with the given request IDs.
func (r *Registrar) Unregister(ctx context.Context, requestIDs ...string) error {
	if len(requestIDs) == 0 {
		return nil
	}
	return r.client.RemoveGeofences(ctx, requestIDs...)
}
