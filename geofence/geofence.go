// Package geofence describes circular regions keyed by reminder ID and submits
// them to a geofencing service. The service reports transitions back through a
// CallbackTarget.
package geofence

import (
	"context"
	"fmt"
	"time"
)

// DefaultRadiusMeters is the radius of every reminder region unless configured.
const DefaultRadiusMeters = 100.0

// NeverExpire keeps a region registered until it is removed.
const NeverExpire time.Duration = -1

// Transition types. Values combine as a bit mask in Geofence.TransitionTypes.
const (
	TransitionEnter = 1
	TransitionExit  = 2
	TransitionDwell = 4
)

// Initial triggers fired when a region is registered while the device already
// satisfies the condition.
const (
	InitialTriggerEnter = 1
	InitialTriggerExit  = 2
	InitialTriggerDwell = 4
)

// Geofence is a circular region. RequestID equals the reminder ID.
type Geofence struct {
	RequestID       string
	Latitude        float64
	Longitude       float64
	RadiusMeters    float64
	Expiration      time.Duration
	TransitionTypes int
}

// Validate checks the region can be monitored.
func (g Geofence) Validate() error {
	if g.RequestID == "" {
		return fmt.Errorf("%w: empty request id", ErrInvalidGeofence)
	}
	if g.RadiusMeters <= 0 {
		return fmt.Errorf("%w: radius must be positive", ErrInvalidGeofence)
	}
	if g.Latitude < -90 || g.Latitude > 90 || g.Longitude < -180 || g.Longitude > 180 {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidGeofence)
	}
	if g.TransitionTypes == 0 {
		return fmt.Errorf("%w: no transition types", ErrInvalidGeofence)
	}
	return nil
}

// Request is a batch of regions submitted together.
type Request struct {
	Geofences      []Geofence
	InitialTrigger int
}

// Location is a device position fix.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Event is a transition report delivered to a CallbackTarget.
// ErrorCode is zero for a successful event.
type Event struct {
	ErrorCode           int
	Transition          int
	TriggeringGeofences []Geofence
	TriggeringLocation  *Location
}

// HasError reports whether the service delivered an error instead of a transition.
func (e Event) HasError() bool {
	return e.ErrorCode != 0
}

// CallbackTarget receives transition events. Its identity is stable for the
// lifetime of the process so repeated registrations share one target.
type CallbackTarget interface {
	TargetID() string
	Deliver(ctx context.Context, event Event) error
}

// Client is the geofencing service.
type Client interface {
	AddGeofences(ctx context.Context, request Request, target CallbackTarget) error
	RemoveGeofences(ctx context.Context, requestIDs ...string) error
}

// Activator is implemented by services that hold back the initial trigger of
// new regions until the caller reports the reminder as stored.
type Activator interface {
	Activate(ctx context.Context, requestIDs ...string) error
}
