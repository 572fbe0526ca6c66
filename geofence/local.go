package geofence

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"
)

const (
	// DefaultMaxGeofences matches the per-app limit of the platform service.
	DefaultMaxGeofences = 100
	// DefaultMaxTargets is the number of distinct callback targets allowed.
	DefaultMaxTargets = 5
)

type region struct {
	geofence     Geofence
	target       CallbackTarget
	inside       bool
	armed        bool // initial ENTER pending until Activate or the next fix
	registeredAt time.Time
}

type delivery struct {
	target CallbackTarget
	event  Event
}

// LocalService is an in-process geofencing service. It keeps registered
// regions, evaluates location fixes against them and delivers transition
// events to the callback targets. Events are delivered outside the lock.
type LocalService struct {
	mu           sync.Mutex
	regions      map[string]*region
	order        []string
	available    bool
	lastFix      *Location
	maxGeofences int
	maxTargets   int
	now          func() time.Time
	logger       *slog.Logger
}

var (
	_ Client    = (*LocalService)(nil)
	_ Activator = (*LocalService)(nil)
)

// LocalOption configures a LocalService.
type LocalOption func(*LocalService)

// WithMaxGeofences caps the number of registered regions.
func WithMaxGeofences(n int) LocalOption {
	return func(s *LocalService) {
		if n > 0 {
			s.maxGeofences = n
		}
	}
}

// WithMaxTargets caps the number of distinct callback targets.
func WithMaxTargets(n int) LocalOption {
	return func(s *LocalService) {
		if n > 0 {
			s.maxTargets = n
		}
	}
}

// WithClock overrides the time source used for expiration.
func WithClock(now func() time.Time) LocalOption {
	return func(s *LocalService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithServiceLogger sets a custom logger.
// Default is slog.Default().
func WithServiceLogger(logger *slog.Logger) LocalOption {
	return func(s *LocalService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewLocalService creates an available service with no regions.
func NewLocalService(opts ...LocalOption) *LocalService {
	s := &LocalService{
		regions:      make(map[string]*region),
		available:    true,
		maxGeofences: DefaultMaxGeofences,
		maxTargets:   DefaultMaxTargets,
		now:          time.Now,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddGeofences registers the request's regions for target. Existing regions
// with the same request ID are replaced.
func (s *LocalService) AddGeofences(ctx context.Context, request Request, target CallbackTarget) error {
	if target == nil {
		return ErrTargetRequired
	}
	if len(request.Geofences) == 0 {
		return ErrEmptyRequest
	}
	for _, g := range request.Geofences {
		if err := g.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.available {
		return &StatusError{Code: GeofenceNotAvailable}
	}
	s.expireLocked()

	added := 0
	for _, g := range request.Geofences {
		if _, ok := s.regions[g.RequestID]; !ok {
			added++
		}
	}
	if len(s.regions)+added > s.maxGeofences {
		return &StatusError{Code: TooManyGeofences}
	}
	targets := s.targetIDsLocked()
	if !slices.Contains(targets, target.TargetID()) && len(targets)+1 > s.maxTargets {
		return &StatusError{Code: TooManyPendingIntents}
	}

	now := s.now()
	for _, g := range request.Geofences {
		if _, ok := s.regions[g.RequestID]; !ok {
			s.order = append(s.order, g.RequestID)
		}
		r := &region{geofence: g, target: target, registeredAt: now}
		if s.lastFix != nil {
			r.inside = g.Contains(s.lastFix.Latitude, s.lastFix.Longitude)
		}
		r.armed = r.inside && request.InitialTrigger&InitialTriggerEnter != 0 && g.TransitionTypes&TransitionEnter != 0
		s.regions[g.RequestID] = r
	}
	return nil
}

// Activate fires the initial ENTER of the given regions when the device was
// already inside them at registration. Regions not activated fire on the next
// location fix instead. Delivery failures are logged and do not undo the
// registration.
func (s *LocalService) Activate(ctx context.Context, requestIDs ...string) error {
	var pending []delivery
	func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if !s.available || s.lastFix == nil {
			return
		}
		fix := *s.lastFix
		entered := make(map[string][]Geofence)
		targets := make(map[string]CallbackTarget)
		var targetOrder []string
		for _, id := range s.order {
			r := s.regions[id]
			if !r.armed || !slices.Contains(requestIDs, id) {
				continue
			}
			r.armed = false
			tid := r.target.TargetID()
			if _, ok := targets[tid]; !ok {
				targets[tid] = r.target
				targetOrder = append(targetOrder, tid)
			}
			entered[tid] = append(entered[tid], r.geofence)
		}
		for _, tid := range targetOrder {
			pending = append(pending, delivery{target: targets[tid], event: Event{
				Transition: TransitionEnter, TriggeringGeofences: entered[tid], TriggeringLocation: &fix,
			}})
		}
	}()

	_ = s.deliver(ctx, pending)
	return nil
}

// RemoveGeofences unregisters regions by request ID. Unknown IDs are ignored.
func (s *LocalService) RemoveGeofences(ctx context.Context, requestIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range requestIDs {
		delete(s.regions, id)
	}
	s.order = slices.DeleteFunc(s.order, func(id string) bool {
		_, ok := s.regions[id]
		return !ok
	})
	return nil
}

// UpdateLocation records a device fix and delivers the resulting ENTER and
// EXIT transitions, one event per target and transition type.
func (s *LocalService) UpdateLocation(ctx context.Context, lat, lon float64) error {
	var pending []delivery
	func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		fix := Location{Latitude: lat, Longitude: lon}
		s.lastFix = &fix
		if !s.available {
			return
		}
		s.expireLocked()

		entered := make(map[string][]Geofence)
		exited := make(map[string][]Geofence)
		targets := make(map[string]CallbackTarget)
		var targetOrder []string
		for _, id := range s.order {
			r := s.regions[id]
			inside := r.geofence.Contains(lat, lon)
			armed := r.armed
			r.armed = false
			if inside == r.inside && !(armed && inside) {
				continue
			}
			r.inside = inside
			tid := r.target.TargetID()
			if _, ok := targets[tid]; !ok {
				targets[tid] = r.target
				targetOrder = append(targetOrder, tid)
			}
			switch {
			case inside && r.geofence.TransitionTypes&TransitionEnter != 0:
				entered[tid] = append(entered[tid], r.geofence)
			case !inside && r.geofence.TransitionTypes&TransitionExit != 0:
				exited[tid] = append(exited[tid], r.geofence)
			}
		}

		for _, tid := range targetOrder {
			if gs := entered[tid]; len(gs) > 0 {
				pending = append(pending, delivery{target: targets[tid], event: Event{
					Transition: TransitionEnter, TriggeringGeofences: gs, TriggeringLocation: &fix,
				}})
			}
			if gs := exited[tid]; len(gs) > 0 {
				pending = append(pending, delivery{target: targets[tid], event: Event{
					Transition: TransitionExit, TriggeringGeofences: gs, TriggeringLocation: &fix,
				}})
			}
		}
	}()

	return s.deliver(ctx, pending)
}

// SetAvailable toggles the service. Turning it off delivers a
// GeofenceNotAvailable error event to every registered target and clears all
// regions, as the platform does when location access is lost.
func (s *LocalService) SetAvailable(ctx context.Context, available bool) error {
	var pending []delivery
	func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.available == available {
			return
		}
		s.available = available
		if available {
			return
		}
		seen := make(map[string]bool)
		for _, id := range s.order {
			r := s.regions[id]
			tid := r.target.TargetID()
			if seen[tid] {
				continue
			}
			seen[tid] = true
			pending = append(pending, delivery{target: r.target, event: Event{ErrorCode: GeofenceNotAvailable}})
		}
		s.regions = make(map[string]*region)
		s.order = nil
	}()

	return s.deliver(ctx, pending)
}

// Registered returns the regions in registration order.
func (s *LocalService) Registered() []Geofence {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()
	out := make([]Geofence, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.regions[id].geofence)
	}
	return out
}

// expireLocked drops regions whose expiration has passed. Caller holds mu.
func (s *LocalService) expireLocked() {
	now := s.now()
	var expired []string
	for _, id := range s.order {
		r := s.regions[id]
		if r.geofence.Expiration < 0 {
			continue
		}
		if now.Sub(r.registeredAt) >= r.geofence.Expiration {
			expired = append(expired, id)
		}
	}
	if len(expired) == 0 {
		return
	}
	for _, id := range expired {
		delete(s.regions, id)
		s.logger.Debug("geofence expired", "request_id", id)
	}
	s.order = slices.DeleteFunc(s.order, func(id string) bool {
		return slices.Contains(expired, id)
	})
}

// targetIDsLocked returns the distinct callback targets. Caller holds mu.
func (s *LocalService) targetIDsLocked() []string {
	var ids []string
	for _, id := range s.order {
		tid := s.regions[id].target.TargetID()
		if !slices.Contains(ids, tid) {
			ids = append(ids, tid)
		}
	}
	return ids
}

func (s *LocalService) deliver(ctx context.Context, pending []delivery) error {
	var errs []error
	for _, d := range pending {
		if err := d.target.Deliver(ctx, d.event); err != nil {
			s.logger.Warn("geofence event delivery failed", "target", d.target.TargetID(), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
