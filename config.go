// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package georemind

import (
	"errors"
	"log/slog"
	"runtime"

	"github.com/poiesic/georemind/geofence"
	"github.com/poiesic/georemind/notification"
	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the settings used by Open.
type Config struct {
	// DatabasePath is the directory of the on-disk database.
	// Ignored when InMemory is set.
	DatabasePath string

	// InMemory keeps all reminders in memory. Useful for tests.
	InMemory bool

	// GeofenceRadius is the radius of every reminder region in meters.
	// Default: 100
	GeofenceRadius float64

	// WorkerPoolSize is the number of concurrent transition tasks.
	// Default: runtime.NumCPU() / 2, minimum 1
	WorkerPoolSize int

	// EventQueueSize is the capacity of the transition event queue.
	// Default: 64
	EventQueueSize int

	// GeofenceClient is the geofencing service. When nil, Open creates a
	// geofence.LocalService.
	GeofenceClient geofence.Client

	// Notifier shows reminder notifications. Required.
	Notifier notification.Notifier

	// MetricsRegisterer receives the transition metrics. Nil disables metrics.
	MetricsRegisterer prometheus.Registerer

	// Logger is used by every component.
	// Default: slog.Default()
	Logger *slog.Logger
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithDatabasePath sets the on-disk database directory.
func WithDatabasePath(path string) ConfigOption {
	return func(c *Config) {
		c.DatabasePath = path
	}
}

// WithInMemory keeps the database in memory.
func WithInMemory(inMemory bool) ConfigOption {
	return func(c *Config) {
		c.InMemory = inMemory
	}
}

// WithGeofenceRadius sets the reminder region radius in meters.
func WithGeofenceRadius(meters float64) ConfigOption {
	return func(c *Config) {
		c.GeofenceRadius = meters
	}
}

// WithWorkerPoolSize sets the number of concurrent transition tasks.
func WithWorkerPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.WorkerPoolSize = size
	}
}

// WithEventQueueSize sets the capacity of the transition event queue.
func WithEventQueueSize(size int) ConfigOption {
	return func(c *Config) {
		c.EventQueueSize = size
	}
}

// WithGeofenceClient sets the geofencing service.
func WithGeofenceClient(client geofence.Client) ConfigOption {
	return func(c *Config) {
		c.GeofenceClient = client
	}
}

// WithNotifier sets the notification surface.
func WithNotifier(notifier notification.Notifier) ConfigOption {
	return func(c *Config) {
		c.Notifier = notifier
	}
}

// WithMetricsRegisterer enables transition metrics on reg.
func WithMetricsRegisterer(reg prometheus.Registerer) ConfigOption {
	return func(c *Config) {
		c.MetricsRegisterer = reg
	}
}

// WithLogger sets the logger shared by all components.
func WithLogger(logger *slog.Logger) ConfigOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns a Config with the default radius and pool sizes and
// no database location.
func DefaultConfig() *Config {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return &Config{
		GeofenceRadius: geofence.DefaultRadiusMeters,
		WorkerPoolSize: poolSize,
		EventQueueSize: 64,
		Logger:         slog.Default(),
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithDatabasePath("./reminders.db"),
//	    WithNotifier(notifier),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is valid and complete.
func (c *Config) Validate() error {
	if !c.InMemory && c.DatabasePath == "" {
		return errors.New("config: DatabasePath is required unless InMemory is set")
	}
	if c.GeofenceRadius <= 0 {
		return errors.New("config: GeofenceRadius must be positive")
	}
	if c.WorkerPoolSize < 1 {
		return errors.New("config: WorkerPoolSize must be at least 1")
	}
	if c.EventQueueSize < 1 {
		return errors.New("config: EventQueueSize must be at least 1")
	}
	if c.Notifier == nil {
		return errors.New("config: Notifier is required")
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}
