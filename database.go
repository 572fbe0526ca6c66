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
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/georemind/core"
	"github.com/poiesic/georemind/geofence"
	"github.com/poiesic/georemind/reminderslist"
	"github.com/poiesic/georemind/repository"
	"github.com/poiesic/georemind/retry"
	"github.com/poiesic/georemind/savereminder"
	"github.com/poiesic/georemind/storage/badger"
	"github.com/poiesic/georemind/transition"
)

const (
	restoreAttempts = 3
	restoreBackoff  = 100 * time.Millisecond
)

// Database wires the reminder store, the geofencing service and the
// transition handler together.
type Database struct {
	backend   *badger.Backend
	store     *badger.ReminderStore
	repo      *repository.Repository
	client    geofence.Client
	local     *geofence.LocalService
	registrar *geofence.Registrar
	handler   *transition.Handler
	metrics   *transition.Metrics
	cancel    context.CancelFunc
	runDone   chan struct{}
	logger    *slog.Logger
}

// Open validates cfg and starts all components. The transition handler runs
// until Close.
func Open(cfg *Config) (*Database, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger

	// Open backend
	backend, err := badger.OpenBackendWithLogger(cfg.DatabasePath, cfg.InMemory, logger)
	if err != nil {
		return nil, err
	}

	// Create reminder store
	store, err := badger.NewReminderStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	repo, err := repository.New(store)
	if err != nil {
		store.Close()
		backend.Close()
		return nil, err
	}

	handlerOpts := []transition.Option{
		transition.WithPoolSize(cfg.WorkerPoolSize),
		transition.WithQueueSize(cfg.EventQueueSize),
		transition.WithLogger(logger),
	}
	var metrics *transition.Metrics
	if cfg.MetricsRegisterer != nil {
		metrics = transition.NewMetrics(cfg.MetricsRegisterer)
		handlerOpts = append(handlerOpts, transition.WithMetrics(metrics))
	}
	handler, err := transition.NewHandler(repo, cfg.Notifier, handlerOpts...)
	if err != nil {
		store.Close()
		backend.Close()
		return nil, err
	}

	client := cfg.GeofenceClient
	var local *geofence.LocalService
	if client == nil {
		local = geofence.NewLocalService(geofence.WithServiceLogger(logger))
		client = local
	}

	registrar, err := geofence.NewRegistrar(client, handler,
		geofence.WithRadius(cfg.GeofenceRadius),
		geofence.WithLogger(logger))
	if err != nil {
		handler.Close()
		store.Close()
		backend.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	db := &Database{
		backend:   backend,
		store:     store,
		repo:      repo,
		client:    client,
		local:     local,
		registrar: registrar,
		handler:   handler,
		metrics:   metrics,
		cancel:    cancel,
		runDone:   make(chan struct{}),
		logger:    logger,
	}

	go func() {
		defer close(db.runDone)
		if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("transition handler stopped", "err", err)
		}
	}()

	return db, nil
}

// Close stops the transition handler after it handled queued events, then
// closes storage.
func (db *Database) Close() error {
	// Stop event handling first so no task reads a closed store
	if err := db.handler.Close(); err != nil {
		db.logger.Error("error closing transition handler", "err", err)
	}
	<-db.runDone
	db.cancel()

	if err := db.store.Close(); err != nil {
		db.logger.Error("error closing reminder store", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Repository returns the reminder repository.
func (db *Database) Repository() *repository.Repository {
	return db.repo
}

// Registrar returns the geofence registrar bound to the transition handler.
func (db *Database) Registrar() *geofence.Registrar {
	return db.registrar
}

// Handler returns the transition handler.
func (db *Database) Handler() *transition.Handler {
	return db.handler
}

// Metrics returns the transition metrics, or nil when disabled.
func (db *Database) Metrics() *transition.Metrics {
	return db.metrics
}

// LocalService returns the in-process geofencing service, or nil when a
// custom client was configured.
func (db *Database) LocalService() *geofence.LocalService {
	return db.local
}

// NewSaveFlow creates a save flow bound to the repository and registrar.
func (db *Database) NewSaveFlow(opts ...savereminder.Option) (*savereminder.Flow, error) {
	opts = append([]savereminder.Option{savereminder.WithLogger(db.logger)}, opts...)
	return savereminder.NewFlow(db.repo, db.registrar, opts...)
}

// NewRemindersList creates a reminders list bound to the repository.
func (db *Database) NewRemindersList(opts ...reminderslist.Option) (*reminderslist.List, error) {
	opts = append([]reminderslist.Option{reminderslist.WithLogger(db.logger)}, opts...)
	return reminderslist.New(db.repo, opts...)
}

// RestoreGeofences registers the regions of every stored reminder with
// coordinates. Used at startup, since the geofencing service forgets its
// regions when the process restarts.
func (db *Database) RestoreGeofences(ctx context.Context) (int, error) {
	result := db.repo.GetReminders(ctx)
	reminders, ok := result.Data()
	if !ok {
		return 0, result.Err()
	}
	var restored []string
	for _, r := range reminders {
		if !r.HasCoordinates() {
			continue
		}
		if err := core.ValidateReminder(r); err != nil {
			db.logger.Warn("skipping invalid stored reminder", "id", r.ID, "err", err)
			continue
		}
		err := retry.WithBackoff(ctx, func() error {
			return db.registrar.Register(ctx, r)
		}, restoreAttempts, restoreBackoff, serviceUnavailable)
		if err != nil {
			return len(restored), err
		}
		restored = append(restored, r.ID)
	}

	// Records already exist, so initial triggers can fire right away
	if err := db.registrar.Activate(ctx, restored...); err != nil {
		db.logger.Warn("error activating restored geofences", "err", err)
	}
	return len(restored), nil
}

// serviceUnavailable matches the transient GeofenceNotAvailable status.
func serviceUnavailable(err error) bool {
	var statusErr *geofence.StatusError
	return errors.As(err, &statusErr) && statusErr.Code == geofence.GeofenceNotAvailable
}

// DeleteReminder removes a reminder and its region.
func (db *Database) DeleteReminder(ctx context.Context, id string) error {
	if err := db.registrar.Unregister(ctx, id); err != nil {
		return err
	}
	return db.repo.DeleteReminder(ctx, id)
}

// DeleteAllReminders removes every reminder and its region.
func (db *Database) DeleteAllReminders(ctx context.Context) error {
	result := db.repo.GetReminders(ctx)
	reminders, ok := result.Data()
	if !ok {
		return result.Err()
	}
	ids := make([]string, 0, len(reminders))
	for _, r := range reminders {
		ids = append(ids, r.ID)
	}
	if err := db.registrar.Unregister(ctx, ids...); err != nil {
		return err
	}
	return db.repo.DeleteAllReminders(ctx)
}
