package storage

import (
	"context"

	"github.com/poiesic/georemind/core"
)

// ReminderStore provides persistent keyed storage of reminder records.
// Implementations must be thread-safe: the transition handler reads while the
// save flow writes.
//
// Reads never fail with a raw error. Expected conditions (a missing record) and
// storage-layer read failures both come back as a failed core.Result. Writes
// return an error only when the storage layer itself is unavailable.
type ReminderStore interface {
	// SaveReminder inserts or fully replaces the record with the same ID.
	// Returns ErrInvalidRecord if the ID is empty.
	SaveReminder(ctx context.Context, reminder *core.Reminder) error

	// GetReminders returns all records in insertion order.
	// An empty store is a success with an empty slice.
	GetReminders(ctx context.Context) core.Result[[]*core.Reminder]

	// GetReminder returns the record with the given ID.
	// A missing record is a failure with the message core.MsgReminderNotFound
	// wrapping ErrNotFound.
	GetReminder(ctx context.Context, id string) core.Result[*core.Reminder]

	// DeleteReminder removes a single record. Deleting an absent ID is a no-op.
	DeleteReminder(ctx context.Context, id string) error

	// DeleteAllReminders removes every record.
	DeleteAllReminders(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}
