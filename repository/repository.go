// Package repository is the single data-access point used by the save flow, the
// reminders list and the transition handler. It forwards every call to the
// underlying store and preserves its Result contract unchanged.
package repository

import (
	"context"

	"github.com/poiesic/georemind/core"
	"github.com/poiesic/georemind/storage"
)

// Repository forwards reminder reads and writes to a storage.ReminderStore.
type Repository struct {
	store storage.ReminderStore
}

// New creates a Repository backed by store.
func New(store storage.ReminderStore) (*Repository, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &Repository{store: store}, nil
}

// SaveReminder upserts a reminder by ID.
func (r *Repository) SaveReminder(ctx context.Context, reminder *core.Reminder) error {
	return r.store.SaveReminder(ctx, reminder)
}

// GetReminders returns all reminders in insertion order.
func (r *Repository) GetReminders(ctx context.Context) core.Result[[]*core.Reminder] {
	return r.store.GetReminders(ctx)
}

// GetReminder looks a reminder up by ID.
func (r *Repository) GetReminder(ctx context.Context, id string) core.Result[*core.Reminder] {
	return r.store.GetReminder(ctx, id)
}

// DeleteReminder removes one reminder.
func (r *Repository) DeleteReminder(ctx context.Context, id string) error {
	return r.store.DeleteReminder(ctx, id)
}

// DeleteAllReminders clears the store.
func (r *Repository) DeleteAllReminders(ctx context.Context) error {
	return r.store.DeleteAllReminders(ctx)
}
