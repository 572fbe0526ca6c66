package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/georemind/core"
	"github.com/poiesic/georemind/retry"
	"github.com/poiesic/georemind/storage"
)

const (
	maxConflictRetries = 5
	conflictBackoff    = time.Millisecond
)

// ReminderStore implements storage.ReminderStore for BadgerDB.
type ReminderStore struct {
	backend  *Backend
	orderSeq *badger.Sequence
}

var _ storage.ReminderStore = (*ReminderStore)(nil)

// NewReminderStore creates a new ReminderStore on top of an open backend.
func NewReminderStore(backend *Backend) (*ReminderStore, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	orderSeq, err := backend.GetSequence(reminderOrderSeq)
	if err != nil {
		return nil, err
	}

	return &ReminderStore{
		backend:  backend,
		orderSeq: orderSeq,
	}, nil
}

// Close releases the order sequence. The backend is owned by the caller.
func (s *ReminderStore) Close() error {
	return s.orderSeq.Release()
}

// SaveReminder inserts or replaces the reminder with the same ID. A replaced
// reminder moves to the end of the insertion order.
func (s *ReminderStore) SaveReminder(ctx context.Context, reminder *core.Reminder) error {
	if reminder == nil || reminder.ID == "" {
		return storage.ErrInvalidRecord
	}
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	pos, err := s.nextPosition()
	if err != nil {
		return err
	}

	// Concurrent saves of the same ID conflict at commit; retry those
	return retry.WithBackoff(ctx, func() error {
		return s.backend.WithTx(func(tx *badger.Txn) error {
			posKey := makeReminderPositionKey(reminder.ID)

			// Drop the old slot in the order index
			oldPos, found, err := readPosition(tx, posKey)
			if err != nil {
				return err
			}
			if found {
				if err := tx.Delete(makeReminderOrderKey(oldPos)); err != nil {
					return err
				}
			}

			if err := tx.Set(makeReminderKey(reminder.ID), storage.MarshalReminder(reminder)); err != nil {
				return err
			}
			if err := tx.Set(makeReminderOrderKey(pos), []byte(reminder.ID)); err != nil {
				return err
			}
			if err := tx.Set(posKey, storage.MarshalPosition(pos)); err != nil {
				return err
			}
			return tx.Commit()
		}, true)
	}, maxConflictRetries, conflictBackoff, retry.On(badger.ErrConflict))
}

// GetReminders returns every stored reminder in insertion order.
func (s *ReminderStore) GetReminders(ctx context.Context) core.Result[[]*core.Reminder] {
	reminders := make([]*core.Reminder, 0)
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		prefix := reminderOrderIndexPrefix()
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			reminder, err := readReminder(tx, makeReminderKey(string(id)))
			if err != nil {
				return err
			}
			// Index entry without a record is skipped
			if reminder == nil {
				continue
			}
			reminders = append(reminders, reminder)
		}
		return nil
	}, false)
	if err != nil {
		return core.FailureFrom[[]*core.Reminder](err)
	}
	return core.Success(reminders)
}

// GetReminder returns the reminder with the given ID, or a failure with
// core.MsgReminderNotFound wrapping storage.ErrNotFound.
func (s *ReminderStore) GetReminder(ctx context.Context, id string) core.Result[*core.Reminder] {
	var reminder *core.Reminder
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		reminder, err = readReminder(tx, makeReminderKey(id))
		return err
	}, false)
	if err != nil {
		return core.FailureFrom[*core.Reminder](err)
	}
	if reminder == nil {
		return core.FailureWith[*core.Reminder](core.MsgReminderNotFound, storage.ErrNotFound)
	}
	return core.Success(reminder)
}

// DeleteReminder removes one reminder. Deleting an absent ID is not an error.
func (s *ReminderStore) DeleteReminder(ctx context.Context, id string) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		posKey := makeReminderPositionKey(id)
		pos, found, err := readPosition(tx, posKey)
		if err != nil {
			return err
		}
		if found {
			if err := tx.Delete(makeReminderOrderKey(pos)); err != nil {
				return err
			}
		}
		if err := tx.Delete(posKey); err != nil {
			return err
		}
		if err := tx.Delete(makeReminderKey(id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// DeleteAllReminders removes every reminder and both index keyspaces.
func (s *ReminderStore) DeleteAllReminders(ctx context.Context) error {
	return s.backend.DropPrefix(
		[]byte(reminderRecordPrefix+":"),
		reminderOrderIndexPrefix(),
		[]byte(reminderPositionPrefix+":"),
	)
}

func (s *ReminderStore) nextPosition() (uint64, error) {
	pos, err := s.orderSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if pos == 0 {
		return s.orderSeq.Next()
	}
	return pos, nil
}

// readReminder returns nil, nil when the key does not exist.
func readReminder(tx *badger.Txn, key []byte) (*core.Reminder, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var reminder *core.Reminder
	err = item.Value(func(val []byte) error {
		var err error
		reminder, err = storage.UnmarshalReminder(val)
		return err
	})
	return reminder, err
}

func readPosition(tx *badger.Txn, key []byte) (uint64, bool, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	var pos uint64
	err = item.Value(func(val []byte) error {
		var err error
		pos, err = storage.UnmarshalPosition(val)
		return err
	})
	return pos, err == nil, err
}
