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


// Package storage provides the storage abstraction layer for georemind.
//
// The ReminderStore interface decouples the reminder pipeline from the concrete
// storage technology. The BadgerDB implementation lives in storage/badger; tests
// use the same implementation backed by an in-memory database.
//
// # Result Contract
//
// Read operations return core.Result instead of (value, error). A missing record
// is an expected condition and is reported as a failed Result with the message
// "Reminder not found!", wrapping ErrNotFound:
//
//	res := store.GetReminder(ctx, id)
//	reminder, ok := res.Data()
//	if !ok {
//	    if errors.Is(res.Err(), storage.ErrNotFound) {
//	        // stale id
//	    }
//	}
//
// Write operations return an error only when the storage layer is unavailable.
// Callers treat such errors as defects rather than recoverable conditions.
//
// # Ordering
//
// GetReminders returns records in insertion order. Saving a record again with
// an existing ID replaces it and moves it to the end of that order.
//
// # Thread Safety
//
// All implementations must be thread-safe. Background lookups may run
// concurrently with foreground saves.
package storage
