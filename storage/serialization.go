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


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/georemind/core"
)

// MarshalPosition serializes an insertion-order position to bytes.
func MarshalPosition(pos uint64) []byte {
	buf := make([]byte, varint.Uint64.Size(pos))
	varint.Uint64.Marshal(pos, buf)
	return buf
}

// UnmarshalPosition deserializes an insertion-order position from bytes.
func UnmarshalPosition(data []byte) (uint64, error) {
	pos, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return pos, nil
}

// MarshalReminder serializes a Reminder to bytes.
func MarshalReminder(reminder *core.Reminder) []byte {
	buf := make([]byte, core.ReminderMUS.Size(*reminder))
	core.ReminderMUS.Marshal(*reminder, buf)
	return buf
}

// UnmarshalReminder deserializes a Reminder from bytes.
func UnmarshalReminder(data []byte) (*core.Reminder, error) {
	reminder, _, err := core.ReminderMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &reminder, nil
}
