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


package core

import (
	"fmt"
)

// ValidateDataItem validates a pending reminder before a geofence is registered for it.
//
// Validation rules, checked in order:
//   - Title must not be empty
//   - Location must not be empty
//
// When both are missing the title error wins.
//
// NOT validated:
//   - Description (optional)
//   - Latitude/Longitude (checked by geofence registration)
func ValidateDataItem(item *ReminderDataItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidReminder)
	}

	if item.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidReminder, ErrMissingTitle)
	}

	if item.Location == "" {
		return fmt.Errorf("%w: %w", ErrInvalidReminder, ErrMissingLocation)
	}

	return nil
}

// ValidateReminder applies the same rules to a stored record.
func ValidateReminder(r *Reminder) error {
	if r == nil {
		return fmt.Errorf("%w: reminder is nil", ErrInvalidReminder)
	}
	item := DataItemFromReminder(r)
	return ValidateDataItem(&item)
}

// IsValidCoordinate checks that a latitude/longitude pair lies on the globe.
func IsValidCoordinate(latitude, longitude float64) bool {
	return latitude >= -90 && latitude <= 90 && longitude >= -180 && longitude <= 180
}
