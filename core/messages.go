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

import "errors"

// Message keys surfaced to the user. The keys mirror the string resources the
// presentation layer localizes.
const (
	MsgEnterTitle       = "err_enter_title"
	MsgSelectLocation   = "err_select_location"
	MsgSelectPOI        = "select_poi"
	MsgReminderSaved    = "Reminder Saved !"
	MsgReminderNotFound = "Reminder not found!"

	MsgErrorAddingGeofence = "Failed to add geofence"
)

// MessageKey returns the user-facing message key for a validation error.
// Returns an empty string for errors that have no dedicated message.
func MessageKey(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingTitle):
		return MsgEnterTitle
	case errors.Is(err, ErrMissingLocation):
		return MsgSelectLocation
	case errors.Is(err, ErrNoPointSelected):
		return MsgSelectPOI
	default:
		return ""
	}
}
