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


package geofence

import (
	"errors"
	"fmt"
)

var (
	ErrRegistration       = errors.New("failed to add geofence")
	ErrMissingCoordinates = errors.New("reminder has no coordinates")
	ErrClientRequired     = errors.New("geofencing client is required")
	ErrTargetRequired     = errors.New("callback target is required")
	ErrEmptyRequest       = errors.New("geofencing request has no geofences")
	ErrInvalidGeofence    = errors.New("invalid geofence")
)

// Status codes reported by the geofencing service.
const (
	GeofenceNotAvailable  = 1000
	TooManyGeofences      = 1001
	TooManyPendingIntents = 1002
)

// ErrorMessage maps a geofencing status code to a human readable message.
func ErrorMessage(code int) string {
	switch code {
	case GeofenceNotAvailable:
		return "Geofence service is not available now. Go to Settings>Location>Mode and choose High accuracy."
	case TooManyGeofences:
		return "Your app has registered too many geofences."
	case TooManyPendingIntents:
		return "You have provided too many PendingIntents to the addGeofences() call."
	default:
		return "Unknown error: the Geofence service is not available now."
	}
}

// StatusError is a failure reported by the geofencing service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("geofence status %d: %s", e.Code, ErrorMessage(e.Code))
}
