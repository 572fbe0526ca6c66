package savereminder

import "errors"

var (
	// ErrRepositoryRequired is returned when no reminder repository is provided.
	ErrRepositoryRequired = errors.New("reminder repository required")

	// ErrRegistrarRequired is returned when no geofence registrar is provided.
	ErrRegistrarRequired = errors.New("geofence registrar required")
)
