package repository

import "errors"

var (
	ErrStoreRequired = errors.New("reminder store is required")
)
