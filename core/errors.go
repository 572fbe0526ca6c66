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

// Domain validation errors
var (
	// ErrInvalidReminder indicates a reminder failed validation.
	ErrInvalidReminder = errors.New("invalid reminder")

	// ErrMissingTitle indicates the Title field is empty.
	ErrMissingTitle = errors.New("title cannot be empty")

	// ErrMissingLocation indicates no location was selected.
	ErrMissingLocation = errors.New("location cannot be empty")

	// ErrNoPointSelected indicates a location was confirmed without picking a point of interest.
	ErrNoPointSelected = errors.New("no point of interest selected")
)
