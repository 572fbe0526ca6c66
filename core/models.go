package core

//go:generate go run ../cmd/musgen

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// NewID returns a fresh random reminder identifier.
func NewID() string {
	return uuid.NewString()
}

// IDFromContent generates a deterministic identifier from text content using BLAKE2b hashing.
// Identical content always produces the identical ID, so re-importing the same
// reminder definition upserts instead of duplicating.
func IDFromContent(text string) string {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits, same width as a UUID
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Reminder is the persisted form of a location-triggered note.
// Records are replaced as a whole when saved again with the same ID.
type Reminder struct {
	ID          string
	Title       string   // Empty means unset
	Description string   // Empty means unset
	Location    string   // Human-readable place name
	Latitude    *float64 // Nil means unset
	Longitude   *float64 // Nil means unset
}

// HasCoordinates reports whether both latitude and longitude are set.
func (r *Reminder) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// ReminderDataItem is a pending reminder as edited by the user, and the payload
// handed to the notification surface.
type ReminderDataItem struct {
	Title       string
	Description string
	Location    string
	Latitude    *float64
	Longitude   *float64
	ID          string
}

// NewReminderDataItem creates a pending item with a freshly generated ID.
func NewReminderDataItem(title, description, location string, latitude, longitude *float64) *ReminderDataItem {
	return &ReminderDataItem{
		Title:       title,
		Description: description,
		Location:    location,
		Latitude:    latitude,
		Longitude:   longitude,
		ID:          NewID(),
	}
}

// ToReminder converts the pending item into a record ready to be persisted.
// An item without an ID is assigned one.
func (d *ReminderDataItem) ToReminder() *Reminder {
	if d.ID == "" {
		d.ID = NewID()
	}
	return &Reminder{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		Latitude:    copyFloat(d.Latitude),
		Longitude:   copyFloat(d.Longitude),
	}
}

// DataItemFromReminder builds the presentation payload for a stored record.
func DataItemFromReminder(r *Reminder) ReminderDataItem {
	return ReminderDataItem{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Latitude:    copyFloat(r.Latitude),
		Longitude:   copyFloat(r.Longitude),
		ID:          r.ID,
	}
}

// PointOfInterest is a named place picked on the map.
type PointOfInterest struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Float returns a pointer to v. Handy for building items with coordinates.
func Float(v float64) *float64 {
	return &v
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
