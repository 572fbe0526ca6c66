package core

import (
	"errors"
	"testing"
)

func TestValidateDataItem(t *testing.T) {
	tests := []struct {
		name    string
		item    *ReminderDataItem
		wantErr error
		wantKey string
	}{
		{
			name:    "valid item",
			item:    &ReminderDataItem{Title: "T", Location: "L"},
			wantErr: nil,
		},
		{
			name:    "valid item without description or coordinates",
			item:    &ReminderDataItem{Title: "T", Location: "L", Description: ""},
			wantErr: nil,
		},
		{
			name:    "missing title",
			item:    &ReminderDataItem{Location: "L", Latitude: Float(0), Longitude: Float(0)},
			wantErr: ErrMissingTitle,
			wantKey: MsgEnterTitle,
		},
		{
			name:    "empty location",
			item:    &ReminderDataItem{Title: "T", Location: ""},
			wantErr: ErrMissingLocation,
			wantKey: MsgSelectLocation,
		},
		{
			name:    "both missing reports title first",
			item:    &ReminderDataItem{},
			wantErr: ErrMissingTitle,
			wantKey: MsgEnterTitle,
		},
		{
			name:    "nil item",
			item:    nil,
			wantErr: ErrInvalidReminder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDataItem(tt.item)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDataItem() unexpected error = %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("ValidateDataItem() expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDataItem() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidReminder) {
				t.Errorf("ValidateDataItem() error should wrap ErrInvalidReminder, got %v", err)
			}
			if got := MessageKey(err); got != tt.wantKey {
				t.Errorf("MessageKey() = %q, want %q", got, tt.wantKey)
			}
		})
	}
}

func TestValidateReminder(t *testing.T) {
	if err := ValidateReminder(&Reminder{ID: "1", Title: "T", Location: "L"}); err != nil {
		t.Errorf("ValidateReminder() unexpected error = %v", err)
	}
	if err := ValidateReminder(&Reminder{ID: "1", Location: "L"}); !errors.Is(err, ErrMissingTitle) {
		t.Errorf("ValidateReminder() error = %v, want %v", err, ErrMissingTitle)
	}
	if err := ValidateReminder(nil); !errors.Is(err, ErrInvalidReminder) {
		t.Errorf("ValidateReminder() error = %v, want %v", err, ErrInvalidReminder)
	}
}

func TestMessageKey_NoPointSelected(t *testing.T) {
	if got := MessageKey(ErrNoPointSelected); got != MsgSelectPOI {
		t.Errorf("MessageKey() = %q, want %q", got, MsgSelectPOI)
	}
	if got := MessageKey(errors.New("other")); got != "" {
		t.Errorf("MessageKey() = %q, want empty", got)
	}
}

func TestIsValidCoordinate(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{90.1, 0, false},
		{0, -180.5, false},
	}

	for _, tt := range tests {
		if got := IsValidCoordinate(tt.lat, tt.lon); got != tt.want {
			t.Errorf("IsValidCoordinate(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
		}
	}
}
