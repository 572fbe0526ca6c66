package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "Groceries|Market Square",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %s vs %s", id1, id2)
			}
			if len(id1) != 32 {
				t.Errorf("IDFromContent() produced %d hex chars, want 32", len(id1))
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestNewReminderDataItem_GeneratesID(t *testing.T) {
	a := NewReminderDataItem("title", "", "location", nil, nil)
	b := NewReminderDataItem("title", "", "location", nil, nil)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDataItem_ToReminderRoundTrip(t *testing.T) {
	item := NewReminderDataItem("title", "description", "location", Float(52.52), Float(13.405))

	reminder := item.ToReminder()
	require.True(t, reminder.HasCoordinates())
	assert.Equal(t, item.ID, reminder.ID)
	assert.Equal(t, "title", reminder.Title)
	assert.Equal(t, "description", reminder.Description)
	assert.Equal(t, "location", reminder.Location)
	assert.Equal(t, 52.52, *reminder.Latitude)
	assert.Equal(t, 13.405, *reminder.Longitude)

	back := DataItemFromReminder(reminder)
	assert.Equal(t, *item, back)
}

func TestDataItem_ToReminderCopiesCoordinates(t *testing.T) {
	item := NewReminderDataItem("title", "", "location", Float(1), Float(2))
	reminder := item.ToReminder()

	*item.Latitude = 50

	assert.Equal(t, 1.0, *reminder.Latitude)
}

func TestDataItem_ToReminderAssignsMissingID(t *testing.T) {
	item := &ReminderDataItem{Title: "title", Location: "location"}

	reminder := item.ToReminder()

	assert.NotEmpty(t, reminder.ID)
	assert.Equal(t, item.ID, reminder.ID)
}

func TestReminder_HasCoordinates(t *testing.T) {
	assert.False(t, (&Reminder{}).HasCoordinates())
	assert.False(t, (&Reminder{Latitude: Float(1)}).HasCoordinates())
	assert.True(t, (&Reminder{Latitude: Float(0), Longitude: Float(0)}).HasCoordinates())
}
