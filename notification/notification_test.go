package notification

import (
	"bytes"
	"context"
	"testing"

	"github.com/poiesic/georemind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriterNotifier_RequiresWriter(t *testing.T) {
	n, err := NewWriterNotifier(nil)
	assert.ErrorIs(t, err, ErrWriterRequired)
	assert.Nil(t, n)
}

func TestWriterNotifier_Notify(t *testing.T) {
	var buf bytes.Buffer
	n, err := NewWriterNotifier(&buf)
	require.NoError(t, err)

	item := core.ReminderDataItem{ID: "7", Title: "Buy milk", Description: "2 liters", Location: "Grocery"}
	require.NoError(t, n.Notify(context.Background(), item))

	assert.Equal(t, "[7] Buy milk @ Grocery\n  2 liters\n", buf.String())
}

func TestWriterNotifier_CancelledContext(t *testing.T) {
	var buf bytes.Buffer
	n, err := NewWriterNotifier(&buf)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.Notify(ctx, core.ReminderDataItem{ID: "1"}), context.Canceled)
	assert.Empty(t, buf.String())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "[1] Title\n", Format(core.ReminderDataItem{ID: "1", Title: "Title"}))
}

func TestFunc(t *testing.T) {
	var got core.ReminderDataItem
	var n Notifier = Func(func(ctx context.Context, item core.ReminderDataItem) error {
		got = item
		return nil
	})
	require.NoError(t, n.Notify(context.Background(), core.ReminderDataItem{ID: "x"}))
	assert.Equal(t, "x", got.ID)
}
