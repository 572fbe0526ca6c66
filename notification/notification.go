// Package notification delivers reminder notifications to the user.
package notification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/poiesic/georemind/core"
)

var (
	ErrWriterRequired = errors.New("notification writer is required")
)

// Notifier shows a notification for a reminder whose region was entered.
type Notifier interface {
	Notify(ctx context.Context, item core.ReminderDataItem) error
}

// Func adapts a function to the Notifier interface.
type Func func(ctx context.Context, item core.ReminderDataItem) error

func (f Func) Notify(ctx context.Context, item core.ReminderDataItem) error {
	return f(ctx, item)
}

// WriterNotifier renders notifications as text lines on an io.Writer.
// Safe for concurrent use.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

var _ Notifier = (*WriterNotifier)(nil)

// NewWriterNotifier creates a notifier writing to w.
func NewWriterNotifier(w io.Writer) (*WriterNotifier, error) {
	if w == nil {
		return nil, ErrWriterRequired
	}
	return &WriterNotifier{w: w}, nil
}

// Notify writes one notification block.
func (n *WriterNotifier) Notify(ctx context.Context, item core.ReminderDataItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	_, err := io.WriteString(n.w, Format(item))
	return err
}

// Format renders the notification text for an item.
func Format(item core.ReminderDataItem) string {
	text := fmt.Sprintf("[%s] %s", item.ID, item.Title)
	if item.Location != "" {
		text += " @ " + item.Location
	}
	text += "\n"
	if item.Description != "" {
		text += "  " + item.Description + "\n"
	}
	return text
}
