package notify

import (
	"context"
	"dailyq/internal/question"
	"errors"
	"fmt"
)

// Notifier delivers a batch of questions to the recipient.
type Notifier interface {
	Notify(ctx context.Context, batch []question.Question) error
}

// Multi delivers a batch through every wrapped notifier.
// All notifiers are attempted; the batch counts as delivered only when all succeed.
type Multi struct {
	notifiers []Notifier
}

// Notify calls every notifier and joins their errors.
func (m *Multi) Notify(ctx context.Context, batch []question.Question) error {
	if len(m.notifiers) == 0 {
		return errors.New("no delivery channel configured")
	}

	var errs []error
	for i, n := range m.notifiers {
		if err := n.Notify(ctx, batch); err != nil {
			errs = append(errs, fmt.Errorf("channel %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// NewMulti combines notifiers into one.
func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}
