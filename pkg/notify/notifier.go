// Package notify relays formatted lead summaries to operators.
package notify

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by a relay that has no credentials. Callers
// treat it as "skip", not as a failure.
var ErrNotConfigured = errors.New("notification relay not configured")

// Message is one formatted notification
type Message struct {
	Subject string
	HTML    string // Telegram-flavoured HTML: <b>, <i>, newlines
}

// Notifier delivers a message to one destination
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
	Name() string
}

// Multi fans a message out to every relay. A relay returning
// ErrNotConfigured is skipped; other failures are joined.
type Multi []Notifier

// Notify implements Notifier
func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	delivered := 0
	for _, n := range m {
		err := n.Notify(ctx, msg)
		switch {
		case err == nil:
			delivered++
		case errors.Is(err, ErrNotConfigured):
		default:
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if delivered == 0 {
		return ErrNotConfigured
	}
	return nil
}

// Name implements Notifier
func (m Multi) Name() string {
	return "multi"
}
