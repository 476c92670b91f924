package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pfjetdev/pfgrouptravel/internal/models"
	"github.com/pfjetdev/pfgrouptravel/pkg/notify"
	"github.com/sirupsen/logrus"
)

// Dispatcher hands a formatted summary to the notification relay without
// blocking the caller
type Dispatcher interface {
	Dispatch(kind models.RequestType, leadID string, msg notify.Message)
}

// NotificationDispatcher delivers summaries on background goroutines
type NotificationDispatcher struct {
	notifier notify.Notifier
	logger   *logrus.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewNotificationDispatcher creates a new dispatcher. A zero timeout means 15s.
func NewNotificationDispatcher(notifier notify.Notifier, logger *logrus.Logger, timeout time.Duration) *NotificationDispatcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &NotificationDispatcher{
		notifier: notifier,
		logger:   logger,
		timeout:  timeout,
	}
}

// Dispatch sends msg in the background. The delivery context is detached from
// the HTTP request so that responding does not cancel it.
func (d *NotificationDispatcher) Dispatch(kind models.RequestType, leadID string, msg notify.Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		entry := d.logger.WithFields(logrus.Fields{
			"request_type": kind,
			"lead_id":      leadID,
			"relay":        d.notifier.Name(),
		})

		err := d.notifier.Notify(ctx, msg)
		switch {
		case err == nil:
			entry.Info("Notification sent")
		case errors.Is(err, notify.ErrNotConfigured):
			entry.Warn("Notification relay not configured, skipping")
		default:
			entry.WithError(err).Warn("Notification failed")
		}
	}()
}

// Shutdown waits for in-flight deliveries or until ctx is done
func (d *NotificationDispatcher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
