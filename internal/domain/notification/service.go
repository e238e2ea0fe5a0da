package notification

import (
	"context"
)

// Notifier accepts events for asynchronous delivery. Notify never blocks and
// never fails the caller; undeliverable events are dropped and logged.
type Notifier interface {
	Notify(ctx context.Context, events ...Event)
}

// Service defines the notification service interface
type Service interface {
	Notifier

	// SSE subscription; admins also receive admin-audience events.
	Subscribe(ctx context.Context, userID string, isAdmin bool) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
