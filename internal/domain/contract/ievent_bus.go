package contract

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// IEventBus delivers events to live subscribers.
type IEventBus interface {
	Publish(ctx context.Context, topic string, event entity.Event) error
	// Subscribe returns a channel that is closed when ctx is cancelled.
	Subscribe(ctx context.Context, topic string) (<-chan entity.Event, error)
}

// IPushChannel sends a user-facing message outside the app (device, mail, ...).
type IPushChannel interface {
	Send(ctx context.Context, userID, title, body string) error
}

// IPushDispatcher hands deliveries to background workers and returns without
// waiting for them. A caller's cancellation never drops queued deliveries.
type IPushDispatcher interface {
	Dispatch(ctx context.Context, userIDs []string, title, body string) error
}
