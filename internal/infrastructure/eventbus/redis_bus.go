package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

const channelPrefix = "workmatch:"

// RedisBus publishes events on redis pub/sub channels, one channel per topic.
type RedisBus struct {
	rdb    *redis.Client
	logger usecasecontract.IAppLogger
}

var _ contract.IEventBus = (*RedisBus)(nil)

func NewRedisBus(rdb *redis.Client, logger usecasecontract.IAppLogger) *RedisBus {
	return &RedisBus{rdb: rdb, logger: logger}
}

func (b *RedisBus) Publish(ctx context.Context, topic string, event entity.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return b.rdb.Publish(ctx, channelPrefix+topic, payload).Err()
}

// Subscribe confirms the subscription with redis before returning, so events
// published after the call are not missed.
func (b *RedisBus) Subscribe(ctx context.Context, topic string) (<-chan entity.Event, error) {
	sub := b.rdb.Subscribe(ctx, channelPrefix+topic)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	out := make(chan entity.Event, subscriberBuffer)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev entity.Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					b.logger.Warnf("dropping malformed event on %s: %v", msg.Channel, err)
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
