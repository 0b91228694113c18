package eventbus

import (
	"context"
	"sync"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
)

const subscriberBuffer = 64

// InMemoryBus delivers events inside one process. A subscriber that falls
// behind by more than subscriberBuffer events loses the newest ones.
type InMemoryBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]chan entity.Event
}

var _ contract.IEventBus = (*InMemoryBus)(nil)

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{subs: make(map[string]map[int]chan entity.Event)}
}

func (b *InMemoryBus) Publish(_ context.Context, topic string, event entity.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[topic] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (b *InMemoryBus) Subscribe(ctx context.Context, topic string) (<-chan entity.Event, error) {
	ch := make(chan entity.Event, subscriberBuffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]chan entity.Event)
	}
	b.subs[topic][id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs[topic], id)
		if len(b.subs[topic]) == 0 {
			delete(b.subs, topic)
		}
		close(ch)
		b.mu.Unlock()
	}()
	return ch, nil
}

// Subscribers returns the number of live subscriptions on topic.
func (b *InMemoryBus) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
