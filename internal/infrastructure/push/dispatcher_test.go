package push

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedChannel blocks every Send until release is closed.
type gatedChannel struct {
	release chan struct{}
	mu      sync.Mutex
	sent    []string
	ctxErrs []error
}

func newGatedChannel() *gatedChannel {
	return &gatedChannel{release: make(chan struct{})}
}

func (g *gatedChannel) Send(ctx context.Context, userID, _, _ string) error {
	<-g.release
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, userID)
	g.ctxErrs = append(g.ctxErrs, ctx.Err())
	return nil
}

func (g *gatedChannel) delivered() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.sent...)
}

func TestDispatcher_ReturnsBeforeDelivery(t *testing.T) {
	next := newGatedChannel()
	d := NewDispatcher(next, 2, 16, time.Second, nopLogger{})

	done := make(chan error, 1)
	go func() { done <- d.Dispatch(context.Background(), []string{"u1", "u2", "u3"}, "WorkMatch", "hi") }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Dispatch waited for delivery")
	}
	assert.Empty(t, next.delivered())

	close(next.release)
	d.Close()
	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, next.delivered())
}

func TestDispatcher_IgnoresCallerCancellation(t *testing.T) {
	next := newGatedChannel()
	d := NewDispatcher(next, 1, 16, time.Second, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.Dispatch(ctx, []string{"u1", "u2"}, "WorkMatch", "hi"))
	cancel()

	close(next.release)
	d.Close()
	assert.Equal(t, []string{"u1", "u2"}, next.delivered())
	for _, err := range next.ctxErrs {
		assert.NoError(t, err)
	}
}

func TestDispatcher_SpreadsLargeFanOutAcrossJobs(t *testing.T) {
	next := &stubChannel{}
	d := NewDispatcher(next, 1, 16, time.Second, nopLogger{})

	ids := make([]string, 3*dispatchChunk+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("u%d", i)
	}
	require.NoError(t, d.Dispatch(context.Background(), ids, "WorkMatch", "hi"))
	d.Close()
	assert.Len(t, next.sent, len(ids))
}

func TestDispatcher_FullQueueDropsAndReports(t *testing.T) {
	next := newGatedChannel()
	d := NewDispatcher(next, 1, 1, time.Second, nopLogger{})

	ids := make([]string, 4*dispatchChunk)
	for i := range ids {
		ids[i] = fmt.Sprintf("u%d", i)
	}
	err := d.Dispatch(context.Background(), ids, "WorkMatch", "hi")
	assert.ErrorIs(t, err, ErrDispatchQueueFull)

	close(next.release)
	d.Close()
	assert.Less(t, len(next.delivered()), len(ids))
}

func TestDispatcher_Closed(t *testing.T) {
	d := NewDispatcher(&stubChannel{}, 1, 1, time.Second, nopLogger{})
	d.Close()
	d.Close()
	assert.ErrorIs(t, d.Dispatch(context.Background(), []string{"u1"}, "t", "b"), ErrDispatcherClosed)
	assert.NoError(t, d.Dispatch(context.Background(), nil, "t", "b"))
}
