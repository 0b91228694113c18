package push

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

const (
	DefaultDispatchWorkers = 4
	DefaultDispatchQueue   = 1024
	DefaultSendTimeout     = 30 * time.Second

	// dispatchChunk is the number of recipients one queued job carries, so a
	// large broadcast spreads over every worker.
	dispatchChunk = 50
)

var (
	ErrDispatchQueueFull = errors.New("push queue is full")
	ErrDispatcherClosed  = errors.New("push dispatcher is closed")
)

type dispatchJob struct {
	ctx     context.Context
	userIDs []string
	title   string
	body    string
}

// Dispatcher queues deliveries for a fixed pool of workers that send them
// through the wrapped channel. Dispatch never blocks: a full queue drops the
// rest of the recipients and reports ErrDispatchQueueFull.
type Dispatcher struct {
	next    contract.IPushChannel
	jobs    chan dispatchJob
	timeout time.Duration
	logger  usecasecontract.IAppLogger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ contract.IPushDispatcher = (*Dispatcher)(nil)

func NewDispatcher(next contract.IPushChannel, workers, queueSize int, timeout time.Duration, logger usecasecontract.IAppLogger) *Dispatcher {
	if workers < 1 {
		workers = DefaultDispatchWorkers
	}
	if queueSize < 1 {
		queueSize = DefaultDispatchQueue
	}
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	d := &Dispatcher{
		next:    next,
		jobs:    make(chan dispatchJob, queueSize),
		timeout: timeout,
		logger:  logger,
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer d.wg.Done()
			for job := range d.jobs {
				d.deliver(job)
			}
		}()
	}
	return d
}

// Dispatch queues the recipients in chunks. The queued work keeps ctx's
// values but not its cancellation.
func (d *Dispatcher) Dispatch(ctx context.Context, userIDs []string, title, body string) error {
	if len(userIDs) == 0 {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	detached := context.WithoutCancel(ctx)
	for start := 0; start < len(userIDs); start += dispatchChunk {
		end := min(start+dispatchChunk, len(userIDs))
		job := dispatchJob{
			ctx:     detached,
			userIDs: append([]string(nil), userIDs[start:end]...),
			title:   title,
			body:    body,
		}
		select {
		case d.jobs <- job:
		default:
			d.logger.Warnf("push queue full: dropped %d of %d recipients", len(userIDs)-start, len(userIDs))
			return ErrDispatchQueueFull
		}
	}
	return nil
}

func (d *Dispatcher) deliver(job dispatchJob) {
	for _, userID := range job.userIDs {
		ctx, cancel := context.WithTimeout(job.ctx, d.timeout)
		if err := d.next.Send(ctx, userID, job.title, job.body); err != nil {
			d.logger.Warnf("push delivery to user %s failed: %v", userID, err)
		}
		cancel()
	}
}

// Close stops accepting work and waits for queued deliveries to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
