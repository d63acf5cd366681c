// Package worker runs side effects (webhooks, e-mails, AI jobs) off the
// request path.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"psytech/internal/metrics"

	"golang.org/x/sync/errgroup"
)

// Task is a unit of background work. The context is cancelled only when the
// pool is stopped without finishing its queue in time.
type Task func(ctx context.Context)

type Dispatcher interface {
	Enqueue(name string, task Task)
}

type job struct {
	name string
	task Task
}

type Pool struct {
	log     *slog.Logger
	workers int
	queue   chan job

	ctx    context.Context
	cancel context.CancelFunc
	g      *errgroup.Group

	mu      sync.RWMutex
	started bool
	closed  bool
}

func NewPool(log *slog.Logger, workers, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		log:     log,
		workers: workers,
		queue:   make(chan job, queueSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (p *Pool) Start() {
	const op = "worker.Pool.Start"

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.started = true

	g, ctx := errgroup.WithContext(p.ctx)
	p.g = g

	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			for j := range p.queue {
				p.run(ctx, j)
			}
			return nil
		})
	}

	p.log.Info("worker pool started", slog.String("op", op), slog.Int("workers", p.workers))
}

// Enqueue never blocks. A full or stopped pool drops the task.
func (p *Pool) Enqueue(name string, task Task) {
	const op = "worker.Pool.Enqueue"

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.drop(op, name, "pool stopped")
		return
	}

	select {
	case p.queue <- job{name: name, task: task}:
	default:
		p.drop(op, name, "queue full")
	}
}

func (p *Pool) drop(op, name, reason string) {
	metrics.WorkerTasksTotal.WithLabelValues(name, metrics.ResultDropped).Inc()
	p.log.Warn("task dropped",
		slog.String("op", op),
		slog.String("task", name),
		slog.String("reason", reason),
	)
}

func (p *Pool) run(ctx context.Context, j job) {
	const op = "worker.Pool.run"

	defer func() {
		if r := recover(); r != nil {
			metrics.WorkerTasksTotal.WithLabelValues(j.name, metrics.ResultPanic).Inc()
			p.log.Error("task panicked",
				slog.String("op", op),
				slog.String("task", j.name),
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()

	j.task(ctx)
	metrics.WorkerTasksTotal.WithLabelValues(j.name, metrics.ResultDone).Inc()
}

// Stop refuses new tasks and waits for the queue to drain. If ctx expires
// first, running tasks are cancelled and ctx's error is returned.
func (p *Pool) Stop(ctx context.Context) error {
	const op = "worker.Pool.Stop"

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	started := p.started
	p.mu.Unlock()

	if !started {
		p.cancel()
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- p.g.Wait()
	}()

	select {
	case err := <-done:
		p.cancel()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		p.log.Info("worker pool drained", slog.String("op", op))
		return nil
	case <-ctx.Done():
		p.cancel()
		return fmt.Errorf("%s: %w", op, errors.Join(ErrDrainTimeout, ctx.Err()))
	}
}

var ErrDrainTimeout = errors.New("worker queue not drained before shutdown deadline")

// Sync runs every task inline on the caller's goroutine.
type Sync struct{}

func (Sync) Enqueue(_ string, task Task) {
	task(context.Background())
}
