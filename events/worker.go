package events

import (
	"context"
	"log/slog"
	"sync"
)

// Delivery is a message handed to the pool. It is acknowledged once the
// handler succeeds and negatively acknowledged otherwise.
type Delivery interface {
	Payload() []byte
	Ack() error
	Nak() error
}

type HandlerFunc func(ctx context.Context, payload []byte) error

type WorkerPool struct {
	jobs    chan Delivery
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	handler HandlerFunc
}

func NewWorkerPool(ctx context.Context, maxWorkers, queueSize int, handler HandlerFunc) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 2
	}
	if queueSize < 1 {
		queueSize = 100
	}

	poolCtx, cancel := context.WithCancel(ctx)

	pool := &WorkerPool{
		jobs:    make(chan Delivery, queueSize),
		ctx:     poolCtx,
		cancel:  cancel,
		handler: handler,
	}

	for i := 0; i < maxWorkers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

func (w *WorkerPool) worker() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case d, ok := <-w.jobs:
			if !ok {
				return
			}
			w.process(d)
		}
	}
}

func (w *WorkerPool) process(d Delivery) {
	if err := w.handler(w.ctx, d.Payload()); err != nil {
		slog.Error("failed to handle cart event", "err", err)
		if err := d.Nak(); err != nil {
			slog.Error("failed to nak cart event", "err", err)
		}
		return
	}

	if err := d.Ack(); err != nil {
		slog.Error("failed to ack cart event", "err", err)
	}
}

// Submit queues d, blocking while the queue is full. It returns false once
// either ctx or the pool is cancelled.
func (w *WorkerPool) Submit(ctx context.Context, d Delivery) bool {
	if w.ctx.Err() != nil || ctx.Err() != nil {
		return false
	}

	select {
	case w.jobs <- d:
		return true
	case <-ctx.Done():
		return false
	case <-w.ctx.Done():
		return false
	}
}

// Stop cancels the workers; queued deliveries that were not picked up are
// dropped and will be redelivered by the server.
func (w *WorkerPool) Stop() {
	w.cancel()
}

// Close stops accepting work and lets the workers drain the queue.
func (w *WorkerPool) Close() {
	close(w.jobs)
}

func (w *WorkerPool) Wait() {
	w.wg.Wait()
}
