package mailing

import (
	"context"
	"errors"
	"sync"

	"talent-marketplace/internal/logger"

	"go.uber.org/zap"
)

// Message is a single outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Job is a message plus an optional callback receiving the send result.
type Job struct {
	Message Message
	Done    func(err error)
}

var ErrDispatcherClosed = errors.New("mail dispatcher closed")

// Dispatcher sends mail on background workers. When the queue is full or the
// dispatcher is stopped, Submit sends synchronously on the caller's goroutine.
type Dispatcher struct {
	sender  Sender
	queue   chan Job
	workers int

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(sender Sender, workers, buffer int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Dispatcher{
		sender:  sender,
		queue:   make(chan Job, buffer),
		workers: workers,
	}
}

func (d *Dispatcher) Start() {
	logger.Get().Info("Starting mail dispatcher", zap.Int("workers", d.workers))
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Stop closes the queue and waits for queued jobs to drain.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	logger.Get().Info("Mail dispatcher stopped")
}

// Submit queues job, or sends it inline when the queue cannot take it.
// It reports whether the job was queued.
func (d *Dispatcher) Submit(job Job) bool {
	d.mu.RLock()
	if !d.closed {
		select {
		case d.queue <- job:
			d.mu.RUnlock()
			return true
		default:
		}
	}
	d.mu.RUnlock()

	logger.Get().Debug("mail queue unavailable, sending inline", zap.String("to", job.Message.To))
	d.deliver(context.Background(), job)
	return false
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for job := range d.queue {
		d.deliver(context.Background(), job)
	}
	logger.Get().Debug("mail worker stopping", zap.Int("worker_id", id))
}

func (d *Dispatcher) deliver(ctx context.Context, job Job) {
	err := d.sender.Send(ctx, job.Message)
	if err != nil {
		logger.Get().Warn("email send failed",
			zap.String("to", job.Message.To),
			zap.String("subject", job.Message.Subject),
			zap.Error(err))
	}
	if job.Done != nil {
		job.Done(err)
	}
}
