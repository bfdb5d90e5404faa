package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

const memoryBuffer = 16

// MemoryQueue is an in-process Queue. Each subscription handles its messages
// one at a time on its own goroutine; failed messages are logged and dropped.
type MemoryQueue struct {
	mu     sync.Mutex
	subs   map[string][]*memorySub
	closed bool
	wg     sync.WaitGroup
}

// memorySub never closes ch, so a Publish racing with stop cannot panic.
// done ends the subscription; messages already buffered are still handled.
type memorySub struct {
	ch   chan []byte
	done chan struct{}
	once sync.Once
}

func (s *memorySub) stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *memorySub) run(ctx context.Context, subject string, handler Handler) {
	handle := func(data []byte) {
		if err := handler(ctx, subject, data); err != nil {
			if errors.Is(err, ErrPermanent) {
				slog.Error("Dropping message", "subject", subject, "error", err)
				return
			}
			slog.Error("Message handler failed", "subject", subject, "error", err)
		}
	}

	for {
		select {
		case data := <-s.ch:
			handle(data)
		case <-s.done:
			for {
				select {
				case data := <-s.ch:
					handle(data)
				default:
					return
				}
			}
		}
	}
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{subs: make(map[string][]*memorySub)}
}

// Publish hands data to every current subscriber of subject. Publishing to a
// subject nobody listens on is a no-op. The subscriber list is copied under
// the lock and sent to without it, so a full buffer never blocks other
// publishers, subscribers or stop calls.
func (q *MemoryQueue) Publish(ctx context.Context, subject string, data []byte) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	subs := append([]*memorySub(nil), q.subs[subject]...)
	q.mu.Unlock()

	for _, sub := range subs {
		msg := append([]byte(nil), data...)
		select {
		case sub.ch <- msg:
		case <-sub.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (q *MemoryQueue) Subscribe(ctx context.Context, subject string, handler Handler) (func(), error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil, ErrClosed
	}

	sub := &memorySub{
		ch:   make(chan []byte, memoryBuffer),
		done: make(chan struct{}),
	}
	q.subs[subject] = append(q.subs[subject], sub)

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		sub.run(ctx, subject, handler)
	}()

	return func() { q.unsubscribe(subject, sub) }, nil
}

func (q *MemoryQueue) unsubscribe(subject string, sub *memorySub) {
	q.mu.Lock()
	subs := q.subs[subject]
	for i, s := range subs {
		if s == sub {
			q.subs[subject] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	q.mu.Unlock()
	sub.stop()
}

// Close stops every subscription and waits for in-flight messages.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	for _, subs := range q.subs {
		for _, sub := range subs {
			sub.stop()
		}
	}
	q.subs = nil
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}
