package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue_PublishSubscribe(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	received := make(chan string, 2)
	stop, err := q.Subscribe(context.Background(), SubjectSavedSearchDigest, func(ctx context.Context, subject string, data []byte) error {
		received <- subject + ":" + string(data)
		return nil
	})
	require.NoError(t, err)
	defer stop()

	require.NoError(t, q.Publish(context.Background(), SubjectSavedSearchDigest, []byte("one")))
	require.NoError(t, q.Publish(context.Background(), "notify.other", []byte("ignored")))
	require.NoError(t, q.Publish(context.Background(), SubjectSavedSearchDigest, []byte("two")))

	for _, want := range []string{"one", "two"} {
		select {
		case got := <-received:
			assert.Equal(t, SubjectSavedSearchDigest+":"+want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestMemoryQueue_HandlerErrorDoesNotStopSubscription(t *testing.T) {
	q := NewMemoryQueue()

	var mu sync.Mutex
	var seen []string
	_, err := q.Subscribe(context.Background(), "notify.jobs", func(ctx context.Context, subject string, data []byte) error {
		mu.Lock()
		seen = append(seen, string(data))
		mu.Unlock()
		if string(data) == "bad" {
			return errors.New("cannot handle")
		}
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, q.Publish(context.Background(), "notify.jobs", []byte("bad")))
	require.NoError(t, q.Publish(context.Background(), "notify.jobs", []byte("good")))

	// Close waits for in-flight messages
	require.NoError(t, q.Close())
	assert.Equal(t, []string{"bad", "good"}, seen)
}

func TestMemoryQueue_Stop(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	calls := 0
	stop, err := q.Subscribe(context.Background(), "notify.jobs", func(ctx context.Context, subject string, data []byte) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	stop()
	stop()

	require.NoError(t, q.Publish(context.Background(), "notify.jobs", []byte("late")))
	assert.Equal(t, 0, calls)
}

func TestMemoryQueue_Closed(t *testing.T) {
	q := NewMemoryQueue()
	require.NoError(t, q.Close())
	require.NoError(t, q.Close())

	assert.ErrorIs(t, q.Publish(context.Background(), "notify.jobs", nil), ErrClosed)
	_, err := q.Subscribe(context.Background(), "notify.jobs", func(context.Context, string, []byte) error { return nil })
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMemoryQueue_FullBufferDoesNotBlockOtherCalls(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	gate := make(chan struct{})
	_, err := q.Subscribe(context.Background(), "notify.slow", func(ctx context.Context, subject string, data []byte) error {
		<-gate
		return nil
	})
	require.NoError(t, err)
	stopOther, err := q.Subscribe(context.Background(), "notify.other", func(context.Context, string, []byte) error { return nil })
	require.NoError(t, err)

	// One message in the handler plus a full buffer leaves this publisher
	// waiting for space.
	published := make(chan struct{})
	go func() {
		defer close(published)
		for i := 0; i < memoryBuffer+2; i++ {
			_ = q.Publish(context.Background(), "notify.slow", []byte("job"))
		}
	}()
	time.Sleep(100 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = q.Publish(context.Background(), "notify.other", []byte("ping"))
		stopOther()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish and stop blocked behind a full subscriber")
	}

	close(gate)
	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("slow publisher never finished")
	}
}

func TestMemoryQueue_PublishToStoppedSubscriberReturns(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	gate := make(chan struct{})
	defer close(gate)
	stop, err := q.Subscribe(context.Background(), "notify.slow", func(ctx context.Context, subject string, data []byte) error {
		<-gate
		return nil
	})
	require.NoError(t, err)

	published := make(chan struct{})
	go func() {
		defer close(published)
		for i := 0; i < memoryBuffer+3; i++ {
			_ = q.Publish(context.Background(), "notify.slow", []byte("job"))
		}
	}()
	time.Sleep(100 * time.Millisecond)
	stop()

	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher stayed blocked after the subscription stopped")
	}
}
