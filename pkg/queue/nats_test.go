package queue

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connectNats connects to NATS or skips the test if NATS_URL is not set.
func connectNats(t *testing.T) *NatsQueue {
	t.Helper()

	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("requires NATS_URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	q, err := ConnectNats(ctx, url, "NOTIFY_TEST")
	require.NoError(t, err)
	t.Cleanup(func() { _ = q.Close() })
	return q
}

func TestNatsQueue_PublishSubscribe(t *testing.T) {
	q := connectNats(t)
	subject := "notify.test." + uuid.NewString()

	received := make(chan []byte, 1)
	stop, err := q.Subscribe(context.Background(), subject, func(ctx context.Context, s string, data []byte) error {
		received <- data
		return nil
	})
	require.NoError(t, err)
	defer stop()

	require.NoError(t, q.Publish(context.Background(), subject, []byte(`{"ok":true}`)))

	select {
	case data := <-received:
		assert.JSONEq(t, `{"ok":true}`, string(data))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestNatsQueue_PermanentErrorIsNotRedelivered(t *testing.T) {
	q := connectNats(t)
	subject := "notify.test." + uuid.NewString()

	var calls atomic.Int32
	stop, err := q.Subscribe(context.Background(), subject, func(ctx context.Context, s string, data []byte) error {
		calls.Add(1)
		return fmt.Errorf("%w: bad payload", ErrPermanent)
	})
	require.NoError(t, err)
	defer stop()

	require.NoError(t, q.Publish(context.Background(), subject, []byte("{not json")))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)
	// A nacked message would be redelivered almost immediately.
	time.Sleep(2 * time.Second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDurableName(t *testing.T) {
	assert.Equal(t, "notify-notify-digest-saved_search", durableName(SubjectSavedSearchDigest))
	assert.Equal(t, "notify-notify-all", durableName("notify.>"))
}
