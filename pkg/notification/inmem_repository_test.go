package notification

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemNotificationRepository(t *testing.T) {
	repo := NewInMemNotificationRepository()
	ctx := context.Background()

	record, err := repo.CreateNotification(ctx, CreateNotificationParams{Recipient: "a@example.com", Topic: "generic", Subject: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), record.ID)
	assert.False(t, record.CreatedAt.IsZero())

	got, err := repo.GetNotification(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, got)

	_, err = repo.GetNotification(ctx, 99)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestInMemNotificationRepository_ConcurrentIDsAreUnique(t *testing.T) {
	repo := NewInMemNotificationRepository()

	var wg sync.WaitGroup
	ids := make(chan int64, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record, err := repo.CreateNotification(context.Background(), CreateNotificationParams{Recipient: "a@example.com", Topic: "generic", Subject: "Hi"})
			if err == nil {
				ids <- record.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, 50)
	assert.Equal(t, 50, repo.Count())
}
