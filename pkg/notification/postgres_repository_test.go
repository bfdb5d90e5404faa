package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tendant/simple-notify/pkg/database"
	"github.com/tendant/simple-notify/pkg/notification"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}
	ctx := context.Background()

	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(ctx, connStr))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresNotificationRepository(t *testing.T) {
	pool := setupTestDatabase(t)
	repo := notification.NewPostgresNotificationRepository(pool)
	ctx := context.Background()

	first, err := repo.CreateNotification(ctx, notification.CreateNotificationParams{
		Recipient:  "jane@example.com",
		Topic:      notification.TopicCustomerCompletedCreditApp,
		Subject:    "Thanks",
		BodyHTML:   "<p>Thanks</p>",
		OnClickURL: "https://example.com/status",
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := repo.CreateNotification(ctx, notification.CreateNotificationParams{
		Recipient: "sales@example.com",
		Topic:     notification.TopicSalesCompletedCreditApp,
		Subject:   "New app",
	})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	got, err := repo.GetNotification(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Recipient)
	assert.Equal(t, "https://example.com/status", got.OnClickURL)
	assert.Equal(t, "<p>Thanks</p>", got.BodyHTML)

	got, err = repo.GetNotification(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, got.OnClickURL)

	_, err = repo.GetNotification(ctx, second.ID+1000)
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)

	t.Run("WithTx rollback", func(t *testing.T) {
		tx, err := pool.Begin(ctx)
		require.NoError(t, err)

		record, err := repo.WithTx(tx).CreateNotification(ctx, notification.CreateNotificationParams{
			Recipient: "tx@example.com",
			Topic:     "generic",
			Subject:   "rolled back",
		})
		require.NoError(t, err)
		require.NoError(t, tx.Rollback(ctx))

		_, err = repo.GetNotification(ctx, record.ID)
		assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
	})
}
