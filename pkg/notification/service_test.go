package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tendant/simple-notify/pkg/errors"
)

func setupNotificationService(t *testing.T) (*NotificationService, *InMemNotificationRepository, *MockTransport) {
	repo := NewInMemNotificationRepository()
	transport := &MockTransport{}
	service, err := NewNotificationService(repo,
		WithTransport(transport),
		WithSender("noreply@example.com"),
	)
	require.NoError(t, err)
	return service, repo, transport
}

func TestNotificationService_Create(t *testing.T) {
	service, repo, transport := setupNotificationService(t)
	ctx := context.Background()

	recipients := []string{"a@example.com", "b@example.com", "c@example.com"}
	ids, err := service.Create(ctx, CreateParams{
		Recipients: recipients,
		Subject:    "Hello",
		Topic:      "generic",
		BodyHTML:   "<p>Hi</p>",
		BodyText:   "Hi",
	})
	require.NoError(t, err)
	require.Len(t, ids, len(recipients))
	assert.Equal(t, len(recipients), repo.Count())

	// ids follow recipient order
	for i, id := range ids {
		record, err := repo.GetNotification(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, recipients[i], record.Recipient)
		assert.Equal(t, "generic", record.Topic)
	}

	sent := transport.SentEmails()
	require.Len(t, sent, len(recipients))
	for i, email := range sent {
		assert.Equal(t, recipients[i], email.To)
		assert.Equal(t, "noreply@example.com", email.From)
	}
}

func TestNotificationService_CreateInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		params CreateParams
	}{
		{
			name:   "No recipients",
			params: CreateParams{Subject: "Hello", Topic: "generic"},
		},
		{
			name:   "Empty recipients",
			params: CreateParams{Recipients: []string{}, Subject: "Hello", Topic: "generic"},
		},
		{
			name:   "Blank recipient",
			params: CreateParams{Recipients: []string{"a@example.com", ""}, Subject: "Hello", Topic: "generic"},
		},
		{
			name:   "Missing subject",
			params: CreateParams{Recipients: []string{"a@example.com"}, Topic: "generic"},
		},
		{
			name:   "Missing topic",
			params: CreateParams{Recipients: []string{"a@example.com"}, Subject: "Hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, transport := setupNotificationService(t)

			ids, err := service.Create(context.Background(), tt.params)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
			assert.Empty(t, ids)
			assert.Equal(t, 0, repo.Count())
			assert.Empty(t, transport.SentEmails())
		})
	}
}

func TestNotificationService_CreateWhenDeliveryFails(t *testing.T) {
	repo := NewInMemNotificationRepository()
	transport := &MockTransport{Err: errors.New("smtp relay down")}
	service, err := NewNotificationService(repo, WithTransport(transport))
	require.NoError(t, err)

	ids, err := service.Create(context.Background(), CreateParams{
		Recipients: []string{"a@example.com", "b@example.com"},
		Subject:    "Hello",
		Topic:      "generic",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)

	// records stay persisted even though nothing was delivered
	for _, id := range ids {
		_, err := repo.GetNotification(context.Background(), id)
		assert.NoError(t, err)
	}
}

func TestNotificationService_CreateStoreFailure(t *testing.T) {
	service, repo, transport := setupNotificationService(t)
	repo.FailCreate = errors.New("database unavailable")

	ids, err := service.Create(context.Background(), CreateParams{
		Recipients: []string{"a@example.com"},
		Subject:    "Hello",
		Topic:      "generic",
	})
	require.Error(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, transport.SentEmails())
}

func TestNotificationService_Send(t *testing.T) {
	t.Run("Missing record is swallowed", func(t *testing.T) {
		service, _, transport := setupNotificationService(t)

		err := service.Send(context.Background(), 42)
		assert.NoError(t, err)
		assert.Empty(t, transport.SentEmails())
	})

	t.Run("Transport failure is swallowed", func(t *testing.T) {
		repo := NewInMemNotificationRepository()
		transport := &MockTransport{}
		service, err := NewNotificationService(repo, WithTransport(transport))
		require.NoError(t, err)

		record, err := repo.CreateNotification(context.Background(), CreateNotificationParams{
			Recipient: "a@example.com",
			Topic:     "generic",
			Subject:   "Hello",
		})
		require.NoError(t, err)

		transport.Err = errors.New("connection refused")
		assert.NoError(t, service.Send(context.Background(), record.ID))

		stored, err := service.Get(context.Background(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", stored.Recipient)
	})
}

func TestNewNotificationService_Channel(t *testing.T) {
	repo := NewInMemNotificationRepository()

	t.Run("Text channel is not supported", func(t *testing.T) {
		_, err := NewNotificationService(repo, WithTransport(&MockTransport{}), WithChannel(ChannelText))
		assert.ErrorIs(t, err, ErrChannelNotSupported)
	})

	t.Run("Unknown channel", func(t *testing.T) {
		_, err := NewNotificationService(repo, WithTransport(&MockTransport{}), WithChannel("pigeon"))
		assert.ErrorIs(t, err, ErrUnknownChannel)
	})

	t.Run("Email without transport", func(t *testing.T) {
		_, err := NewNotificationService(repo)
		assert.Error(t, err)
	})

	t.Run("Nil repository", func(t *testing.T) {
		_, err := NewNotificationService(nil, WithTransport(&MockTransport{}))
		assert.Error(t, err)
	})
}
