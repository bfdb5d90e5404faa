package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tendant/simple-notify/pkg/validation"
)

// NotificationService persists one record per recipient and delivers each
// record right after it is stored.
type NotificationService struct {
	repo    NotificationRepository
	channel Channel
	deps    HandlerDeps
}

// NotificationServiceOption configures a NotificationService
type NotificationServiceOption func(*NotificationService) error

// WithChannel selects the delivery channel used for every record
func WithChannel(channel Channel) NotificationServiceOption {
	return func(s *NotificationService) error {
		s.channel = channel
		return nil
	}
}

// WithTransport sets the mail transport used by the email handler
func WithTransport(transport Transport) NotificationServiceOption {
	return func(s *NotificationService) error {
		s.deps.Transport = transport
		return nil
	}
}

// WithSMTP builds an SMTP transport from config
func WithSMTP(config SMTPConfig) NotificationServiceOption {
	return func(s *NotificationService) error {
		transport, err := NewSMTPTransport(config)
		if err != nil {
			return err
		}
		s.deps.Transport = transport
		if s.deps.Sender == "" {
			s.deps.Sender = config.From
		}
		return nil
	}
}

// WithSender sets the From address of outgoing email
func WithSender(sender string) NotificationServiceOption {
	return func(s *NotificationService) error {
		s.deps.Sender = sender
		return nil
	}
}

// NewNotificationService creates a service delivering over the email channel
// unless WithChannel says otherwise. The channel is resolved once here so a
// misconfigured process fails at startup.
func NewNotificationService(repo NotificationRepository, opts ...NotificationServiceOption) (*NotificationService, error) {
	if repo == nil {
		return nil, fmt.Errorf("notification repository cannot be nil")
	}

	s := &NotificationService{
		repo:    repo,
		channel: ChannelEmail,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if _, err := NewHandler(s.channel, s.deps); err != nil {
		return nil, err
	}
	return s, nil
}

// Create validates params, then persists and delivers one record per
// recipient. Delivery failures are logged and never affect the returned ids.
// A store failure stops the fan-out; records written before it stay written.
func (s *NotificationService) Create(ctx context.Context, params CreateParams) ([]int64, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(params.Recipients))
	for _, recipient := range params.Recipients {
		record, err := s.repo.CreateNotification(ctx, CreateNotificationParams{
			Recipient:  recipient,
			Topic:      params.Topic,
			Subject:    params.Subject,
			BodyText:   params.BodyText,
			BodyHTML:   params.BodyHTML,
			OnClickURL: params.OnClickURL,
		})
		if err != nil {
			slog.Error("Failed to persist notification", "recipient", recipient, "topic", params.Topic, "error", err)
			return ids, err
		}
		ids = append(ids, record.ID)

		if err := s.Send(ctx, record.ID); err != nil {
			slog.Error("Failed to resolve delivery handler", "id", record.ID, "channel", s.channel, "error", err)
		}
	}

	return ids, nil
}

// Send loads the record and hands it to the channel's handler. A missing
// record and any handler failure are logged only. The returned error is
// reserved for an unresolvable channel.
func (s *NotificationService) Send(ctx context.Context, id int64) error {
	record, err := s.repo.GetNotification(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			slog.Warn("Notification not found for delivery", "id", id)
		} else {
			slog.Error("Failed to load notification for delivery", "id", id, "error", err)
		}
		return nil
	}

	handler, err := NewHandler(s.channel, s.deps)
	if err != nil {
		return err
	}
	handler.Notify(ctx, record)
	return nil
}

// Get returns the stored record for id.
func (s *NotificationService) Get(ctx context.Context, id int64) (Record, error) {
	return s.repo.GetNotification(ctx, id)
}
