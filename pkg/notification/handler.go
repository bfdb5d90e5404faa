package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
)

const (
	// HeaderNotificationRef carries "{id}@{recipient}" so bounces and opens can be traced back to a record
	HeaderNotificationRef = "X-Notification-Ref"
	// HeaderTrackOpens asks the mail relay to add open tracking
	HeaderTrackOpens = "X-Track-Opens"
)

// Handler transmits one stored notification through a channel. Delivery is
// best effort: handlers log their own failures and never report them.
type Handler interface {
	Notify(ctx context.Context, record Record)
}

// HandlerDeps are the collaborators a handler may need.
type HandlerDeps struct {
	Transport Transport
	Sender    string
}

// NewHandler selects the handler for channel. Unknown channels and channels
// without an implementation fail fast.
func NewHandler(channel Channel, deps HandlerDeps) (Handler, error) {
	switch channel {
	case ChannelEmail:
		if deps.Transport == nil {
			return nil, fmt.Errorf("email handler requires a transport")
		}
		return &EmailHandler{transport: deps.Transport, sender: deps.Sender}, nil
	case ChannelText:
		return nil, fmt.Errorf("%w: %s", ErrChannelNotSupported, channel)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}
}

// EmailHandler delivers records as email through a Transport.
type EmailHandler struct {
	transport Transport
	sender    string
}

// NewEmailHandler creates an EmailHandler sending from sender.
func NewEmailHandler(transport Transport, sender string) *EmailHandler {
	return &EmailHandler{transport: transport, sender: sender}
}

// Notify builds the message for record and hands it to the transport.
func (h *EmailHandler) Notify(ctx context.Context, record Record) {
	if record.Recipient == "" {
		slog.Warn("Skipping email notification without recipient", "id", record.ID)
		return
	}

	email := BuildEmail(h.sender, record)
	if err := h.transport.Send(ctx, email); err != nil {
		slog.Error("Failed to send email notification", "id", record.ID, "to", record.Recipient, "topic", record.Topic, "error", err)
		return
	}
	slog.Info("Email notification sent", "id", record.ID, "to", record.Recipient, "topic", record.Topic)
}

// BuildEmail maps a record onto an outgoing email.
func BuildEmail(sender string, record Record) Email {
	text := record.BodyText
	if record.OnClickURL != "" {
		text += "\n\n" + record.OnClickURL
	}

	return Email{
		From:    sender,
		To:      record.Recipient,
		Subject: record.Subject,
		Text:    text,
		HTML:    record.BodyHTML,
		Headers: map[string]string{
			HeaderNotificationRef: strconv.FormatInt(record.ID, 10) + "@" + record.Recipient,
			HeaderTrackOpens:      "yes",
		},
	}
}
