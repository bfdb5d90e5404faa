// Package notification persists notification records and delivers them over a
// pluggable channel.
//
// A notification is created once per recipient. NotificationService.Create
// validates the request, writes one Record per recipient through a
// NotificationRepository and immediately attempts delivery of each record.
// Delivery is best effort: a Handler logs transport failures and never returns
// them, so a caller of Create cannot tell "delivered" from "stored but not
// delivered".
//
// # Channels
//
// Only email is implemented. NewHandler returns ErrChannelNotSupported for
// ChannelText and ErrUnknownChannel for anything else, and
// NewNotificationService calls it once so a bad NOTIFY_CHANNEL stops the
// process at startup.
//
// # Email
//
//	transport, err := notification.NewSMTPTransport(notification.SMTPConfig{
//	    Host: "localhost",
//	    Port: 1025,
//	    From: "noreply@example.com",
//	})
//
//	service, err := notification.NewNotificationService(
//	    notification.NewPostgresNotificationRepository(pool),
//	    notification.WithTransport(transport),
//	    notification.WithSender("noreply@example.com"),
//	)
//
//	ids, err := service.Create(ctx, notification.CreateParams{
//	    Recipients: []string{"a@example.com", "b@example.com"},
//	    Subject:    "Hello",
//	    Topic:      "generic",
//	    BodyText:   "Hi!",
//	    OnClickURL: "https://example.com/landing",
//	})
//
// The text part of each email is BodyText followed by a blank line and the
// OnClickURL when one is set. Every message carries an X-Notification-Ref
// header of the form "{id}@{recipient}" and asks the relay for open tracking.
//
// # Topics and templates
//
// A TopicRegistry maps topic keys to a subject template (text/template) and a
// body template file rendered by a Renderer. The bundled templates live under
// templates/email and are embedded in the binary.
//
// # Persistence
//
// PostgresNotificationRepository stores records in the notification table
// created by the migrations in pkg/database. InMemNotificationRepository is
// used by tests and by the dev server when no database is configured.
package notification
