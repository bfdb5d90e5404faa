package notification

import "context"

// CreateNotificationParams is a record before the store assigns its id.
type CreateNotificationParams struct {
	Recipient  string
	Topic      string
	Subject    string
	BodyText   string
	BodyHTML   string
	OnClickURL string
}

// NotificationRepository persists notification records. Records are created
// once and never updated or deleted.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, params CreateNotificationParams) (Record, error)
	GetNotification(ctx context.Context, id int64) (Record, error)
}
