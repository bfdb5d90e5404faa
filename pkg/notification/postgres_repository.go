package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// PostgresNotificationRepository implements NotificationRepository using PostgreSQL
type PostgresNotificationRepository struct {
	db DBTX
}

// NewPostgresNotificationRepository creates a new PostgreSQL notification repository
func NewPostgresNotificationRepository(db DBTX) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *PostgresNotificationRepository) WithTx(tx pgx.Tx) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: tx}
}

const notificationColumns = "id, recipient, topic, subject, body_text, body_html, on_click_url, created_at"

// CreateNotification inserts a record and returns it with its generated id
func (r *PostgresNotificationRepository) CreateNotification(ctx context.Context, params CreateNotificationParams) (Record, error) {
	query := `
		INSERT INTO notification (recipient, topic, subject, body_text, body_html, on_click_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + notificationColumns

	row := r.db.QueryRow(ctx, query,
		params.Recipient,
		params.Topic,
		params.Subject,
		params.BodyText,
		params.BodyHTML,
		nullableText(params.OnClickURL),
	)

	record, err := scanRecord(row)
	if err != nil {
		slog.Error("Failed to create notification", "err", err, "recipient", params.Recipient, "topic", params.Topic)
		return Record{}, fmt.Errorf("failed to create notification: %w", err)
	}
	return record, nil
}

// GetNotification retrieves a record by id
func (r *PostgresNotificationRepository) GetNotification(ctx context.Context, id int64) (Record, error) {
	query := `SELECT ` + notificationColumns + ` FROM notification WHERE id = $1`

	record, err := scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, fmt.Errorf("%w: %d", ErrNotificationNotFound, id)
		}
		return Record{}, fmt.Errorf("failed to get notification %d: %w", id, err)
	}
	return record, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var record Record
	var onClickURL *string
	err := row.Scan(
		&record.ID,
		&record.Recipient,
		&record.Topic,
		&record.Subject,
		&record.BodyText,
		&record.BodyHTML,
		&onClickURL,
		&record.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	if onClickURL != nil {
		record.OnClickURL = *onClickURL
	}
	return record, nil
}

func nullableText(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
