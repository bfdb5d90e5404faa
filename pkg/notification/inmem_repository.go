package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// InMemNotificationRepository implements NotificationRepository using an in-memory map
type InMemNotificationRepository struct {
	records map[int64]Record
	lastID  int64
	mu      sync.RWMutex
	// FailCreate, when set, is returned by CreateNotification
	FailCreate error
}

// NewInMemNotificationRepository creates a new in-memory notification repository
func NewInMemNotificationRepository() *InMemNotificationRepository {
	return &InMemNotificationRepository{
		records: make(map[int64]Record),
	}
}

// CreateNotification stores a record under the next id
func (r *InMemNotificationRepository) CreateNotification(ctx context.Context, params CreateNotificationParams) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate != nil {
		return Record{}, r.FailCreate
	}

	r.lastID++
	record := Record{
		ID:         r.lastID,
		Recipient:  params.Recipient,
		Topic:      params.Topic,
		Subject:    params.Subject,
		BodyText:   params.BodyText,
		BodyHTML:   params.BodyHTML,
		OnClickURL: params.OnClickURL,
		CreatedAt:  time.Now().UTC(),
	}
	r.records[record.ID] = record
	slog.Debug("Notification created", "id", record.ID, "recipient", record.Recipient)
	return record, nil
}

// GetNotification retrieves a record by id
func (r *InMemNotificationRepository) GetNotification(ctx context.Context, id int64) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return Record{}, fmt.Errorf("%w: %d", ErrNotificationNotFound, id)
	}
	return record, nil
}

// Count returns the number of stored records
func (r *InMemNotificationRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
