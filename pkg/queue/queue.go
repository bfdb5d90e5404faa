// Package queue carries background jobs between the scheduler and their
// consumers. NATS JetStream backs it in production; MemoryQueue serves local
// development and tests.
package queue

import (
	"context"
	"errors"
)

// SubjectSavedSearchDigest carries digest.DeliveryJob payloads.
const SubjectSavedSearchDigest = "notify.digest.saved_search"

var ErrClosed = errors.New("queue closed")

// ErrPermanent marks a handler error that redelivery cannot fix, such as an
// undecodable payload. The message is dropped instead of retried.
var ErrPermanent = errors.New("permanent message failure")

// Handler processes one message. A returned error asks the queue to
// redeliver the message unless it wraps ErrPermanent.
type Handler func(ctx context.Context, subject string, data []byte) error

// Queue publishes messages and dispatches them to subscribers.
type Queue interface {
	Publish(ctx context.Context, subject string, data []byte) error
	// Subscribe starts delivering messages for subject to handler and returns
	// a function that stops the subscription.
	Subscribe(ctx context.Context, subject string, handler Handler) (func(), error)
	Close() error
}
