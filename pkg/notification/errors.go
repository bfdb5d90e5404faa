package notification

import "errors"

var (
	// ErrNotificationNotFound is returned when no record exists for an id
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrTopicNotFound is returned when a topic key is not registered
	ErrTopicNotFound = errors.New("topic not registered")

	// ErrUnknownChannel is returned by the handler factory for an unrecognized channel
	ErrUnknownChannel = errors.New("unknown delivery channel")

	// ErrChannelNotSupported is returned for channels that are declared but have no handler yet
	ErrChannelNotSupported = errors.New("delivery channel not yet supported")
)
