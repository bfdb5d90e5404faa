// Package errors provides coded errors shared by the notification packages.
//
// Services return either a plain sentinel error or an *Error carrying an
// ErrorCode. The HTTP layer maps codes to status codes with
// MapErrorCodeToHTTPStatus, so a validation failure inside a scenario
// surfaces as a 400 without the handler knowing where it came from.
//
//	err := errors.InvalidInput("recipients", "at least one recipient is required")
//	err = errors.Configuration(notification.ErrTopicNotFound, "topic not registered")
//
//	if errors.IsCode(err, errors.ErrCodeInvalidInput) {
//	    // ...
//	}
//	status := errors.MapErrorCodeToHTTPStatus(errors.GetCode(err))
//
// Codes and their statuses:
//
//   - ErrCodeInvalidInput: 400
//   - ErrCodeNotFound: 404
//   - ErrCodeUpstreamFailed: 502
//   - ErrCodeConfiguration, ErrCodeInternal: 500
package errors
