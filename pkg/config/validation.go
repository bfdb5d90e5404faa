package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var fieldValidator = validator.New()

// ValidationError names the environment variable that failed and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidationErrors is every problem found in one pass over the config.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("configuration validation failed:")
	for _, err := range e {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Validator checks one config section.
type Validator func() ValidationErrors

// Validate runs validators and returns their combined errors, or nil.
func Validate(validators ...Validator) error {
	var all ValidationErrors
	for _, v := range validators {
		all = append(all, v()...)
	}
	if len(all) == 0 {
		return nil
	}
	return all
}

// CollectErrors drops the nil results of the Require helpers.
func CollectErrors(errs ...*ValidationError) ValidationErrors {
	var result ValidationErrors
	for _, err := range errs {
		if err != nil {
			result = append(result, *err)
		}
	}
	return result
}

func RequireNonEmpty(field, value string) *ValidationError {
	if value == "" {
		return invalid(field, "is required")
	}
	return nil
}

func RequireNonNegativeDuration(field string, value time.Duration) *ValidationError {
	if value < 0 {
		return invalid(field, "must be non-negative, got %v", value)
	}
	return nil
}

// RequireValidURL accepts absolute URLs with a scheme and host.
func RequireValidURL(field, value string) *ValidationError {
	if value == "" {
		return invalid(field, "is required")
	}
	u, err := url.Parse(value)
	if err != nil {
		return invalid(field, "invalid URL: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return invalid(field, "URL must be absolute (http:// or https://)")
	}
	return nil
}

func RequireValidEmail(field, value string) *ValidationError {
	if value == "" {
		return invalid(field, "is required")
	}
	if err := fieldValidator.Var(value, "email"); err != nil {
		return invalid(field, "invalid email format")
	}
	return nil
}

func RequireValidPort(field string, value uint16) *ValidationError {
	if value == 0 {
		return invalid(field, "port must be between 1 and 65535")
	}
	return nil
}

func RequireOneOf(field, value string, allowed []string) *ValidationError {
	if slices.Contains(allowed, value) {
		return nil
	}
	return invalid(field, "must be one of %v, got %q", allowed, value)
}

func RequireMinLength(field, value string, minLength int) *ValidationError {
	if len(value) < minLength {
		return invalid(field, "must be at least %d characters, got %d", minLength, len(value))
	}
	return nil
}

// RequireCronSpec checks value with the same parser the digest scheduler uses.
func RequireCronSpec(field, value string) *ValidationError {
	if value == "" {
		return invalid(field, "is required")
	}
	if _, err := ParseCron(value); err != nil {
		return invalid(field, "invalid cron spec: %v", err)
	}
	return nil
}
