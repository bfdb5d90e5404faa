package config

import (
	"time"

	"github.com/robfig/cron/v3"
)

// NotificationConfig controls delivery and the links embedded in emails.
type NotificationConfig struct {
	Channel               string `env:"NOTIFY_CHANNEL" env-default:"email"`
	SalesMailbox          string `env:"NOTIFY_SALES_MAILBOX" env-default:"sales@example.com"`
	WebAppHost            string `env:"NOTIFY_WEB_APP_HOST" env-default:"http://localhost:3000"`
	UnsubscribePassphrase string `env:"NOTIFY_UNSUBSCRIBE_PASSPHRASE"`
}

func (n NotificationConfig) Validate() ValidationErrors {
	return CollectErrors(
		RequireOneOf("NOTIFY_CHANNEL", n.Channel, []string{"email", "text"}),
		RequireValidEmail("NOTIFY_SALES_MAILBOX", n.SalesMailbox),
		RequireValidURL("NOTIFY_WEB_APP_HOST", n.WebAppHost),
		RequireMinLength("NOTIFY_UNSUBSCRIBE_PASSPHRASE", n.UnsubscribePassphrase, 16),
	)
}

// QueueConfig selects the job queue. An empty URL uses the in-process queue.
type QueueConfig struct {
	NatsURL string `env:"NATS_URL"`
	Stream  string `env:"NATS_STREAM" env-default:"NOTIFY"`
}

// ScheduleConfig controls the saved-search digest trigger.
type ScheduleConfig struct {
	DigestCron    string `env:"DIGEST_CRON" env-default:"0 0 14 * * *"`
	DigestEnabled bool   `env:"DIGEST_ENABLED" env-default:"true"`
}

func (s ScheduleConfig) Validate() ValidationErrors {
	if !s.DigestEnabled {
		return nil
	}
	return CollectErrors(RequireCronSpec("DIGEST_CRON", s.DigestCron))
}

// CollaboratorConfig points at the external services the scenarios depend on.
type CollaboratorConfig struct {
	InventoryBaseURL   string        `env:"INVENTORY_BASE_URL" env-default:"http://localhost:8081"`
	SavedSearchBaseURL string        `env:"SAVED_SEARCH_BASE_URL" env-default:"http://localhost:8082"`
	InventoryCacheTTL  time.Duration `env:"INVENTORY_CACHE_TTL" env-default:"5m"`
}

func (c CollaboratorConfig) Validate() ValidationErrors {
	return CollectErrors(
		RequireValidURL("INVENTORY_BASE_URL", c.InventoryBaseURL),
		RequireValidURL("SAVED_SEARCH_BASE_URL", c.SavedSearchBaseURL),
		RequireNonNegativeDuration("INVENTORY_CACHE_TTL", c.InventoryCacheTTL),
	)
}

// APIConfig holds the optional HS256 secret guarding the notification routes.
type APIConfig struct {
	Secret string `env:"NOTIFY_API_SECRET"`
}

var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseCron parses a six-field (seconds first) cron spec or a descriptor
// such as "@daily".
func ParseCron(spec string) (cron.Schedule, error) {
	return cronParser.Parse(spec)
}
