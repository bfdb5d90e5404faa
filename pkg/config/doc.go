// Package config loads the simple-notify process configuration.
//
// Every section is a plain struct with cleanenv tags, so the whole
// configuration is read in one call:
//
//	cfg, err := config.Load(".env")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
// # Sections
//
//   - DatabaseConfig (NOTIFY_PG_*): PostgreSQL record store. An empty
//     NOTIFY_PG_HOST selects the in-memory store.
//   - EmailConfig (EMAIL_*): SMTP relay used by the email channel.
//   - NotificationConfig (NOTIFY_*): delivery channel, sales mailbox, web app
//     host for deep links and the unsubscribe passphrase.
//   - QueueConfig (NATS_URL, NATS_STREAM): digest job queue. An empty URL
//     selects the in-process queue.
//   - ScheduleConfig (DIGEST_CRON, DIGEST_ENABLED): saved-search digest trigger.
//   - CollaboratorConfig: inventory and saved-search service endpoints.
//   - APIConfig (NOTIFY_API_SECRET): optional bearer-token protection.
//
// # Validation
//
// Validate collects every problem into ValidationErrors instead of stopping
// at the first one:
//
//	err := config.Validate(
//		cfg.Email.Validate,
//		cfg.Notification.Validate,
//	)
package config
