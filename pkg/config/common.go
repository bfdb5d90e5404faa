package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
)

// Config is the complete process configuration, read once at startup.
type Config struct {
	AppConfig     app.AppConfig
	Database      DatabaseConfig
	Email         EmailConfig
	Notification  NotificationConfig
	Queue         QueueConfig
	Schedule      ScheduleConfig
	Collaborators CollaboratorConfig
	API           APIConfig
}

// Load reads envFile (when it exists) into the process environment and then
// populates Config from the environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// Validate checks every section and reports all problems at once.
func (c Config) Validate() error {
	return Validate(
		c.Database.Validate,
		c.Email.Validate,
		c.Notification.Validate,
		c.Schedule.Validate,
		c.Collaborators.Validate,
	)
}
