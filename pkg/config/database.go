package config

import (
	"fmt"

	dbutils "github.com/tendant/db-utils/db"
)

// DatabaseConfig holds PostgreSQL database configuration. An empty Host
// selects the in-memory record store.
type DatabaseConfig struct {
	Host     string `env:"NOTIFY_PG_HOST"`
	Port     uint16 `env:"NOTIFY_PG_PORT" env-default:"5432"`
	Database string `env:"NOTIFY_PG_DATABASE" env-default:"notify_db"`
	User     string `env:"NOTIFY_PG_USER" env-default:"notify"`
	Password string `env:"NOTIFY_PG_PASSWORD" env-default:"pwd"`
	Schema   string `env:"NOTIFY_PG_SCHEMA" env-default:"public"`
}

// Enabled reports whether a database host is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// ToDatabaseURL converts the config to a PostgreSQL connection URL
func (d DatabaseConfig) ToDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s,public",
		d.User, d.Password, d.Host, d.Port, d.Database, d.Schema)
}

// ToDbConfig converts the config to a db-utils DbConfig
func (d DatabaseConfig) ToDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

func (d DatabaseConfig) Validate() ValidationErrors {
	if !d.Enabled() {
		return nil
	}
	return CollectErrors(
		RequireValidPort("NOTIFY_PG_PORT", d.Port),
		RequireNonEmpty("NOTIFY_PG_DATABASE", d.Database),
		RequireNonEmpty("NOTIFY_PG_USER", d.User),
	)
}
