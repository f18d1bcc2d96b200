package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Quota    QuotaConfig    `mapstructure:"quota" validate:"required"`
	Import   ImportConfig   `mapstructure:"import"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// QuotaConfig contains the free-tier quota and premium entitlement settings.
type QuotaConfig struct {
	// DailyLimit is the number of free-tier consumptions allowed per
	// trusted-time calendar day.
	DailyLimit int `mapstructure:"daily_limit" validate:"required,gt=0"`

	// PremiumSecret verifies the signed entitlement tokens minted by the
	// billing collaborator.
	PremiumSecret string `mapstructure:"premium_secret" validate:"required,min=32"`
}

// ImportConfig contains the optional corpus import settings. When Path is
// empty no import runs.
type ImportConfig struct {
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"`
}
