package config

import "time"

const (
	// DefaultTimeout bounds a single management API round trip.
	DefaultTimeout = 30 * time.Second
	// DefaultRetryLimit is used when transient retry is enabled without a limit.
	DefaultRetryLimit = 3
	// DefaultRetryDelay is the initial backoff between retried attempts.
	DefaultRetryDelay = 200 * time.Millisecond
	// MaxRetryLimit caps the configurable retry limit.
	MaxRetryLimit = 10
)

// Environment variables applied on top of the settings file.
const (
	EnvHost     = "RABBITADM_HOST"
	EnvUsername = "RABBITADM_USERNAME"
	EnvPassword = "RABBITADM_PASSWORD"
)

// Settings represents the client settings document.
type Settings struct {
	Host           string         `yaml:"host" validate:"required,http_url"`
	Credentials    Credentials    `yaml:"credentials"`
	Timeout        time.Duration  `yaml:"timeout" validate:"gt=0"`
	Logging        LoggingOptions `yaml:"logging"`
	TransientRetry RetryOptions   `yaml:"transient_retry"`
}

// Credentials holds the basic-auth pair used against the management API.
type Credentials struct {
	Username string `yaml:"username" validate:"required,not_blank"`
	Password string `yaml:"password" validate:"required"`
}

// LoggingOptions controls the client's structured log output.
type LoggingOptions struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Name    string `yaml:"name"`
	// Human switches from JSON lines to console output.
	Human bool `yaml:"human"`
}

// RetryOptions configures the transport's transient retry policy.
type RetryOptions struct {
	Enabled bool          `yaml:"enabled"`
	Limit   int           `yaml:"limit" validate:"min=0"`
	Delay   time.Duration `yaml:"delay" validate:"min=0"`
}

// DefaultSettings returns the settings used for keys absent from the file.
func DefaultSettings() Settings {
	return Settings{
		Host:    "http://localhost:15672",
		Timeout: DefaultTimeout,
		Logging: LoggingOptions{
			Enabled: true,
			Level:   "info",
			Name:    "rabbitadm",
		},
		TransientRetry: RetryOptions{
			Limit: DefaultRetryLimit,
			Delay: DefaultRetryDelay,
		},
	}
}

// Attempts returns the total number of tries the retry policy allows.
func (r RetryOptions) Attempts() uint {
	if !r.Enabled {
		return 1
	}
	return uint(r.Limit) + 1
}
