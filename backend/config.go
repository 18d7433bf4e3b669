package backend

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/stellar/pingd/support/logger"
	"github.com/stellar/pingd/support/toml"
	"github.com/stellar/pingd/support/utils"
)

// EnvPrefix is prepended to the env var name of every config field, i.e. PINGD_PORT
const EnvPrefix = "PINGD"

// DefaultAllowedOrigin is the origin of the local frontend
const DefaultAllowedOrigin = "localhost:3000"

// DefaultPort is the port the public router listens on when nothing else is configured
const DefaultPort uint16 = 8000

// DefaultRateLimitWindowSeconds is the window over which RATE_LIMIT requests per client IP are allowed
const DefaultRateLimitWindowSeconds uint = 60

// Config holds everything needed to serve, it is read once at startup and never mutated after
type Config struct {
	Port           uint16 `toml:"PORT" envconfig:"PORT"`
	AllowedOrigin  string `toml:"ALLOWED_ORIGIN" envconfig:"ALLOWED_ORIGIN"`
	TLSCertFile    string `toml:"TLS_CERT_FILE" envconfig:"TLS_CERT_FILE"`
	TLSKeyFile     string `toml:"TLS_KEY_FILE" envconfig:"TLS_KEY_FILE"`
	MonitoringPort uint16 `toml:"MONITORING_PORT" envconfig:"MONITORING_PORT"`
	Verbose        bool   `toml:"VERBOSE" envconfig:"VERBOSE"`
	LogFormat      string `toml:"LOG_FORMAT" envconfig:"LOG_FORMAT"`

	// RateLimit is the number of requests a client IP may make per window, 0 disables limiting
	RateLimit              uint `toml:"RATE_LIMIT" envconfig:"RATE_LIMIT"`
	RateLimitWindowSeconds uint `toml:"RATE_LIMIT_WINDOW_SECONDS" envconfig:"RATE_LIMIT_WINDOW_SECONDS"`
}

// String impl.
func (c Config) String() string {
	return utils.StructString(c, 0, map[string]func(interface{}) interface{}{
		"TLS_KEY_FILE": utils.Hide,
	})
}

// MakeDefaultConfig is a factory method
func MakeDefaultConfig() Config {
	return Config{
		Port:          DefaultPort,
		AllowedOrigin: DefaultAllowedOrigin,
		LogFormat:     logger.FormatText,

		RateLimitWindowSeconds: DefaultRateLimitWindowSeconds,
	}
}

// ReadConfig layers the toml file at filePath (skipped when empty) and then the PINGD_* env vars on top of the defaults
func ReadConfig(filePath string) (Config, error) {
	cfg := MakeDefaultConfig()
	if filePath != "" {
		e := toml.ReadFile(filePath, &cfg)
		if e != nil {
			return Config{}, errors.Wrap(e, "could not read config file")
		}
	}

	e := envconfig.Process(EnvPrefix, &cfg)
	if e != nil {
		return Config{}, errors.Wrap(e, "could not read config from environment")
	}
	return cfg, nil
}

// Validate checks that the config can be served
func (c Config) Validate() error {
	if c.Port == 0 {
		return fmt.Errorf("PORT needs to be set")
	}
	if c.AllowedOrigin == "" {
		return fmt.Errorf("ALLOWED_ORIGIN needs to be set")
	}
	if c.MonitoringPort != 0 && c.MonitoringPort == c.Port {
		return fmt.Errorf("MONITORING_PORT (%d) needs to be different from PORT", c.MonitoringPort)
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE need to be set together")
	}
	if c.RateLimit > 0 && c.RateLimitWindowSeconds == 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS needs to be set when RATE_LIMIT is set")
	}
	if c.LogFormat != logger.FormatText && c.LogFormat != logger.FormatJSON {
		return fmt.Errorf("LOG_FORMAT needs to be one of [%s, %s], was '%s'", logger.FormatText, logger.FormatJSON, c.LogFormat)
	}
	return nil
}
