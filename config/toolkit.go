package config

import (
	"fmt"
	"time"

	"github.com/kbukum/callkit/logger"
	"github.com/kbukum/callkit/provider"
)

// ProviderSettings are the non-secret, per-provider knobs a config file
// may override. Credentials always come from the environment.
type ProviderSettings struct {
	// Enabled turns the provider off entirely when false. Defaults true.
	Enabled *bool `mapstructure:"enabled"`
	// BaseURL overrides the provider's default or env-derived base URL.
	BaseURL string `mapstructure:"base_url"`
	// Timeout overrides the call timeout.
	Timeout time.Duration `mapstructure:"timeout"`
	// AutoRetryOn429 toggles the single backoff-and-retry on HTTP 429.
	AutoRetryOn429 *bool `mapstructure:"auto_retry_on_429"`
	// RetryBackoff overrides the wait before the 429 retry.
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	// RatePerMinute caps calls from this process. Zero disables.
	RatePerMinute int `mapstructure:"rate_per_minute"`
}

// Toolkit is the top-level configuration.
type Toolkit struct {
	Logging   logger.Config               `mapstructure:"logging"`
	Providers map[string]ProviderSettings `mapstructure:"providers"`
}

// ApplyDefaults fills zero-value fields.
func (c *Toolkit) ApplyDefaults() {
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Toolkit) Validate() error {
	return c.Logging.Validate()
}

// BuildRegistry assembles the provider registry: each spec is resolved
// from the environment via provider.FromEnv, then file-level settings
// are layered on top. Disabled providers are skipped.
func (c *Toolkit) BuildRegistry(specs []provider.EnvSpec) (*provider.Registry, error) {
	reg := provider.NewRegistry()

	for _, spec := range specs {
		settings, ok := c.Providers[spec.Name]
		if ok && settings.Enabled != nil && !*settings.Enabled {
			continue
		}

		cfg := provider.FromEnv(spec)
		if ok {
			if settings.BaseURL != "" {
				cfg.BaseURL = settings.BaseURL
			}
			if settings.Timeout > 0 {
				cfg.Timeout = settings.Timeout
			}
			if settings.AutoRetryOn429 != nil {
				cfg.AutoRetryOn429 = *settings.AutoRetryOn429
			}
			if settings.RetryBackoff > 0 {
				cfg.RetryBackoff = settings.RetryBackoff
			}
			if settings.RatePerMinute > 0 {
				cfg.RatePerMinute = settings.RatePerMinute
			}
		}

		if err := reg.Register(cfg); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	return reg, nil
}
