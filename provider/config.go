package provider

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultTimeout bounds every provider call unless overridden.
	DefaultTimeout = 15 * time.Second
	// DefaultRetryBackoff is the wait before the single 429 retry.
	DefaultRetryBackoff = 5 * time.Second
)

// placeholderSentinels are exact credential values that count as "not
// configured". They come from setup scripts that write dummy values to
// keep the process booting.
var placeholderSentinels = map[string]struct{}{
	"placeholder":   {},
	"fake_meta_id":  {},
	"changeme":      {},
	"none":          {},
	"todo":          {},
	"xxx":           {},
	"test_key_here": {},
}

// placeholderPrefixes match templated credential values like
// "placeholder_meta_secret" or "your-api-key".
var placeholderPrefixes = []string{
	"placeholder_",
	"your-",
	"your_",
	"<",
}

// IsPlaceholder reports whether a credential value is a known dummy.
// Empty strings count as placeholders.
func IsPlaceholder(v string) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" {
		return true
	}
	if _, ok := placeholderSentinels[v]; ok {
		return true
	}
	for _, p := range placeholderPrefixes {
		if strings.HasPrefix(v, p) {
			return true
		}
	}
	return false
}

// Config is the immutable configuration for one external provider.
// Construct it once at startup; do not mutate it afterwards.
type Config struct {
	// Name identifies the provider (e.g., "shopify", "stripe").
	Name string `mapstructure:"name" validate:"required"`

	// BaseURL is the provider's API root. Required for any real call.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	// Credentials maps credential field names to their values
	// (e.g., "access_token" -> "shpat_..."). Which fields are required
	// is declared by RequiredCredentials.
	Credentials map[string]string `mapstructure:"-"`

	// RequiredCredentials lists the credential fields that must be
	// present and non-placeholder for the provider to be configured.
	RequiredCredentials []string `mapstructure:"required_credentials"`

	// Timeout bounds each call. Defaults to DefaultTimeout.
	Timeout time.Duration `mapstructure:"timeout"`

	// AutoRetryOn429 enables a single retry after RetryBackoff when the
	// provider answers HTTP 429. When false the rate_limited failure is
	// surfaced immediately and the caller decides.
	AutoRetryOn429 bool `mapstructure:"auto_retry_on_429"`

	// RetryBackoff is the fixed wait before the 429 retry.
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`

	// Headers are extra headers sent with every request to this provider.
	Headers map[string]string `mapstructure:"headers"`

	// RatePerMinute caps outbound calls to this provider from this
	// process. Zero disables the limiter. This is per-client throttling,
	// not a cross-process rate limiter.
	RatePerMinute int `mapstructure:"rate_per_minute"`
}

var validate = validator.New()

// ApplyDefaults fills zero-value fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = DefaultRetryBackoff
	}
}

// Validate checks structural validity of the config. It does not check
// whether credentials are real; that is IsConfigured's job.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// Credential returns the named credential value, or "" when absent.
func (c *Config) Credential(name string) string {
	return c.Credentials[name]
}

// IsConfigured reports whether the provider can be called for real:
// BaseURL set and every required credential present and non-placeholder.
// Pure function of the config; never touches the network.
func (c *Config) IsConfigured() bool {
	if c == nil || c.BaseURL == "" {
		return false
	}
	for _, name := range c.RequiredCredentials {
		if IsPlaceholder(c.Credentials[name]) {
			return false
		}
	}
	return true
}
