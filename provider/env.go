package provider

import (
	"os"
	"strings"
	"time"
)

// EnvSpec declares how a provider's Config is assembled from environment
// variables. Credential variables follow the <PREFIX>_<FIELD> convention,
// e.g. SHOPIFY_ACCESS_TOKEN for prefix "SHOPIFY" and field "access_token".
type EnvSpec struct {
	// Name is the provider name registered in the Registry.
	Name string
	// Prefix is the environment variable prefix. Defaults to the
	// upper-cased name.
	Prefix string
	// DefaultBaseURL is used when <PREFIX>_BASE_URL is unset.
	DefaultBaseURL string
	// CredentialFields are credential names resolved from the
	// environment. All of them become RequiredCredentials.
	CredentialFields []string
	// OptionalFields are additional credential names resolved from the
	// environment but not required for IsConfigured.
	OptionalFields []string
	// Headers are static headers for every request to this provider.
	Headers map[string]string
	// Timeout overrides the default call timeout.
	Timeout time.Duration
	// AutoRetryOn429 enables the single backoff-and-retry on HTTP 429.
	AutoRetryOn429 bool
	// RatePerMinute caps calls from this process. Zero disables.
	RatePerMinute int
}

// envVar builds the variable name for a credential field.
func (s EnvSpec) envVar(field string) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = strings.ToUpper(s.Name)
	}
	return prefix + "_" + strings.ToUpper(field)
}

// FromEnv builds a provider Config from the process environment. Missing
// variables yield empty credential values, which IsConfigured treats the
// same as placeholders.
func FromEnv(spec EnvSpec) *Config {
	creds := make(map[string]string, len(spec.CredentialFields)+len(spec.OptionalFields))
	for _, field := range spec.CredentialFields {
		creds[field] = os.Getenv(spec.envVar(field))
	}
	for _, field := range spec.OptionalFields {
		creds[field] = os.Getenv(spec.envVar(field))
	}

	baseURL := os.Getenv(spec.envVar("base_url"))
	if baseURL == "" {
		baseURL = spec.DefaultBaseURL
	}

	cfg := &Config{
		Name:                spec.Name,
		BaseURL:             baseURL,
		Credentials:         creds,
		RequiredCredentials: append([]string(nil), spec.CredentialFields...),
		Headers:             spec.Headers,
		Timeout:             spec.Timeout,
		AutoRetryOn429:      spec.AutoRetryOn429,
		RatePerMinute:       spec.RatePerMinute,
	}
	cfg.ApplyDefaults()
	return cfg
}
