// Package config loads toolkit configuration the way deployments expect:
// an optional config.yml for non-secret settings (timeouts, retry flags,
// rate limits), a .env file and the process environment for credentials.
//
// Credentials never live in config files; they are resolved via
// provider.FromEnv using each provider's environment variable prefix.
package config
