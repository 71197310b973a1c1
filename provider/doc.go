// Package provider holds immutable per-provider configuration and the
// registry used to look it up at call time.
//
// A Config is built once at process start (usually from environment
// variables via FromEnv) and never mutated. IsConfigured is a pure
// predicate over the Config: it detects missing credentials and the
// placeholder sentinels that setup scripts leave behind, and it never
// performs network I/O.
package provider
