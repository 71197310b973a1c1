package call

import "fmt"

// FallbackMode selects what an operation returns when its provider is
// unconfigured, unreachable, or answers with an error.
type FallbackMode int

const (
	// FallbackFail surfaces the failure to the caller.
	FallbackFail FallbackMode = iota
	// FallbackSubstitute returns the declared static value, flagged with
	// UsedFallback so it can be told apart from a real response.
	FallbackSubstitute
)

// FallbackPolicy is per-operation data, not code: the substitute value
// is declared up front so it can be tested and audited independently of
// the call path, and repeated fallbacks are idempotent.
type FallbackPolicy struct {
	Mode FallbackMode
	// Value is the deterministic substitute payload (FallbackSubstitute).
	Value any
}

// Fail declares a fail-with-error policy.
func Fail() FallbackPolicy {
	return FallbackPolicy{Mode: FallbackFail}
}

// Substitute declares a static substitute value.
func Substitute(value any) FallbackPolicy {
	return FallbackPolicy{Mode: FallbackSubstitute, Value: value}
}

// validate checks the policy at construction time.
func (p FallbackPolicy) validate() error {
	if p.Mode == FallbackSubstitute && p.Value == nil {
		return fmt.Errorf("substitute fallback declared without a value")
	}
	return nil
}
