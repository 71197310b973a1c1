// Package call implements the fallback-aware external-call wrapper: one
// invocation path shared by every provider binding.
//
// An Operation describes a logical action (name, input fields, fallback
// policy); a Binding translates operations into concrete HTTP requests
// for one provider; the Invoker runs the whole sequence and always
// returns an envelope.Result, never an error and never a panic:
//
//	validate inputs -> configured? -> dispatch (bounded timeout)
//	  -> classify -> optional single 429 retry -> parse
//	  -> OK | Failure | Fallback
//
// Unconfigured providers are short-circuited before any network I/O.
// Substituted fallback data is always flagged via Result.UsedFallback so
// simulated values can never masquerade as real provider responses.
package call
