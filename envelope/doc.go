// Package envelope defines the uniform result type returned by every
// external-call invocation.
//
// A Result is always safe to consume without type assertions or error
// checks scattered at the call site: exactly one of Data or ErrorKind is
// meaningful, and fallback (simulated) data is explicitly flagged so it
// can never be mistaken for a real provider response.
//
//	res := invoker.Invoke(ctx, "shopify", "create_product", inputs)
//	if res.UsedFallback {
//	    log.Warn().Msg("simulated product, provider unconfigured")
//	}
//	if !res.Success {
//	    return res.Err()
//	}
package envelope
