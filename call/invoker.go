package call

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/callkit/envelope"
	"github.com/kbukum/callkit/httpclient"
	"github.com/kbukum/callkit/logger"
	"github.com/kbukum/callkit/observability"
	"github.com/kbukum/callkit/provider"
	"github.com/kbukum/callkit/resilience"
)

// Invoker is the single call path shared by all providers. It is safe
// for concurrent use: provider configs are immutable, HTTP clients are
// built once per provider, and each invocation is independent.
type Invoker struct {
	providers *provider.Registry
	log       *logger.Logger

	mu      sync.Mutex
	clients map[string]*httpclient.Client
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *logger.Logger) Option {
	return func(i *Invoker) { i.log = l }
}

// New creates an Invoker over the given provider registry.
func New(providers *provider.Registry, opts ...Option) *Invoker {
	inv := &Invoker{
		providers: providers,
		log:       logger.Nop(),
		clients:   make(map[string]*httpclient.Client),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Invoke runs one logical operation against a provider and returns the
// uniform result envelope. It never returns a Go error and never
// panics on external conditions; every failure mode is captured in the
// Result.
func (i *Invoker) Invoke(ctx context.Context, providerName, operation string, inputs Inputs) envelope.Result {
	start := time.Now()
	callID := uuid.NewString()

	ctx, span := observability.StartSpan(ctx, fmt.Sprintf("call.%s.%s", providerName, operation))
	defer span.End()
	observability.SetAttribute(ctx, observability.AttrProvider, providerName)
	observability.SetAttribute(ctx, observability.AttrOperation, operation)
	observability.SetAttribute(ctx, observability.AttrCallID, callID)

	res := i.invoke(ctx, providerName, operation, inputs)

	res.Provider = providerName
	res.Operation = operation
	res.CallID = callID
	res.Duration = time.Since(start)

	i.report(ctx, res)
	return res
}

// invoke is the undecorated call sequence.
func (i *Invoker) invoke(ctx context.Context, providerName, operation string, inputs Inputs) envelope.Result {
	binding, err := LookupBinding(providerName)
	if err != nil {
		return envelope.Failure(envelope.KindUnknown, err.Error())
	}
	op, ok := findOperation(binding, operation)
	if !ok {
		return envelope.Failuref(envelope.KindUnknown, "binding %q has no operation %q", providerName, operation)
	}

	// Input validation comes first: a malformed call is a caller bug and
	// must be surfaced even when the provider would have been mocked.
	validated, err := op.ValidateInputs(inputs)
	if err != nil {
		return envelope.Failure(envelope.KindInvalidInput, err.Error())
	}

	cfg, _ := i.providers.Get(providerName)
	if !cfg.IsConfigured() {
		if op.Fallback.Mode == FallbackSubstitute {
			return envelope.Fallback(op.Fallback.Value)
		}
		return envelope.Failuref(envelope.KindUnconfigured, "provider %q has missing or placeholder credentials", providerName)
	}

	req, err := binding.BuildRequest(cfg, op, validated)
	if err != nil {
		// Build failures after validation indicate a binding bug.
		return i.fallbackOr(op, envelope.Failuref(envelope.KindUnknown, "build request: %v", err))
	}
	if req.Timeout <= 0 {
		req.Timeout = op.Timeout
	}

	resp, err := i.dispatch(ctx, cfg, req)
	if err != nil {
		return i.fallbackOr(op, classify(err))
	}

	data, err := binding.ParseResponse(op, resp)
	if err != nil {
		return i.fallbackOr(op, envelope.Failuref(envelope.KindUnknown, "parse response: %v", err))
	}
	return envelope.OK(data)
}

// dispatch executes the HTTP request, applying the single 429 retry
// when the provider opted in.
func (i *Invoker) dispatch(ctx context.Context, cfg *provider.Config, req httpclient.Request) (*httpclient.Response, error) {
	client, err := i.clientFor(cfg)
	if err != nil {
		return nil, err
	}

	if !cfg.AutoRetryOn429 {
		return client.Do(ctx, req)
	}
	return resilience.Retry(ctx, resilience.RetryConfig{
		MaxAttempts: 2,
		Backoff:     cfg.RetryBackoff,
		RetryIf:     httpclient.IsRateLimit,
	}, func() (*httpclient.Response, error) {
		return client.Do(ctx, req)
	})
}

// clientFor returns the cached HTTP client for a provider, building it
// on first use.
func (i *Invoker) clientFor(cfg *provider.Config) (*httpclient.Client, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if c, ok := i.clients[cfg.Name]; ok {
		return c, nil
	}

	hcfg := httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Headers: cfg.Headers,
	}
	if cfg.RatePerMinute > 0 {
		hcfg.RateLimiter = &resilience.RateLimiterConfig{
			Name:          cfg.Name,
			RatePerMinute: cfg.RatePerMinute,
		}
	}
	c, err := httpclient.New(hcfg)
	if err != nil {
		return nil, err
	}
	i.clients[cfg.Name] = c
	return c, nil
}

// fallbackOr substitutes the operation's fallback value for a failure
// when the policy allows it.
func (i *Invoker) fallbackOr(op Operation, failure envelope.Result) envelope.Result {
	if op.Fallback.Mode == FallbackSubstitute {
		return envelope.Fallback(op.Fallback.Value)
	}
	return failure
}

// classify maps a transport error onto the envelope taxonomy.
func classify(err error) envelope.Result {
	var he *httpclient.Error
	if errors.As(err, &he) {
		return envelope.Failure(he.Code.Kind(), he.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return envelope.Failure(envelope.KindTimeout, err.Error())
	}
	return envelope.Failure(envelope.KindUnknown, err.Error())
}

// report logs the outcome and annotates the span. Fallback results are
// logged at warn level and explicitly labeled as simulated so they can
// never be mistaken for real provider data downstream.
func (i *Invoker) report(ctx context.Context, res envelope.Result) {
	fields := map[string]any{
		logger.FieldProvider:  res.Provider,
		logger.FieldOperation: res.Operation,
		logger.FieldCallID:    res.CallID,
		logger.FieldDuration:  res.Duration.Milliseconds(),
	}

	switch {
	case res.UsedFallback:
		observability.SetBoolAttribute(ctx, observability.AttrUsedFallback, true)
		fields[logger.FieldUsedFallback] = true
		i.log.Warn("substituted fallback data (simulated, not a real provider response)", fields)
	case res.Success:
		i.log.Debug("provider call ok", fields)
	default:
		observability.SetAttribute(ctx, observability.AttrErrorKind, string(res.ErrorKind))
		observability.SetError(ctx, res.Err())
		fields[logger.FieldErrorKind] = string(res.ErrorKind)
		fields[logger.FieldError] = res.ErrorDetail
		i.log.Error("provider call failed", fields)
	}
}
