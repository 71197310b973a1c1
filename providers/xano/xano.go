// Package xano binds the Xano backend used as the revenue-persistence
// store: profit entries are appended and aggregated over the /profit
// endpoint.
package xano

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kbukum/callkit/call"
	"github.com/kbukum/callkit/httpclient"
	"github.com/kbukum/callkit/provider"
)

// Name is the provider name this binding registers under.
const Name = "xano"

func init() {
	call.Register(New())
}

// ProfitEntry is one logged profit record.
type ProfitEntry struct {
	ID        int64   `json:"id,omitempty"`
	Amount    float64 `json:"amount"`
	Source    string  `json:"source"`
	Timestamp string  `json:"timestamp,omitempty"`
	CreatedAt int64   `json:"created_at,omitempty"`
	AITaskID  int     `json:"ai_task_id,omitempty"`
	AIGoalID  int     `json:"ai_goal_id,omitempty"`
}

// RevenueSummary aggregates profit entries.
type RevenueSummary struct {
	Total   float64 `json:"total"`
	Entries int     `json:"entries"`
}

// Deterministic substitutes for read operations when Xano is down or
// unconfigured: empty data, clearly flagged, never fabricated numbers.
var (
	FallbackProfits = []ProfitEntry{}
	FallbackRevenue = RevenueSummary{}
)

// EnvSpec declares the Xano environment layout. Only the base URL is
// required; the API key is optional and sent as a Bearer token when set.
func EnvSpec() provider.EnvSpec {
	return provider.EnvSpec{
		Name:           Name,
		OptionalFields: []string{"api_key"},
		RatePerMinute:  30,
	}
}

// Binding implements call.Binding for Xano.
type Binding struct {
	// now is swappable for tests.
	now func() time.Time
}

// New creates the Xano binding.
func New() *Binding { return &Binding{now: time.Now} }

// Provider returns the provider name.
func (b *Binding) Provider() string { return Name }

// Operations returns the supported operation descriptors.
func (b *Binding) Operations() []call.Operation {
	return []call.Operation{
		{
			Name: "log_profit",
			Required: []call.Field{
				{Name: "amount", Type: call.FieldNumber},
				{Name: "source", Type: call.FieldString},
			},
			Optional: []call.Field{
				{Name: "ai_task_id", Type: call.FieldInt},
				{Name: "ai_goal_id", Type: call.FieldInt},
			},
			Fallback: call.Fail(),
		},
		{
			Name:     "get_profits",
			Optional: []call.Field{{Name: "limit", Type: call.FieldInt, Default: 50}},
			Fallback: call.Substitute(FallbackProfits),
		},
		{
			Name:     "get_total_revenue",
			Fallback: call.Substitute(FallbackRevenue),
		},
	}
}

// BuildRequest maps an operation onto the Xano endpoint shape.
func (b *Binding) BuildRequest(cfg *provider.Config, op call.Operation, in call.Inputs) (httpclient.Request, error) {
	var auth *httpclient.Auth
	if key := cfg.Credential("api_key"); key != "" {
		auth = httpclient.BearerAuth(key)
	}

	switch op.Name {
	case "log_profit":
		now := b.now()
		entry := ProfitEntry{
			Amount:    in.Number("amount"),
			Source:    in.String("source"),
			Timestamp: now.Format(time.RFC3339),
			CreatedAt: now.Unix(),
			AITaskID:  in.Int("ai_task_id"),
			AIGoalID:  in.Int("ai_goal_id"),
		}
		return httpclient.Request{Method: http.MethodPost, Path: "/profit", Auth: auth, Body: entry}, nil

	case "get_profits":
		return httpclient.Request{
			Method: http.MethodGet,
			Path:   "/profit",
			Auth:   auth,
			Query:  map[string]string{"limit": strconv.Itoa(in.Int("limit"))},
		}, nil

	case "get_total_revenue":
		return httpclient.Request{Method: http.MethodGet, Path: "/profit", Auth: auth}, nil
	}

	return httpclient.Request{}, fmt.Errorf("xano: unhandled operation %q", op.Name)
}

// ParseResponse maps Xano responses onto typed records.
func (b *Binding) ParseResponse(op call.Operation, resp *httpclient.Response) (any, error) {
	switch op.Name {
	case "log_profit":
		var entry ProfitEntry
		if err := json.Unmarshal(resp.Body, &entry); err != nil {
			return nil, fmt.Errorf("xano: decode profit entry: %w", err)
		}
		return entry, nil

	case "get_profits":
		entries, err := decodeEntries(resp.Body)
		if err != nil {
			return nil, err
		}
		return entries, nil

	case "get_total_revenue":
		entries, err := decodeEntries(resp.Body)
		if err != nil {
			return nil, err
		}
		summary := RevenueSummary{Entries: len(entries)}
		for _, e := range entries {
			summary.Total += e.Amount
		}
		return summary, nil
	}

	return nil, fmt.Errorf("xano: unhandled operation %q", op.Name)
}

func decodeEntries(body []byte) ([]ProfitEntry, error) {
	var entries []ProfitEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("xano: decode profit entries: %w", err)
	}
	return entries, nil
}
