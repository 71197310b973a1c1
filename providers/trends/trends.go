// Package trends binds a search-interest API (a hosted Google Trends
// proxy) used for keyword research. Trends data is advisory, so every
// operation substitutes a deterministic neutral value rather than
// blocking the caller when the service is down.
package trends

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kbukum/callkit/call"
	"github.com/kbukum/callkit/httpclient"
	"github.com/kbukum/callkit/provider"
)

// Name is the provider name this binding registers under.
const Name = "trends"

// DefaultTimeframe is the window queried when the caller does not pick
// one. Three months balances recency against noise.
const DefaultTimeframe = "today 3-m"

func init() {
	call.Register(&Binding{})
}

// Point is one sample of the interest series.
type Point struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// Interest is a keyword's interest series with summary stats.
type Interest struct {
	Keyword   string  `json:"keyword"`
	Timeframe string  `json:"timeframe"`
	Series    []Point `json:"series"`
	Avg       float64 `json:"avg"`
	Max       int     `json:"max"`
	Min       int     `json:"min"`
}

// RelatedQueries lists search queries related to a keyword.
type RelatedQueries struct {
	Keyword string   `json:"keyword"`
	Top     []string `json:"top"`
	Rising  []string `json:"rising"`
}

// Neutral substitutes: a flat mid-scale series and an empty query list.
// Flat means "no signal", which is the honest reading when the trends
// service cannot be asked.
var (
	FallbackInterest = Interest{
		Timeframe: DefaultTimeframe,
		Series: []Point{
			{Date: "week-1", Value: 50},
			{Date: "week-2", Value: 50},
			{Date: "week-3", Value: 50},
			{Date: "week-4", Value: 50},
		},
		Avg: 50,
		Max: 50,
		Min: 50,
	}
	FallbackRelated = RelatedQueries{Top: []string{}, Rising: []string{}}
)

// EnvSpec declares the trends environment layout. The proxy requires an
// API key; Google's own endpoints are not called directly.
func EnvSpec() provider.EnvSpec {
	return provider.EnvSpec{
		Name:             Name,
		CredentialFields: []string{"api_key"},
	}
}

// Binding implements call.Binding for the trends proxy.
type Binding struct{}

// Provider returns the provider name.
func (b *Binding) Provider() string { return Name }

// Operations returns the supported operation descriptors.
func (b *Binding) Operations() []call.Operation {
	return []call.Operation{
		{
			Name:     "interest_over_time",
			Required: []call.Field{{Name: "keyword", Type: call.FieldString}},
			Optional: []call.Field{
				{Name: "timeframe", Type: call.FieldString, Default: DefaultTimeframe},
			},
			Fallback: call.Substitute(FallbackInterest),
		},
		{
			Name:     "related_queries",
			Required: []call.Field{{Name: "keyword", Type: call.FieldString}},
			Fallback: call.Substitute(FallbackRelated),
		},
	}
}

// BuildRequest maps an operation onto the proxy's endpoints.
func (b *Binding) BuildRequest(cfg *provider.Config, op call.Operation, in call.Inputs) (httpclient.Request, error) {
	auth := httpclient.QueryAuth("api_key", cfg.Credential("api_key"))

	switch op.Name {
	case "interest_over_time":
		return httpclient.Request{
			Method: http.MethodGet,
			Path:   "/trends/interest",
			Auth:   auth,
			Query: map[string]string{
				"keyword":   in.String("keyword"),
				"timeframe": in.String("timeframe"),
			},
		}, nil

	case "related_queries":
		return httpclient.Request{
			Method: http.MethodGet,
			Path:   "/trends/related",
			Auth:   auth,
			Query:  map[string]string{"keyword": in.String("keyword")},
		}, nil
	}

	return httpclient.Request{}, fmt.Errorf("trends: unhandled operation %q", op.Name)
}

// ParseResponse decodes the proxy's responses. Interest stats are
// computed here so callers never recompute them from the raw series.
func (b *Binding) ParseResponse(op call.Operation, resp *httpclient.Response) (any, error) {
	switch op.Name {
	case "interest_over_time":
		var interest Interest
		if err := json.Unmarshal(resp.Body, &interest); err != nil {
			return nil, fmt.Errorf("trends: decode interest series: %w", err)
		}
		interest.Avg, interest.Max, interest.Min = seriesStats(interest.Series)
		return interest, nil

	case "related_queries":
		var related RelatedQueries
		if err := json.Unmarshal(resp.Body, &related); err != nil {
			return nil, fmt.Errorf("trends: decode related queries: %w", err)
		}
		return related, nil
	}

	return nil, fmt.Errorf("trends: unhandled operation %q", op.Name)
}

// seriesStats computes avg/max/min over a series. An empty series
// yields all zeros.
func seriesStats(series []Point) (avg float64, max, min int) {
	if len(series) == 0 {
		return 0, 0, 0
	}
	max, min = series[0].Value, series[0].Value
	sum := 0
	for _, p := range series {
		sum += p.Value
		if p.Value > max {
			max = p.Value
		}
		if p.Value < min {
			min = p.Value
		}
	}
	return float64(sum) / float64(len(series)), max, min
}
