// Package stripe binds the Stripe payments API: product/price creation,
// checkout sessions, and revenue reads over payment intents.
//
// Stripe expects form-encoded request bodies and Bearer auth with the
// secret key.
package stripe

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kbukum/callkit/call"
	"github.com/kbukum/callkit/httpclient"
	"github.com/kbukum/callkit/provider"
)

// Name is the provider name this binding registers under.
const Name = "stripe"

func init() {
	call.Register(New())
}

// Product is a Stripe product record.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Price is a Stripe price attached to a product.
type Price struct {
	ID         string `json:"id"`
	Product    string `json:"product"`
	UnitAmount int64  `json:"unit_amount"`
	Currency   string `json:"currency"`
}

// CheckoutSession is a hosted checkout session.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PaymentIntent is one payment attempt.
type PaymentIntent struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	Created     int64  `json:"created"`
	Description string `json:"description,omitempty"`
}

// Revenue aggregates succeeded payment intents.
type Revenue struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
	Count    int     `json:"count"`
}

// FallbackRevenue is the substitute returned when Stripe cannot be
// reached: zero revenue, never a fabricated number.
var FallbackRevenue = Revenue{Total: 0, Currency: "usd", Count: 0}

// EnvSpec declares the Stripe environment layout.
func EnvSpec() provider.EnvSpec {
	return provider.EnvSpec{
		Name:             Name,
		DefaultBaseURL:   "https://api.stripe.com",
		CredentialFields: []string{"secret_key"},
		AutoRetryOn429:   true,
		RatePerMinute:    100,
	}
}

// Binding implements call.Binding for Stripe.
type Binding struct{}

// New creates the Stripe binding.
func New() *Binding { return &Binding{} }

// Provider returns the provider name.
func (b *Binding) Provider() string { return Name }

// Operations returns the supported operation descriptors.
func (b *Binding) Operations() []call.Operation {
	return []call.Operation{
		{
			Name:     "create_product",
			Required: []call.Field{{Name: "name", Type: call.FieldString}},
			Optional: []call.Field{{Name: "description", Type: call.FieldString, Default: ""}},
			Fallback: call.Fail(),
		},
		{
			Name: "create_price",
			Required: []call.Field{
				{Name: "product", Type: call.FieldString},
				{Name: "unit_amount", Type: call.FieldInt},
			},
			Optional: []call.Field{{Name: "currency", Type: call.FieldString, Default: "usd"}},
			Fallback: call.Fail(),
		},
		{
			Name: "create_checkout_session",
			Required: []call.Field{
				{Name: "price", Type: call.FieldString},
				{Name: "success_url", Type: call.FieldString},
				{Name: "cancel_url", Type: call.FieldString},
			},
			Fallback: call.Fail(),
		},
		{
			Name:     "list_payments",
			Optional: []call.Field{{Name: "limit", Type: call.FieldInt, Default: 10}},
			Fallback: call.Fail(),
		},
		{
			Name:     "get_revenue",
			Optional: []call.Field{{Name: "limit", Type: call.FieldInt, Default: 100}},
			Fallback: call.Substitute(FallbackRevenue),
		},
	}
}

// BuildRequest maps an operation onto Stripe's form-encoded request shape.
func (b *Binding) BuildRequest(cfg *provider.Config, op call.Operation, in call.Inputs) (httpclient.Request, error) {
	auth := httpclient.BearerAuth(cfg.Credential("secret_key"))

	switch op.Name {
	case "create_product":
		form := url.Values{}
		form.Set("name", in.String("name"))
		if desc := in.String("description"); desc != "" {
			form.Set("description", desc)
		}
		return httpclient.Request{Method: http.MethodPost, Path: "/v1/products", Auth: auth, Body: form}, nil

	case "create_price":
		form := url.Values{}
		form.Set("product", in.String("product"))
		form.Set("unit_amount", strconv.Itoa(in.Int("unit_amount")))
		form.Set("currency", in.String("currency"))
		return httpclient.Request{Method: http.MethodPost, Path: "/v1/prices", Auth: auth, Body: form}, nil

	case "create_checkout_session":
		form := url.Values{}
		form.Set("mode", "payment")
		form.Set("line_items[0][price]", in.String("price"))
		form.Set("line_items[0][quantity]", "1")
		form.Set("success_url", in.String("success_url"))
		form.Set("cancel_url", in.String("cancel_url"))
		return httpclient.Request{Method: http.MethodPost, Path: "/v1/checkout/sessions", Auth: auth, Body: form}, nil

	case "list_payments", "get_revenue":
		return httpclient.Request{
			Method: http.MethodGet,
			Path:   "/v1/payment_intents",
			Auth:   auth,
			Query:  map[string]string{"limit": strconv.Itoa(in.Int("limit"))},
		}, nil
	}

	return httpclient.Request{}, fmt.Errorf("stripe: unhandled operation %q", op.Name)
}

// ParseResponse maps Stripe responses onto typed records.
func (b *Binding) ParseResponse(op call.Operation, resp *httpclient.Response) (any, error) {
	switch op.Name {
	case "create_product":
		var p Product
		if err := json.Unmarshal(resp.Body, &p); err != nil {
			return nil, fmt.Errorf("stripe: decode product: %w", err)
		}
		return p, nil

	case "create_price":
		var p Price
		if err := json.Unmarshal(resp.Body, &p); err != nil {
			return nil, fmt.Errorf("stripe: decode price: %w", err)
		}
		return p, nil

	case "create_checkout_session":
		var s CheckoutSession
		if err := json.Unmarshal(resp.Body, &s); err != nil {
			return nil, fmt.Errorf("stripe: decode session: %w", err)
		}
		return s, nil

	case "list_payments":
		intents, err := decodeIntents(resp.Body)
		if err != nil {
			return nil, err
		}
		return intents, nil

	case "get_revenue":
		intents, err := decodeIntents(resp.Body)
		if err != nil {
			return nil, err
		}
		rev := Revenue{Currency: "usd"}
		for _, pi := range intents {
			if pi.Status != "succeeded" {
				continue
			}
			// Stripe amounts are integer cents.
			rev.Total += float64(pi.Amount) / 100
			rev.Count++
			if pi.Currency != "" {
				rev.Currency = pi.Currency
			}
		}
		return rev, nil
	}

	return nil, fmt.Errorf("stripe: unhandled operation %q", op.Name)
}

func decodeIntents(body []byte) ([]PaymentIntent, error) {
	var list struct {
		Data []PaymentIntent `json:"data"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("stripe: decode payment intents: %w", err)
	}
	return list.Data, nil
}
