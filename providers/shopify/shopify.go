// Package shopify binds the Shopify Admin API product operations.
//
// Import it for side effects to register the binding:
//
//	import _ "github.com/kbukum/callkit/providers/shopify"
package shopify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/kbukum/callkit/call"
	"github.com/kbukum/callkit/httpclient"
	"github.com/kbukum/callkit/provider"
)

// Name is the provider name this binding registers under.
const Name = "shopify"

// APIVersion is the Admin API version the paths target.
const APIVersion = "2025-01"

func init() {
	call.Register(New())
}

// Variant is one purchasable variant of a product.
type Variant struct {
	ID    int64  `json:"id,omitempty"`
	Price string `json:"price"`
}

// Product is a Shopify product record.
type Product struct {
	ID       int64     `json:"id,omitempty"`
	Title    string    `json:"title"`
	BodyHTML string    `json:"body_html,omitempty"`
	Handle   string    `json:"handle,omitempty"`
	Status   string    `json:"status,omitempty"`
	Variants []Variant `json:"variants,omitempty"`
}

// FallbackProduct is the deterministic substitute returned when the
// store is unconfigured or unreachable.
var FallbackProduct = Product{
	Title:    "AI Productivity Toolkit",
	BodyHTML: "<p>Complete automation system for business productivity.</p>",
	Handle:   "ai-productivity-toolkit",
	Status:   "active",
	Variants: []Variant{{Price: "97.00"}},
}

// EnvSpec declares how the Shopify config is resolved from the
// environment. SHOPIFY_BASE_URL wins; otherwise the Admin API base is
// derived from SHOPIFY_STORE_URL (the myshopify.com domain).
func EnvSpec() provider.EnvSpec {
	spec := provider.EnvSpec{
		Name:             Name,
		CredentialFields: []string{"access_token"},
	}
	if domain := os.Getenv("SHOPIFY_STORE_URL"); domain != "" {
		spec.DefaultBaseURL = fmt.Sprintf("https://%s/admin/api/%s", domain, APIVersion)
	}
	return spec
}

// Binding implements call.Binding for the Shopify Admin API.
type Binding struct{}

// New creates the Shopify binding.
func New() *Binding { return &Binding{} }

// Provider returns the provider name.
func (b *Binding) Provider() string { return Name }

// Operations returns the supported operation descriptors.
func (b *Binding) Operations() []call.Operation {
	return []call.Operation{
		{
			Name:     "create_product",
			Required: []call.Field{{Name: "title", Type: call.FieldString}},
			Optional: []call.Field{
				{Name: "body_html", Type: call.FieldString, Default: ""},
				{Name: "price", Type: call.FieldNumber, Default: 97.0},
				{Name: "published", Type: call.FieldBool, Default: false},
			},
			Fallback: call.Substitute(FallbackProduct),
		},
		{
			Name:     "list_products",
			Optional: []call.Field{{Name: "limit", Type: call.FieldInt, Default: 10}},
			Fallback: call.Fail(),
		},
	}
}

// BuildRequest maps an operation onto the Admin API request shape.
func (b *Binding) BuildRequest(cfg *provider.Config, op call.Operation, in call.Inputs) (httpclient.Request, error) {
	auth := httpclient.HeaderAuth("X-Shopify-Access-Token", cfg.Credential("access_token"))

	switch op.Name {
	case "create_product":
		payload := map[string]any{
			"product": map[string]any{
				"title":     in.String("title"),
				"body_html": in.String("body_html"),
				"published": in.Bool("published"),
				"variants": []map[string]any{
					{"price": fmt.Sprintf("%.2f", in.Number("price"))},
				},
			},
		}
		return httpclient.Request{
			Method: http.MethodPost,
			Path:   "products.json",
			Auth:   auth,
			Body:   payload,
		}, nil

	case "list_products":
		return httpclient.Request{
			Method: http.MethodGet,
			Path:   "products.json",
			Auth:   auth,
			Query:  map[string]string{"limit": strconv.Itoa(in.Int("limit"))},
		}, nil
	}

	return httpclient.Request{}, fmt.Errorf("shopify: unhandled operation %q", op.Name)
}

// ParseResponse maps Admin API responses onto typed records.
func (b *Binding) ParseResponse(op call.Operation, resp *httpclient.Response) (any, error) {
	switch op.Name {
	case "create_product":
		var body struct {
			Product Product `json:"product"`
		}
		if err := json.Unmarshal(resp.Body, &body); err != nil {
			return nil, fmt.Errorf("shopify: decode product: %w", err)
		}
		return body.Product, nil

	case "list_products":
		var body struct {
			Products []Product `json:"products"`
		}
		if err := json.Unmarshal(resp.Body, &body); err != nil {
			return nil, fmt.Errorf("shopify: decode products: %w", err)
		}
		return body.Products, nil
	}

	return nil, fmt.Errorf("shopify: unhandled operation %q", op.Name)
}
