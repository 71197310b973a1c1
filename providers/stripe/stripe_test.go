package stripe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/kbukum/callkit/call"
	"github.com/kbukum/callkit/provider"
)

func newInvoker(t *testing.T, baseURL string) *call.Invoker {
	t.Helper()
	reg := provider.NewRegistry()
	err := reg.Register(&provider.Config{
		Name:                Name,
		BaseURL:             baseURL,
		Credentials:         map[string]string{"secret_key": "sk_test_abc"},
		RequiredCredentials: []string{"secret_key"},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return call.New(reg)
}

func TestCreateProduct_FormEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/products" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_abc" {
			t.Errorf("auth = %q", got)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", ct)
		}
		_ = r.ParseForm()
		if r.PostForm.Get("name") != "AI Toolkit" {
			t.Errorf("name = %q", r.PostForm.Get("name"))
		}
		_ = json.NewEncoder(w).Encode(Product{ID: "prod_123", Name: "AI Toolkit"})
	}))
	defer srv.Close()

	inv := newInvoker(t, srv.URL)
	res := inv.Invoke(context.Background(), Name, "create_product", call.Inputs{"name": "AI Toolkit"})

	if !res.Success || res.UsedFallback {
		t.Fatalf("expected real success, got %+v", res)
	}
	p, ok := res.Data.(Product)
	if !ok || p.ID != "prod_123" {
		t.Errorf("unexpected data %v", res.Data)
	}
}

func TestCreatePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("unit_amount") != "9700" {
			t.Errorf("unit_amount = %q", r.PostForm.Get("unit_amount"))
		}
		if r.PostForm.Get("currency") != "usd" {
			t.Errorf("currency default not applied: %q", r.PostForm.Get("currency"))
		}
		_ = json.NewEncoder(w).Encode(Price{ID: "price_1", Product: "prod_123", UnitAmount: 9700, Currency: "usd"})
	}))
	defer srv.Close()

	inv := newInvoker(t, srv.URL)
	res := inv.Invoke(context.Background(), Name, "create_price", call.Inputs{
		"product":     "prod_123",
		"unit_amount": 9700,
	})

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	price := res.Data.(Price)
	if price.UnitAmount != 9700 {
		t.Errorf("unexpected price %+v", price)
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("line_items[0][price]") != "price_1" {
			t.Errorf("line item = %q", r.PostForm.Get("line_items[0][price]"))
		}
		if r.PostForm.Get("mode") != "payment" {
			t.Errorf("mode = %q", r.PostForm.Get("mode"))
		}
		_ = json.NewEncoder(w).Encode(CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/cs_1"})
	}))
	defer srv.Close()

	inv := newInvoker(t, srv.URL)
	res := inv.Invoke(context.Background(), Name, "create_checkout_session", call.Inputs{
		"price":       "price_1",
		"success_url": "https://example.com/ok",
		"cancel_url":  "https://example.com/cancel",
	})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
}

func TestGetRevenue_SumsSucceededIntents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []PaymentIntent{
				{ID: "pi_1", Amount: 4900, Currency: "usd", Status: "succeeded"},
				{ID: "pi_2", Amount: 9700, Currency: "usd", Status: "succeeded"},
				{ID: "pi_3", Amount: 1900, Currency: "usd", Status: "canceled"},
			},
		})
	}))
	defer srv.Close()

	inv := newInvoker(t, srv.URL)
	res := inv.Invoke(context.Background(), Name, "get_revenue", call.Inputs{})

	if !res.Success || res.UsedFallback {
		t.Fatalf("expected real success, got %+v", res)
	}
	rev := res.Data.(Revenue)
	if rev.Total != 146.0 || rev.Count != 2 {
		t.Errorf("revenue = %+v, want total 146.00 over 2 payments", rev)
	}
}

func TestGetRevenue_UnconfiguredFallsBackToZero(t *testing.T) {
	reg := provider.NewRegistry()
	_ = reg.Register(&provider.Config{
		Name:                Name,
		BaseURL:             "https://api.stripe.com",
		RequiredCredentials: []string{"secret_key"},
	})
	inv := call.New(reg)

	res := inv.Invoke(context.Background(), Name, "get_revenue", call.Inputs{})
	if !res.Success || !res.UsedFallback {
		t.Fatalf("expected flagged fallback, got %+v", res)
	}
	if !reflect.DeepEqual(res.Data, FallbackRevenue) {
		t.Errorf("fallback revenue must be zero, got %v", res.Data)
	}
}

func TestListPayments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "10" {
			t.Errorf("default limit not applied: %q", r.URL.Query().Get("limit"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []PaymentIntent{{ID: "pi_1", Amount: 4900, Status: "succeeded"}},
		})
	}))
	defer srv.Close()

	inv := newInvoker(t, srv.URL)
	res := inv.Invoke(context.Background(), Name, "list_payments", call.Inputs{})

	intents, ok := res.Data.([]PaymentIntent)
	if !ok || len(intents) != 1 {
		t.Fatalf("expected one intent, got %v", res.Data)
	}
}
