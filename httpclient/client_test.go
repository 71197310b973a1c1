package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestClient_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/profit" {
			t.Errorf("expected /profit, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("expected limit=5, got %s", r.URL.Query().Get("limit"))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{{"amount": 49.0, "source": "stripe"}})
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/profit",
		Query:  map[string]string{"limit": "5"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected success, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "stripe") {
		t.Errorf("unexpected body %s", resp.Body)
	}
}

func TestClient_Do_POST_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["amount"] != 25.0 {
			t.Errorf("expected amount 25, got %v", body["amount"])
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 7})
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/profit",
		Body:   map[string]any{"amount": 25.0, "source": "shopify"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

func TestClient_Do_POST_FormEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("expected form encoding, got %s", ct)
		}
		_ = r.ParseForm()
		if r.PostForm.Get("name") != "AI Toolkit" {
			t.Errorf("expected name field, got %q", r.PostForm.Get("name"))
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "prod_123"})
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	form := url.Values{}
	form.Set("name", "AI Toolkit")
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/v1/products", Body: form})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_AuthHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bearer":
			if got := r.Header.Get("Authorization"); got != "Bearer sk_test_1" {
				t.Errorf("bearer auth not applied: %q", got)
			}
		case "/apikey":
			if got := r.Header.Get("X-Shopify-Access-Token"); got != "shpat_1" {
				t.Errorf("header auth not applied: %q", got)
			}
		case "/query":
			if got := r.URL.Query().Get("access_token"); got != "tok_1" {
				t.Errorf("query auth not applied: %q", got)
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, Auth: BearerAuth("sk_test_1")})
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/bearer"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Request-level auth overrides client-level.
	if _, err := c.Do(context.Background(), Request{
		Method: http.MethodGet, Path: "/apikey",
		Auth: HeaderAuth("X-Shopify-Access-Token", "shpat_1"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Do(context.Background(), Request{
		Method: http.MethodGet, Path: "/query",
		Auth: QueryAuth("access_token", "tok_1"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/slow"})
	if !IsTimeout(err) {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestClient_Do_ConnectionRefused(t *testing.T) {
	c, _ := New(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err == nil {
		t.Fatal("expected error")
	}
	e, ok := err.(*Error)
	if !ok || e.Code != CodeConnection {
		t.Errorf("expected connection error, got %v", err)
	}
}
