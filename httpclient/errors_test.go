package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/callkit/envelope"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		code   ErrorCode
		kind   envelope.Kind
	}{
		{401, CodeAuth, envelope.KindAuthFailed},
		{403, CodeAuth, envelope.KindAuthFailed},
		{404, CodeNotFound, envelope.KindNotFound},
		{429, CodeRateLimit, envelope.KindRateLimited},
		{400, CodeValidation, envelope.KindInvalidInput},
		{422, CodeValidation, envelope.KindInvalidInput},
		{500, CodeServer, envelope.KindServerError},
		{503, CodeServer, envelope.KindServerError},
	}
	for _, tt := range tests {
		err := Classify(tt.status, []byte("body"))
		if err == nil {
			t.Fatalf("status %d: expected classification", tt.status)
		}
		if err.Code != tt.code {
			t.Errorf("status %d: code = %s, want %s", tt.status, err.Code, tt.code)
		}
		if err.Code.Kind() != tt.kind {
			t.Errorf("status %d: kind = %s, want %s", tt.status, err.Code.Kind(), tt.kind)
		}
		if err.StatusCode != tt.status {
			t.Errorf("status %d not preserved: %d", tt.status, err.StatusCode)
		}
	}
}

func TestClassify_SuccessIsNil(t *testing.T) {
	for _, status := range []int{200, 201, 204} {
		if err := Classify(status, nil); err != nil {
			t.Errorf("status %d should not classify as error: %v", status, err)
		}
	}
}

func TestClient_Do_ClassifiesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"throttled"}`))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if !IsRateLimit(err) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	// The response is still returned alongside the classified error so
	// callers can inspect the body.
	if resp == nil || resp.StatusCode != 429 {
		t.Errorf("expected response with 429, got %+v", resp)
	}
	var e *Error
	if ok := errAs(err, &e); !ok || string(e.Body) != `{"error":"throttled"}` {
		t.Errorf("error should carry response body")
	}
}

func errAs(err error, target **Error) bool {
	e, ok := err.(*Error)
	if ok {
		*target = e
	}
	return ok
}
