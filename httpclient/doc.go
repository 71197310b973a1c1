// Package httpclient provides the HTTP transport used by the call
// invoker: a configurable client with authentication, bounded timeouts,
// optional client-side rate limiting, and typed error classification.
//
// Every non-2xx response and transport failure is turned into an *Error
// whose Code maps directly onto the envelope error taxonomy, so the
// invoker never has to inspect raw status codes.
//
//	client, _ := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.stripe.com",
//	    Timeout: 15 * time.Second,
//	    Auth:    httpclient.BearerAuth(secretKey),
//	})
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/v1/payment_intents",
//	})
package httpclient
