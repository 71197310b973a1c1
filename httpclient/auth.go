package httpclient

import "net/http"

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer sends the token in an Authorization: Bearer header.
	AuthBearer
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic
	// AuthAPIKey sends an API key in a header or query parameter.
	AuthAPIKey
)

// Auth configures request authentication.
type Auth struct {
	Type AuthType
	// Token is the bearer token (AuthBearer).
	Token string
	// Username and Password are the basic auth pair (AuthBasic).
	Username string
	Password string
	// Key is the API key value (AuthAPIKey).
	Key string
	// In is "header" (default) or "query" (AuthAPIKey).
	In string
	// Name is the header or query parameter name (AuthAPIKey).
	Name string
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *Auth {
	return &Auth{Type: AuthBearer, Token: token}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *Auth {
	return &Auth{Type: AuthBasic, Username: username, Password: password}
}

// HeaderAuth creates an API key auth config sent in a named header.
// Shopify's X-Shopify-Access-Token and Xano's Authorization header both
// fit this shape.
func HeaderAuth(name, key string) *Auth {
	return &Auth{Type: AuthAPIKey, Key: key, In: "header", Name: name}
}

// QueryAuth creates an API key auth config sent as a query parameter,
// e.g. Meta Graph's access_token parameter.
func QueryAuth(name, key string) *Auth {
	return &Auth{Type: AuthAPIKey, Key: key, In: "query", Name: name}
}

// apply sets the auth on an outgoing request.
func (a *Auth) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthBasic:
		req.SetBasicAuth(a.Username, a.Password)
	case AuthAPIKey:
		name := a.Name
		if name == "" {
			name = "X-API-Key"
		}
		if a.In == "query" {
			q := req.URL.Query()
			q.Set(name, a.Key)
			req.URL.RawQuery = q.Encode()
		} else {
			req.Header.Set(name, a.Key)
		}
	}
}
