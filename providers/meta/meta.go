// Package meta binds the Meta Graph API. The prominent placeholder
// value in the wild is the literal "fake_meta_id", so unconfigured
// detection matters more here than for any other provider.
package meta

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kbukum/callkit/call"
	"github.com/kbukum/callkit/httpclient"
	"github.com/kbukum/callkit/provider"
)

// Name is the provider name this binding registers under.
const Name = "meta"

// GraphVersion pins the Graph API version all paths are built against.
const GraphVersion = "v18.0"

// DefaultBaseURL is the Graph API root including the pinned version.
const DefaultBaseURL = "https://graph.facebook.com/" + GraphVersion

func init() {
	call.Register(&Binding{})
}

// AccessToken is the app token minted by the client_credentials grant.
type AccessToken struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
}

// AppStatus is the subset of app metadata the status check reads.
type AppStatus struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Link     string `json:"link"`
}

// EnvSpec declares the Meta environment layout. Both app credentials
// are required; a "fake_meta_id" app id leaves the provider unconfigured.
func EnvSpec() provider.EnvSpec {
	return provider.EnvSpec{
		Name:             Name,
		DefaultBaseURL:   DefaultBaseURL,
		CredentialFields: []string{"app_id", "app_secret"},
	}
}

// Binding implements call.Binding for the Meta Graph API.
type Binding struct{}

// Provider returns the provider name.
func (b *Binding) Provider() string { return Name }

// Operations returns the supported operation descriptors. Both are
// auth-sensitive, so neither substitutes fallback data: a fabricated
// token or app status would only mask a broken integration.
func (b *Binding) Operations() []call.Operation {
	return []call.Operation{
		{
			Name:     "get_access_token",
			Fallback: call.Fail(),
		},
		{
			Name:     "app_status",
			Fallback: call.Fail(),
		},
	}
}

// BuildRequest maps an operation onto a Graph API request.
func (b *Binding) BuildRequest(cfg *provider.Config, op call.Operation, in call.Inputs) (httpclient.Request, error) {
	switch op.Name {
	case "get_access_token":
		return httpclient.Request{
			Method: http.MethodGet,
			Path:   "/oauth/access_token",
			Query: map[string]string{
				"client_id":     cfg.Credential("app_id"),
				"client_secret": cfg.Credential("app_secret"),
				"grant_type":    "client_credentials",
			},
		}, nil

	case "app_status":
		return httpclient.Request{
			Method: http.MethodGet,
			Path:   "/" + cfg.Credential("app_id"),
			Query: map[string]string{
				"access_token": cfg.Credential("app_id") + "|" + cfg.Credential("app_secret"),
			},
		}, nil
	}

	return httpclient.Request{}, fmt.Errorf("meta: unhandled operation %q", op.Name)
}

// ParseResponse maps Graph API responses onto typed records.
func (b *Binding) ParseResponse(op call.Operation, resp *httpclient.Response) (any, error) {
	switch op.Name {
	case "get_access_token":
		var token AccessToken
		if err := json.Unmarshal(resp.Body, &token); err != nil {
			return nil, fmt.Errorf("meta: decode access token: %w", err)
		}
		if token.Token == "" {
			return nil, fmt.Errorf("meta: token response without access_token")
		}
		return token, nil

	case "app_status":
		var status AppStatus
		if err := json.Unmarshal(resp.Body, &status); err != nil {
			return nil, fmt.Errorf("meta: decode app status: %w", err)
		}
		return status, nil
	}

	return nil, fmt.Errorf("meta: unhandled operation %q", op.Name)
}
