// Package openrouter binds the OpenRouter chat-completions API used for
// text generation. Generation is slow relative to the other providers,
// so the operation carries its own timeout.
package openrouter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/callkit/call"
	"github.com/kbukum/callkit/httpclient"
	"github.com/kbukum/callkit/provider"
)

// Name is the provider name this binding registers under.
const Name = "openrouter"

// DefaultBaseURL is the OpenRouter API root.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// DefaultModel is used when the caller does not pick one.
const DefaultModel = "anthropic/claude-3-opus"

// generateTimeout bounds a single completion request.
const generateTimeout = 30 * time.Second

func init() {
	call.Register(&Binding{})
}

// Completion is a finished text generation.
type Completion struct {
	Model   string `json:"model"`
	Content string `json:"content"`
}

// FallbackTemplate is the deterministic substitute returned when no
// model can be reached. It costs nothing and reads as obviously canned,
// so downstream consumers cannot confuse it with generated copy.
const FallbackTemplate = "Discover our latest product. Quality you can trust, at a price that works for you."

// FallbackCompletion is the substitute payload for generate_text.
var FallbackCompletion = Completion{Model: "fallback/static-template", Content: FallbackTemplate}

// EnvSpec declares the OpenRouter environment layout.
func EnvSpec() provider.EnvSpec {
	return provider.EnvSpec{
		Name:             Name,
		DefaultBaseURL:   DefaultBaseURL,
		CredentialFields: []string{"api_key"},
		OptionalFields:   []string{"referer"},
	}
}

// Binding implements call.Binding for OpenRouter.
type Binding struct{}

// Provider returns the provider name.
func (b *Binding) Provider() string { return Name }

// Operations returns the supported operation descriptors.
func (b *Binding) Operations() []call.Operation {
	return []call.Operation{
		{
			Name:     "generate_text",
			Required: []call.Field{{Name: "prompt", Type: call.FieldString}},
			Optional: []call.Field{
				{Name: "model", Type: call.FieldString, Default: DefaultModel},
				{Name: "max_tokens", Type: call.FieldInt, Default: 512},
			},
			Timeout:  generateTimeout,
			Fallback: call.Substitute(FallbackCompletion),
		},
	}
}

// chatRequest is the OpenAI-style request body OpenRouter accepts.
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the completion response we read.
type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// BuildRequest maps generate_text onto a chat-completions request.
// OpenRouter ranks apps by the HTTP-Referer and X-Title headers, so
// both are always sent.
func (b *Binding) BuildRequest(cfg *provider.Config, op call.Operation, in call.Inputs) (httpclient.Request, error) {
	if op.Name != "generate_text" {
		return httpclient.Request{}, fmt.Errorf("openrouter: unhandled operation %q", op.Name)
	}

	referer := cfg.Credential("referer")
	if referer == "" {
		referer = "https://github.com/kbukum/callkit"
	}

	return httpclient.Request{
		Method: http.MethodPost,
		Path:   "/chat/completions",
		Auth:   httpclient.BearerAuth(cfg.Credential("api_key")),
		Headers: map[string]string{
			"HTTP-Referer": referer,
			"X-Title":      "callkit",
		},
		Body: chatRequest{
			Model:     in.String("model"),
			MaxTokens: in.Int("max_tokens"),
			Messages:  []chatMessage{{Role: "user", Content: in.String("prompt")}},
		},
	}, nil
}

// ParseResponse extracts the first choice's message content.
func (b *Binding) ParseResponse(op call.Operation, resp *httpclient.Response) (any, error) {
	if op.Name != "generate_text" {
		return nil, fmt.Errorf("openrouter: unhandled operation %q", op.Name)
	}

	var body chatResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("openrouter: decode completion: %w", err)
	}
	if len(body.Choices) == 0 {
		return nil, fmt.Errorf("openrouter: completion with no choices")
	}
	return Completion{Model: body.Model, Content: body.Choices[0].Message.Content}, nil
}
