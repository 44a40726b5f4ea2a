package probe

import (
	"context"
	"errors"
	"log"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/cecil-the-coder/model-resolver/pkg/types"
)

// OpenAIConfig configures an OpenAIClient.
type OpenAIConfig struct {
	// APIKey authenticates against the endpoint. Local OpenAI-compatible
	// servers usually accept any value here.
	APIKey string
	// BaseURL points at an OpenAI-compatible endpoint (Ollama, LM Studio,
	// vLLM). Empty selects the public OpenAI API.
	BaseURL string
	// HTTPClient overrides the default transport.
	HTTPClient *http.Client
	// Logger receives per-probe diagnostics. nil disables them.
	Logger *log.Logger
}

// OpenAIClient probes models on OpenAI-compatible chat completion endpoints.
type OpenAIClient struct {
	client *openai.Client
	logger *log.Logger
}

// NewOpenAIClient creates an OpenAI-compatible probe client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		logger: cfg.Logger,
	}
}

// Probe sends a one-token chat completion for req.Model.
func (c *OpenAIClient) Probe(ctx context.Context, req Request) error {
	req = req.withDefaults()

	_, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     req.Model,
		MaxTokens: req.MaxOutputTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
	})
	if err == nil {
		return nil
	}
	if c.logger != nil {
		c.logger.Printf("[OpenAIClient] probe model=%s failed: %v", req.Model, err)
	}
	return convertOpenAIError(req.Model, err)
}

// convertOpenAIError normalizes go-openai failures into probe errors.
func convertOpenAIError(model string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return types.NewStatusError(model, apiErr.HTTPStatusCode, apiErr.Message).
			WithOriginalErr(err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return types.NewStatusError(model, reqErr.HTTPStatusCode, "probe request rejected").
			WithOriginalErr(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return types.NewProbeError(model, types.ErrCodeTimeout, "probe deadline exceeded").
			WithOriginalErr(err)
	}
	return types.NewProbeError(model, types.ErrCodeError, "probe request failed").
		WithOriginalErr(err)
}
