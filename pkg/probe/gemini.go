package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/cecil-the-coder/model-resolver/pkg/ratelimit"
	"github.com/cecil-the-coder/model-resolver/pkg/types"
)

const (
	// standardGeminiBaseURL is the public generative language endpoint.
	standardGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// geminiHTTPTimeout bounds a single probe at the transport level; the
	// resolver applies its own, much tighter race on top.
	geminiHTTPTimeout = 15 * time.Second

	// maxErrorBodyBytes caps how much of an error response is kept.
	maxErrorBodyBytes = 512
)

// GeminiConfig configures a GeminiClient. Zero values select the standard
// endpoint and the free-tier rate budget.
type GeminiConfig struct {
	// APIKey authenticates via the key query parameter.
	APIKey string
	// TokenSource authenticates via OAuth bearer tokens when APIKey is empty.
	TokenSource oauth2.TokenSource
	// BaseURL overrides the standard endpoint.
	BaseURL string
	// HTTPClient overrides the default transport.
	HTTPClient *http.Client
	// RequestsPerMinute overrides the client-side rate budget.
	RequestsPerMinute int
	// Logger receives per-probe diagnostics. nil disables them.
	Logger *log.Logger
}

// GeminiClient probes models on the Gemini generateContent endpoint.
type GeminiClient struct {
	apiKey      string
	tokenSource oauth2.TokenSource
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	limitParser ratelimit.Parser
	limits      *ratelimit.Tracker
	logger      *log.Logger
}

// NewGeminiClient creates a Gemini probe client.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = standardGeminiBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: geminiHTTPTimeout}
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = ratelimit.GeminiFreeTierRPM
	}
	return &GeminiClient{
		apiKey:      cfg.APIKey,
		tokenSource: cfg.TokenSource,
		baseURL:     baseURL,
		httpClient:  httpClient,
		// Burst equals the full minute budget so a candidate chain never
		// waits on its own limiter.
		limiter:     rate.NewLimiter(rate.Limit(float64(rpm)/60.0), rpm),
		limitParser: &ratelimit.GeminiParser{},
		limits:      ratelimit.NewTracker(),
		logger:      cfg.Logger,
	}
}

// geminiGenerateRequest is the wire shape of a minimal generateContent call.
type geminiGenerateRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

// Probe sends a minimal generateContent request for req.Model.
func (c *GeminiClient) Probe(ctx context.Context, req Request) error {
	req = req.withDefaults()
	requestID := uuid.New().String()

	if err := c.limiter.Wait(ctx); err != nil {
		return c.wrapTransportErr(req.Model, requestID, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, req.Model)
	if c.apiKey != "" {
		url = fmt.Sprintf("%s?key=%s", url, c.apiKey)
	}

	body := geminiGenerateRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: req.Text}}},
		},
		GenerationConfig: geminiGenerationConfig{MaxOutputTokens: req.MaxOutputTokens},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return types.NewProbeError(req.Model, types.ErrCodeInvalid, "failed to marshal probe request").
			WithRequestID(requestID).
			WithOriginalErr(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return types.NewProbeError(req.Model, types.ErrCodeError, "failed to create probe request").
			WithRequestID(requestID).
			WithOriginalErr(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", requestID)

	if c.apiKey == "" && c.tokenSource != nil {
		token, err := c.tokenSource.Token()
		if err != nil {
			return types.NewProbeError(req.Model, types.ErrCodeUnauthorized, "failed to obtain OAuth token").
				WithRequestID(requestID).
				WithOriginalErr(err)
		}
		token.SetAuthHeader(httpReq)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.wrapTransportErr(req.Model, requestID, err)
	}
	defer func() {
		_ = resp.Body.Close() //nolint:errcheck // Best effort close
	}()

	if c.logger != nil {
		c.logger.Printf("[GeminiClient] probe %s model=%s status=%d elapsed=%v",
			requestID, req.Model, resp.StatusCode, time.Since(start))
	}

	if info, perr := c.limitParser.Parse(resp.Header, req.Model); perr == nil {
		c.limits.Update(info)
	}

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		message := fmt.Sprintf("model probe rejected: %s", bytes.TrimSpace(snippet))
		if delay := c.limits.RetryDelay(req.Model); delay > 0 {
			message = fmt.Sprintf("%s (retry after %s)", message, delay.Round(time.Second))
		}
		return types.NewStatusError(req.Model, resp.StatusCode, message).
			WithRequestID(requestID)
	}

	return nil
}

// RateLimitInfo returns the most recent rate limit observation for model,
// captured from the last probe response that mentioned it.
func (c *GeminiClient) RateLimitInfo(model string) (*ratelimit.Info, bool) {
	return c.limits.Get(model)
}

// wrapTransportErr converts context and transport failures into classified
// probe errors.
func (c *GeminiClient) wrapTransportErr(model, requestID string, err error) error {
	code := types.ErrCodeError
	message := "probe request failed"
	if errors.Is(err, context.DeadlineExceeded) {
		code = types.ErrCodeTimeout
		message = "probe deadline exceeded"
	}
	return types.NewProbeError(model, code, message).
		WithRequestID(requestID).
		WithOriginalErr(err)
}
