package ratelimit

import (
	"net/http"
	"strconv"
	"time"
)

// GeminiParser reads rate limit state from Gemini API responses.
//
// Gemini does not return proactive limit headers on success. The usable
// signals are the Retry-After header on 429 responses and the request id,
// so client-side budgeting has to come from the documented tier limits
// (GeminiFreeTierRPM) instead.
type GeminiParser struct{}

// ProviderName identifies the provider this parser understands.
func (p *GeminiParser) ProviderName() string {
	return "gemini"
}

// Parse extracts the Retry-After and request id headers when present.
// Retry-After arrives either as integer seconds or as an HTTP date.
func (p *GeminiParser) Parse(headers http.Header, model string) (*Info, error) {
	info := &Info{
		Provider:  p.ProviderName(),
		Model:     model,
		Timestamp: time.Now(),
	}

	if retryAfter := headers.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			info.RetryAfter = time.Duration(seconds) * time.Second
		} else if at, err := http.ParseTime(retryAfter); err == nil {
			if d := time.Until(at); d > 0 {
				info.RetryAfter = d
			}
		}
	}
	info.RequestID = headers.Get("X-Request-Id")

	return info, nil
}
