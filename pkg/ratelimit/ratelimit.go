// Package ratelimit tracks the request budget observed while probing
// models. Providers communicate limits inconsistently, so each one gets a
// Parser that extracts whatever its responses actually carry, and a shared
// Tracker keeps the latest observation per model.
package ratelimit

import (
	"net/http"
	"sync"
	"time"
)

// GeminiFreeTierRPM is the documented free-tier request budget.
const GeminiFreeTierRPM = 15

// Info is the rate limit state observed for one model.
type Info struct {
	// Provider names the API that produced this observation.
	Provider string `json:"provider"`

	// Model is the probed model identifier.
	Model string `json:"model"`

	// Timestamp is when the observation was captured.
	Timestamp time.Time `json:"timestamp"`

	// RetryAfter is how long the provider asked us to back off, zero when
	// it did not.
	RetryAfter time.Duration `json:"retry_after,omitempty"`

	// RequestID identifies the response that carried this observation.
	RequestID string `json:"request_id,omitempty"`
}

// Parser extracts rate limit information from provider response headers.
// Each provider uses its own header scheme, so each needs its own parser.
type Parser interface {
	// Parse reads whatever rate limit state the headers carry for model.
	Parse(headers http.Header, model string) (*Info, error)

	// ProviderName identifies the provider this parser understands.
	ProviderName() string
}

// Tracker keeps the most recent observation per model. Safe for concurrent
// use.
type Tracker struct {
	mu   sync.RWMutex
	info map[string]*Info
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{info: make(map[string]*Info)}
}

// Update records an observation, replacing any earlier one for the model.
func (t *Tracker) Update(info *Info) {
	if info == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.info[info.Model] = info
}

// Get returns the latest observation for model.
func (t *Tracker) Get(model string) (*Info, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	info, ok := t.info[model]
	return info, ok
}

// RetryDelay reports how long the provider asked us to wait before probing
// model again. Zero means no backoff was requested or the requested window
// has already passed.
func (t *Tracker) RetryDelay(model string) time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	info, ok := t.info[model]
	if !ok || info.RetryAfter <= 0 {
		return 0
	}
	remaining := info.RetryAfter - time.Since(info.Timestamp)
	if remaining < 0 {
		return 0
	}
	return remaining
}
