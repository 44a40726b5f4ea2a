// Package probe issues minimal existence probes against model services.
// A probe is the cheapest possible generation request: its only purpose is
// to learn whether a model is reachable, never to do real work.
package probe

import "context"

const (
	// probeText is the canonical minimal payload body.
	probeText = "Hi"
	// probeMaxOutputTokens keeps the response as small as the API allows.
	probeMaxOutputTokens = 1
)

// Request describes one existence probe. Zero values for Text and
// MaxOutputTokens select the canonical minimal payload.
type Request struct {
	Model           string
	Text            string
	MaxOutputTokens int
}

func (r Request) withDefaults() Request {
	if r.Text == "" {
		r.Text = probeText
	}
	if r.MaxOutputTokens <= 0 {
		r.MaxOutputTokens = probeMaxOutputTokens
	}
	return r
}

// Client issues existence probes. A nil return from Probe confirms the
// model exists and is reachable; any error means not confirmed.
type Client interface {
	Probe(ctx context.Context, req Request) error
}

// Func adapts a plain function to the Client interface.
type Func func(ctx context.Context, req Request) error

// Probe implements Client.
func (f Func) Probe(ctx context.Context, req Request) error {
	return f(ctx, req)
}
