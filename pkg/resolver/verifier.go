package resolver

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cecil-the-coder/model-resolver/pkg/probe"
	"github.com/cecil-the-coder/model-resolver/pkg/timeout"
	"github.com/cecil-the-coder/model-resolver/pkg/types"
)

// DefaultProbeTimeout bounds each candidate's single existence probe.
const DefaultProbeTimeout = 800 * time.Millisecond

// VerifierConfig configures a Verifier. Zero values select the default
// probe timeout and disable diagnostics.
type VerifierConfig struct {
	// ProbeTimeout bounds each probe. Values <= 0 select DefaultProbeTimeout.
	ProbeTimeout time.Duration
	// Logger receives per-attempt diagnostics. nil disables them.
	Logger *log.Logger
}

// Verifier confirms candidate models against the live service. Each present
// candidate gets exactly one bounded probe; the first confirmed candidate
// ends the chain.
type Verifier struct {
	client       probe.Client
	probeTimeout time.Duration
	logger       *log.Logger
}

// NewVerifier creates a Verifier that probes through client.
func NewVerifier(client probe.Client, cfg VerifierConfig) *Verifier {
	d := cfg.ProbeTimeout
	if d <= 0 {
		d = DefaultProbeTimeout
	}
	return &Verifier{client: client, probeTimeout: d, logger: cfg.Logger}
}

// Verify probes the candidates in priority order and returns the first one
// the service confirms, falling back to defaultModel when none is. The
// candidates are tried strictly sequentially. Probe failures never escape:
// each is classified, recorded on the result, and the chain moves on to the
// next source. The fallback default is not probed.
func (v *Verifier) Verify(ctx context.Context, c Candidates, defaultModel string) types.VerifyResult {
	var result types.VerifyResult

	for _, src := range candidateSources {
		value := strings.TrimSpace(c.valueFor(src.source))
		if value == "" {
			continue
		}

		start := time.Now()
		err := timeout.Do(ctx, v.probeTimeout, func() error {
			return v.client.Probe(ctx, probe.Request{Model: value})
		})
		elapsed := time.Since(start)
		if err == nil {
			if v.logger != nil {
				v.logger.Printf("[Verifier] model %s via %s confirmed in %v", value, src.hint, elapsed)
			}
			result.Model = value
			result.Attempts = append(result.Attempts, types.ProbeAttempt{
				Source:    src.source,
				Model:     value,
				Confirmed: true,
			})
			return result
		}

		reason := types.ClassifyProbeError(err)
		if v.logger != nil {
			v.logger.Printf("[Verifier] model %s via %s rejected: reason=%s elapsed=%v err=%v",
				value, src.hint, reason, elapsed, err)
		}
		result.Attempts = append(result.Attempts, types.ProbeAttempt{
			Source: src.source,
			Model:  value,
			Reason: reason,
		})
		result.Logs = append(result.Logs, fmt.Sprintf("Model %q provided via %s was not found.", value, src.hint))
	}

	result.Model = defaultModel
	result.Logs = append(result.Logs, fmt.Sprintf("No model found. Falling back to default model %q", defaultModel))
	return result
}
