package resolver

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/model-resolver/pkg/registry"
	"github.com/cecil-the-coder/model-resolver/pkg/testutil"
	"github.com/cecil-the-coder/model-resolver/pkg/types"
)

func TestVerifyFirstCandidateConfirmed(t *testing.T) {
	mock := testutil.NewMockProbeClient()
	v := NewVerifier(mock, VerifierConfig{})

	result := v.Verify(testutil.Context(t), Candidates{
		CLI:      "gemini-1.5-pro",
		Settings: "gemini-2.5-pro",
		Env:      "gemini-1.5-flash",
	}, registry.DefaultModel)

	assert.Equal(t, "gemini-1.5-pro", result.Model)
	assert.Empty(t, result.Logs)
	require.Equal(t, 1, mock.CallCount(), "verification must stop at the first confirmed candidate")
	require.Len(t, result.Attempts, 1)
	assert.Equal(t, types.SourceCLI, result.Attempts[0].Source)
	assert.True(t, result.Attempts[0].Confirmed)
}

func TestVerifyFallsThroughToNextSource(t *testing.T) {
	mock := testutil.NewMockProbeClient()
	mock.SetResponse("gemini-9.9-ultra", types.NewStatusError("gemini-9.9-ultra", 404, "model not found"))
	v := NewVerifier(mock, VerifierConfig{})

	result := v.Verify(testutil.Context(t), Candidates{
		CLI:      "gemini-9.9-ultra",
		Settings: "gemini-2.5-flash",
	}, registry.DefaultModel)

	assert.Equal(t, "gemini-2.5-flash", result.Model)
	assert.Equal(t, 2, mock.CallCount())
	assert.Equal(t, []string{
		`Model "gemini-9.9-ultra" provided via model name was not found.`,
	}, result.Logs)

	require.Len(t, result.Attempts, 2)
	assert.Equal(t, types.ErrCodeUnknown, result.Attempts[0].Reason)
	assert.False(t, result.Attempts[0].Confirmed)
	assert.True(t, result.Attempts[1].Confirmed)
}

func TestVerifyExhaustionFallsBackToDefault(t *testing.T) {
	mock := testutil.NewMockProbeClient()
	mock.SetDefaultError(types.NewStatusError("", 404, "model not found"))
	v := NewVerifier(mock, VerifierConfig{})

	result := v.Verify(testutil.Context(t), Candidates{
		CLI:      "model-a",
		Settings: "model-b",
		Env:      "model-c",
	}, registry.DefaultModel)

	assert.Equal(t, registry.DefaultModel, result.Model)
	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, []string{"model-a", "model-b", "model-c"}, mock.ModelsProbed())
	assert.Equal(t, []string{
		`Model "model-a" provided via model name was not found.`,
		`Model "model-b" provided via settings.json was not found.`,
		`Model "model-c" provided via environment variable was not found.`,
		`No model found. Falling back to default model "gemini-2.5-pro"`,
	}, result.Logs)
}

func TestVerifyAllAbsentProbesNothing(t *testing.T) {
	mock := testutil.NewMockProbeClient()
	v := NewVerifier(mock, VerifierConfig{})

	result := v.Verify(testutil.Context(t), Candidates{Settings: "   "}, registry.DefaultModel)

	assert.Equal(t, registry.DefaultModel, result.Model)
	assert.Zero(t, mock.CallCount())
	assert.Empty(t, result.Attempts)
	assert.Equal(t, []string{
		`No model found. Falling back to default model "gemini-2.5-pro"`,
	}, result.Logs)
}

func TestVerifyCustomDefaultUsedVerbatim(t *testing.T) {
	mock := testutil.NewMockProbeClient()
	v := NewVerifier(mock, VerifierConfig{})

	result := v.Verify(testutil.Context(t), Candidates{}, "my-team-model")

	assert.Equal(t, "my-team-model", result.Model)
	testutil.RequireLogLine(t, result.Logs, `No model found. Falling back to default model "my-team-model"`)
}

func TestVerifyWhitespaceCandidateIsTrimmed(t *testing.T) {
	mock := testutil.NewMockProbeClient()
	v := NewVerifier(mock, VerifierConfig{})

	result := v.Verify(testutil.Context(t), Candidates{Env: "  gemini-2.0-flash  "}, registry.DefaultModel)

	assert.Equal(t, "gemini-2.0-flash", result.Model)
	assert.Equal(t, []string{"gemini-2.0-flash"}, mock.ModelsProbed())
}

func TestVerifyReasonClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantReason types.ErrorCode
	}{
		{name: "missing model", err: types.NewStatusError("m", 404, "not found"), wantReason: types.ErrCodeUnknown},
		{name: "forbidden", err: types.NewStatusError("m", 403, "no access"), wantReason: types.ErrCodeForbidden},
		{name: "unauthorized", err: types.NewStatusError("m", 401, "bad key"), wantReason: types.ErrCodeUnauthorized},
		{name: "invalid request", err: types.NewStatusError("m", 400, "bad payload"), wantReason: types.ErrCodeInvalid},
		{name: "rate limited", err: types.NewStatusError("m", 429, "quota exhausted"), wantReason: types.ErrCodeRateLimited},
		{name: "server error", err: types.NewStatusError("m", 500, "internal"), wantReason: types.ErrCodeServerError},
		{name: "wrapped status", err: fmt.Errorf("probe: %w", types.NewStatusError("m", 503, "overloaded")), wantReason: types.ErrCodeServerError},
		{name: "plain error", err: errors.New("connection reset"), wantReason: types.ErrCodeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockProbeClient()
			mock.SetResponse("candidate", tt.err)
			v := NewVerifier(mock, VerifierConfig{})

			result := v.Verify(testutil.Context(t), Candidates{CLI: "candidate"}, registry.DefaultModel)

			assert.Equal(t, registry.DefaultModel, result.Model)
			require.Len(t, result.Attempts, 1)
			assert.Equal(t, tt.wantReason, result.Attempts[0].Reason)
		})
	}
}

func TestVerifySlowProbeTimesOut(t *testing.T) {
	mock := testutil.NewMockProbeClient()
	mock.SetDelay(200 * time.Millisecond)
	v := NewVerifier(mock, VerifierConfig{ProbeTimeout: 20 * time.Millisecond})

	result := v.Verify(testutil.Context(t), Candidates{CLI: "gemini-2.5-pro"}, registry.DefaultFlashModel)

	assert.Equal(t, registry.DefaultFlashModel, result.Model)
	require.Len(t, result.Attempts, 1)
	assert.Equal(t, types.ErrCodeTimeout, result.Attempts[0].Reason)
	testutil.RequireLogLine(t, result.Logs, `Model "gemini-2.5-pro" provided via model name was not found.`)
}

func TestVerifyLoggerDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	mock := testutil.NewMockProbeClient()
	mock.SetResponse("bad-model", types.NewStatusError("bad-model", 404, "not found"))
	v := NewVerifier(mock, VerifierConfig{Logger: log.New(&buf, "", 0)})

	v.Verify(testutil.Context(t), Candidates{CLI: "bad-model"}, registry.DefaultModel)

	out := buf.String()
	assert.True(t, strings.Contains(out, "[Verifier]"), "diagnostics should carry the component tag: %s", out)
	assert.True(t, strings.Contains(out, "reason=unknown"), "diagnostics should carry the classified reason: %s", out)
}

func TestNewVerifierDefaults(t *testing.T) {
	v := NewVerifier(testutil.NewMockProbeClient(), VerifierConfig{})
	assert.Equal(t, DefaultProbeTimeout, v.probeTimeout)
	assert.Equal(t, 800*time.Millisecond, DefaultProbeTimeout)
}
