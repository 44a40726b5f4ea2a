package ui_test

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/model-resolver/internal/ui"
)

func init() {
	// Disable color output in tests so assertions match plain text.
	color.NoColor = true
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	fn()

	require.NoError(t, w.Close())
	os.Stderr = old

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestInfoWritesToStdout(t *testing.T) {
	out := captureStdout(t, func() {
		ui.Info("resolving model")
	})
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "resolving model")
}

func TestSuccessWritesToStdout(t *testing.T) {
	out := captureStdout(t, func() {
		ui.Success("Using model gemini-2.5-pro")
	})
	assert.Contains(t, out, "[OK]")
	assert.Contains(t, out, "Using model gemini-2.5-pro")
}

func TestWarnWritesToStdout(t *testing.T) {
	out := captureStdout(t, func() {
		ui.Warn("candidate rejected")
	})
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "candidate rejected")
}

func TestErrorWritesToStderr(t *testing.T) {
	out := captureStderr(t, func() {
		ui.Error("probe failed")
	})
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "probe failed")
}

func TestDebugSuppressedWhenNotVerbose(t *testing.T) {
	ui.SetVerbose(false)
	out := captureStdout(t, func() {
		ui.Debug("hidden")
	})
	assert.Empty(t, out)
}

func TestDebugShownWhenVerbose(t *testing.T) {
	ui.SetVerbose(true)
	defer ui.SetVerbose(false)

	out := captureStdout(t, func() {
		ui.Debug("visible")
	})
	assert.Contains(t, out, "[DEBUG]")
	assert.Contains(t, out, "visible")
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 250 * time.Microsecond, want: "250µs"},
		{in: 3 * time.Millisecond, want: "3ms"},
		{in: 812*time.Millisecond + 400*time.Microsecond, want: "812ms"},
		{in: 2 * time.Second, want: "2s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ui.FormatElapsed(tt.in))
	}
}
