package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// Context returns a context that is cancelled when the test ends.
func Context(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// RequireLogLine fails the test unless logs contains line exactly once.
func RequireLogLine(t *testing.T, logs []string, line string) {
	t.Helper()
	count := 0
	for _, l := range logs {
		if l == line {
			count++
		}
	}
	require.Equalf(t, 1, count, "expected exactly one %q in logs, got %d in %v", line, count, logs)
}
