// Package testutil provides shared test doubles and helpers for the
// resolver packages.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/cecil-the-coder/model-resolver/pkg/probe"
)

// MockProbeClient is a configurable probe.Client for tests. Outcomes are
// scripted per model name; models without a scripted outcome succeed, so a
// test only describes the failures it cares about.
type MockProbeClient struct {
	mu         sync.Mutex
	responses  map[string]error
	defaultErr error
	delay      time.Duration
	calls      []probe.Request
}

// NewMockProbeClient creates a mock that confirms every model.
func NewMockProbeClient() *MockProbeClient {
	return &MockProbeClient{responses: make(map[string]error)}
}

// SetResponse scripts the outcome of probing model. A nil err confirms it.
func (m *MockProbeClient) SetResponse(model string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[model] = err
}

// SetDefaultError sets the outcome for models without a scripted response.
func (m *MockProbeClient) SetDefaultError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultErr = err
}

// SetDelay makes every probe block for d before responding. The block
// honours context cancellation.
func (m *MockProbeClient) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Probe records the request and returns the scripted outcome.
func (m *MockProbeClient) Probe(ctx context.Context, req probe.Request) error {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	delay := m.delay
	err, scripted := m.responses[req.Model]
	if !scripted {
		err = m.defaultErr
	}
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// CallCount reports how many probes were issued.
func (m *MockProbeClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the recorded probe requests in order.
func (m *MockProbeClient) Calls() []probe.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]probe.Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// ModelsProbed returns the probed model names in order.
func (m *MockProbeClient) ModelsProbed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.calls))
	for _, call := range m.calls {
		out = append(out, call.Model)
	}
	return out
}
