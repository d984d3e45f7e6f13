package completion

import (
	"context"
	"sync"
)

// Mock implements Service for testing.
type Mock struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns ErrUnavailable.
	CompleteFunc func(ctx context.Context, lang, text string) (string, error)

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a Complete invocation.
type MockCall struct {
	Lang string
	Text string
}

// Complete calls CompleteFunc and records the call.
func (m *Mock) Complete(ctx context.Context, lang, text string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Lang: lang, Text: text})
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, lang, text)
	}
	return "", ErrUnavailable
}

// Calls returns all recorded invocations.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Verify Mock implements Service at compile time.
var _ Service = (*Mock)(nil)
