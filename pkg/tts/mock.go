package tts

import (
	"context"
	"sync"
)

// Mock implements Synthesizer for testing.
type Mock struct {
	// SynthesizeFunc is called when Synthesize is invoked.
	// If nil, returns a fixed token.
	SynthesizeFunc func(ctx context.Context, text, lang string) (string, error)

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a Synthesize invocation.
type MockCall struct {
	Text string
	Lang string
}

// NewMock creates a mock returning a fixed token for every call.
func NewMock() *Mock {
	return &Mock{}
}

// MockWithError returns a mock that always fails with err.
func MockWithError(err error) *Mock {
	return &Mock{
		SynthesizeFunc: func(context.Context, string, string) (string, error) {
			return "", err
		},
	}
}

// Synthesize calls SynthesizeFunc and records the call.
func (m *Mock) Synthesize(ctx context.Context, text, lang string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Text: text, Lang: lang})
	m.mu.Unlock()

	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text, lang)
	}
	return "response_mock.mp3", nil
}

// Close is a no-op.
func (m *Mock) Close() error {
	return nil
}

// Calls returns all recorded invocations.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of Synthesize invocations.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Verify Mock implements Synthesizer at compile time.
var _ Synthesizer = (*Mock)(nil)
