// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	calls    int
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.calls++
	return m.response, m.err
}

// Calls reports how many requests went through the round tripper.
func (m *MockRoundTripper) Calls() int { return m.calls }

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// FlakyBridge is an in-memory key-value bridge whose operations can be made to fail.
//
// A non-nil GetErr, SetErr or RemoveErr is returned instead of touching the map.
type FlakyBridge struct {
	mu        sync.Mutex
	Values    map[string]string
	GetErr    error
	SetErr    error
	RemoveErr error
	Sets      int
}

func NewFlakyBridge() *FlakyBridge {
	return &FlakyBridge{Values: make(map[string]string)}
}

func (b *FlakyBridge) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.GetErr != nil {
		return "", false, b.GetErr
	}
	v, ok := b.Values[key]
	return v, ok, nil
}

func (b *FlakyBridge) Set(_ context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SetErr != nil {
		return b.SetErr
	}
	b.Sets++
	b.Values[key] = value
	return nil
}

func (b *FlakyBridge) Remove(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.RemoveErr != nil {
		return b.RemoveErr
	}
	delete(b.Values, key)
	return nil
}

func (b *FlakyBridge) Close() error { return nil }
