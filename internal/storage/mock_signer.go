package storage

import (
	"context"
	"sync"
)

// MockCall records a method call for assertion
type MockCall struct {
	Method string
	Key    string
}

// MockSigner is a mock implementation of URLSigner for testing.
// Without overrides it returns deterministic per-key URLs.
type MockSigner struct {
	mu sync.Mutex

	// Call tracking
	Calls []MockCall

	// Configurable function overrides
	SignedDownloadURLFunc func(ctx context.Context, key string) (string, error)
	SignedUploadURLFunc   func(ctx context.Context, key string) (string, error)
}

// NewMockSigner creates a new mock signer with default behavior
func NewMockSigner() *MockSigner {
	return &MockSigner{}
}

func (m *MockSigner) record(method, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: method, Key: key})
}

// CallCount returns how many times method was called
func (m *MockSigner) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// SignedDownloadURL implements URLSigner
func (m *MockSigner) SignedDownloadURL(ctx context.Context, key string) (string, error) {
	m.record("SignedDownloadURL", key)
	if m.SignedDownloadURLFunc != nil {
		return m.SignedDownloadURLFunc(ctx, key)
	}
	return MockDownloadURL(key), nil
}

// SignedUploadURL implements URLSigner
func (m *MockSigner) SignedUploadURL(ctx context.Context, key string) (string, error) {
	m.record("SignedUploadURL", key)
	if m.SignedUploadURLFunc != nil {
		return m.SignedUploadURLFunc(ctx, key)
	}
	return MockUploadURL(key), nil
}

// MockDownloadURL is the URL MockSigner returns by default for GET on key
func MockDownloadURL(key string) string {
	return "https://signed.example.com/get/" + key + "?X-Amz-Signature=mock"
}

// MockUploadURL is the URL MockSigner returns by default for PUT on key
func MockUploadURL(key string) string {
	return "https://signed.example.com/put/" + key + "?X-Amz-Signature=mock"
}
