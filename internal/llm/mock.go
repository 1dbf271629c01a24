package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockText is a canned plain-text reply.
func MockText(text string) MockResponse {
	return MockResponse{Content: json.RawMessage(text)}
}

// MockProvider is a deterministic Provider for tests and the "mock"
// provider setting. It returns canned responses in FIFO order and records
// every request with the purpose it was made for. With an empty queue it
// reports itself unavailable, which drives callers onto their fallbacks.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
	Purposes  []string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	m.Purposes = append(m.Purposes, PurposeFrom(ctx))

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return nil, resp.Err
	}
	return finishResponse(req, resp.Content, resp.Usage, "mock", StopEnd)
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Pending returns how many canned responses are left.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses)
}
