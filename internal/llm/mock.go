package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error
	Prompts  []string
}

func (m *MockClient) Generate(_ context.Context, prompt string, _ int) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	return m.Response, m.Err
}
