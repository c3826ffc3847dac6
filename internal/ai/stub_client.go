package ai

import (
	"context"
	"sync"
)

const (
	StubText     = "запрос получен"
	StubImageURL = "https://placehold.co/1024x1024.png"
)

// Ensure interface compliance
var _ Generator = (*StubClient)(nil)

// StubClient заглушка, которая не делает реальных запросов. Запоминает промпты по kind.
type StubClient struct {
	mu      sync.Mutex
	prompts map[Kind][]string
}

func NewStubClient() *StubClient { return &StubClient{prompts: make(map[Kind][]string)} }

func (c *StubClient) ChatComplete(_ context.Context, prompt string) (string, error) {
	c.record(KindChat, prompt)
	return StubText, nil
}

func (c *StubClient) GenerateImage(_ context.Context, prompt string) (string, error) {
	c.record(KindImage, prompt)
	return StubImageURL, nil
}

// Prompts возвращает копию полученных промптов для kind в порядке поступления.
func (c *StubClient) Prompts(kind Kind) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prompts[kind]...)
}

func (c *StubClient) record(kind Kind, prompt string) {
	c.mu.Lock()
	c.prompts[kind] = append(c.prompts[kind], prompt)
	c.mu.Unlock()
}
