// Package dto описывает тела запросов и ответов удалённых генеративных сервисов.
package dto

const (
	RoleSystem = "system"
	RoleUser   = "user"

	// SystemPrompt фиксированная системная инструкция каждого чат-запроса.
	SystemPrompt = "You are a helpful assistant."

	DefaultTemperature = 0.7
	DefaultTopP        = 0.95
	DefaultMaxTokens   = 800
)

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest тело POST-запроса к эндпоинту chat completions.
type ChatRequest struct {
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p"`
	MaxTokens   int       `json:"max_tokens"`
}

// NewChatRequest создаёт запрос с системной инструкцией и пользовательским промптом как есть.
func NewChatRequest(prompt string) *ChatRequest {
	return &ChatRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: SystemPrompt},
			{Role: RoleUser, Content: prompt},
		},
		Temperature: DefaultTemperature,
		TopP:        DefaultTopP,
		MaxTokens:   DefaultMaxTokens,
	}
}

// UserPrompt возвращает содержимое первого сообщения с ролью user.
func (r *ChatRequest) UserPrompt() string {
	for _, m := range r.Messages {
		if m.Role == RoleUser {
			return m.Content
		}
	}
	return ""
}

// ChatResponse represents a chat completion response.
type ChatResponse struct {
	Choices []ChatChoice `json:"choices"`
}

// ChatChoice represents a single response choice.
type ChatChoice struct {
	Message Message `json:"message"`
}
