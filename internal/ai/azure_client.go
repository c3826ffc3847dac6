package ai

import (
	"AzureOpenAIStudio/internal/config"
	"AzureOpenAIStudio/internal/dto"
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	chatContentPath = "choices.0.message.content"
	imageURLPath    = "data.0.url"

	apiKeyHeader = "api-key"

	maxErrorBody = 4096
)

// Ensure interface compliance
var _ Generator = (*AzureClient)(nil)

// AzureClient шлёт запросы напрямую на эндпоинты Azure OpenAI (GPT_ENDPOINT, IMAGE_ENDPOINT).
// Ни ретраев, ни таймаута: один блокирующий POST на вызов.
type AzureClient struct {
	http          *resty.Client
	chatEndpoint  string
	imageEndpoint string
	logger        *zap.SugaredLogger
}

func NewAzureClient(cfg *config.Config, logger *zap.SugaredLogger) *AzureClient {
	c := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader(apiKeyHeader, cfg.APIKey).
		SetRetryCount(0).
		SetLogger(logger).
		SetDebug(cfg.DebugMode).
		OnRequestLog(maskAPIKey)

	return &AzureClient{
		http:          c,
		chatEndpoint:  cfg.ChatEndpoint,
		imageEndpoint: cfg.ImageEndpoint,
		logger:        logger,
	}
}

// maskAPIKey скрывает ключ в дампе запроса, который resty пишет в лог в режиме отладки.
// Меняется только копия заголовков для лога, сам запрос уходит с ключом.
func maskAPIKey(l *resty.RequestLog) error {
	if l.Header.Get(apiKeyHeader) != "" {
		l.Header.Set(apiKeyHeader, "***")
	}
	return nil
}

func (c *AzureClient) ChatComplete(ctx context.Context, prompt string) (string, error) {
	body, err := c.post(ctx, c.chatEndpoint, dto.NewChatRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return extractString(body, chatContentPath)
}

func (c *AzureClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	body, err := c.post(ctx, c.imageEndpoint, dto.NewImageRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("image generation: %w", err)
	}
	return extractString(body, imageURLPath)
}

func (c *AzureClient) post(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post(endpoint)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		b := resp.Body()
		if len(b) > maxErrorBody {
			b = b[:maxErrorBody]
		}
		return nil, &dto.APIError{
			Code:     resp.StatusCode(),
			Message:  string(b),
			Endpoint: endpoint,
		}
	}
	return resp.Body(), nil
}

// extractString достаёт строковое поле по gjson-пути из тела успешного ответа.
func extractString(body []byte, path string) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: body is not valid JSON", ErrMalformedResponse)
	}
	v := gjson.GetBytes(body, path)
	if !v.Exists() || v.Type != gjson.String {
		return "", fmt.Errorf("%w: missing %s", ErrMalformedResponse, path)
	}
	return v.String(), nil
}
