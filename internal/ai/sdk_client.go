package ai

import (
	"AzureOpenAIStudio/internal/config"
	"AzureOpenAIStudio/internal/dto"
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Ensure interface compliance
var _ Generator = (*SDKClient)(nil)

// SDKClient ходит в публичный OpenAI API через openai-go с теми же параметрами запросов,
// что и AzureClient. Ретраи SDK выключены.
type SDKClient struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewSDKClient(cfg *config.Config) *SDKClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.OpenAI.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAI.BaseURL))
	}
	client := openai.NewClient(opts...)

	return &SDKClient{
		client: &client,
		model:  openai.ChatModel(cfg.OpenAI.ChatModel),
	}
}

func (c *SDKClient) ChatComplete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(dto.SystemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(dto.DefaultTemperature),
		TopP:        openai.Float(dto.DefaultTopP),
		MaxTokens:   openai.Int(dto.DefaultMaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: missing %s", ErrMalformedResponse, chatContentPath)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *SDKClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(dto.DefaultImageModel),
		N:      openai.Int(dto.DefaultImageCount),
		Size:   openai.ImageGenerateParamsSize(dto.DefaultImageSize),
	})
	if err != nil {
		return "", fmt.Errorf("image generation: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("%w: missing %s", ErrMalformedResponse, imageURLPath)
	}
	return resp.Data[0].URL, nil
}
