package ai

import (
	"AzureOpenAIStudio/internal/config"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrMalformedResponse успешный ответ сервиса без ожидаемого поля.
var ErrMalformedResponse = errors.New("malformed response")

// Kind возможность удалённого сервиса, она же вкладка интерфейса.
type Kind string

const (
	KindChat  Kind = "chat"
	KindImage Kind = "image"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindChat, KindImage:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown kind %q", s)
	}
}

// Generator отправляет промпт в удалённый сервис ровно одним запросом.
type Generator interface {
	// ChatComplete возвращает текст первого варианта ответа.
	ChatComplete(ctx context.Context, prompt string) (string, error)
	// GenerateImage возвращает URL первой сгенерированной картинки.
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Run вызывает операцию генератора по kind и упаковывает итог в Result.
func Run(ctx context.Context, g Generator, kind Kind, prompt string) Result {
	switch kind {
	case KindChat:
		return NewResult(g.ChatComplete(ctx, prompt))
	case KindImage:
		return NewResult(g.GenerateImage(ctx, prompt))
	default:
		return Result{Err: fmt.Errorf("unknown kind %q", kind)}
	}
}

// Result итог одного вызова: полезная нагрузка либо причина ошибки.
type Result struct {
	Value string
	Err   error
}

func NewResult(value string, err error) Result {
	if err != nil {
		return Result{Err: err}
	}
	return Result{Value: value}
}

func (r Result) Failed() bool { return r.Err != nil }

// Display возвращает строку для виджета вывода; ошибки показываются там же, с префиксом "Error: ".
func (r Result) Display() string {
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	return r.Value
}

// New создаёт генератор для провайдера из конфигурации.
func New(cfg *config.Config, logger *zap.SugaredLogger) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderAzure, "":
		return NewAzureClient(cfg, logger), nil
	case config.ProviderOpenAI:
		return NewSDKClient(cfg), nil
	case config.ProviderStub:
		return NewStubClient(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
