package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	ProviderAzure  = "azure"
	ProviderOpenAI = "openai"
	ProviderStub   = "stub" // без сетевых запросов, для локальной проверки интерфейса
)

type Config struct {
	DebugMode bool   `env:"DEBUG_MODE"`                                  //Режим дебага
	BindAddr  string `env:"BIND_ADDR" validate:"required,hostname_port"` // Адрес локального веб-интерфейса
	Provider  string `env:"PROVIDER" validate:"oneof=azure openai stub"` // azure|openai|stub, по умолчанию azure

	// Ключ и эндпоинты не валидируются: при их отсутствии запрос упадёт и ошибка отобразится в UI
	APIKey        string `env:"API_KEY"`        // Значение заголовка api-key
	ChatEndpoint  string `env:"GPT_ENDPOINT"`   // Полный URL chat completions (Azure deployment)
	ImageEndpoint string `env:"IMAGE_ENDPOINT"` // Полный URL генерации изображений (Azure deployment)

	OpenAI OpenAIConfig
}

// OpenAIConfig настройки бэкенда на openai-go, используется при PROVIDER=openai.
type OpenAIConfig struct {
	ChatModel string `env:"OPENAI_CHAT_MODEL" validate:"required_if=Enabled true"`
	BaseURL   string `env:"OPENAI_BASE_URL" validate:"omitempty,url"` // Пусто: адрес SDK по умолчанию
	Enabled   bool
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode: false,
		BindAddr:  "127.0.0.1:7860",
		Provider:  ProviderAzure,
		OpenAI: OpenAIConfig{
			ChatModel: "gpt-4o",
		},
	}
}

// NewConfig загружает конфигурацию приложения из .env, окружения и аргументов процесса.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(os.Args[1:])
}

// LoadFrom собирает конфигурацию: дефолты, затем окружение, затем флаги из args.
func LoadFrom(args []string) (*Config, error) {
	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага (подробные логи)")
	fs.StringVar(&cfg.BindAddr, "bind-addr", cfg.BindAddr, "адрес веб-интерфейса, напр. 127.0.0.1:7860")
	fs.StringVar(&cfg.Provider, "provider", cfg.Provider, "бэкенд запросов: azure|openai|stub")
	fs.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "ключ API (перекрывает ENV API_KEY)")
	fs.StringVar(&cfg.ChatEndpoint, "gpt-endpoint", cfg.ChatEndpoint, "URL эндпоинта GPT-4 (перекрывает ENV GPT_ENDPOINT)")
	fs.StringVar(&cfg.ImageEndpoint, "image-endpoint", cfg.ImageEndpoint, "URL эндпоинта DALL-E (перекрывает ENV IMAGE_ENDPOINT)")
	fs.StringVar(&cfg.OpenAI.ChatModel, "openai-chat-model", cfg.OpenAI.ChatModel, "модель чата для провайдера openai")
	fs.StringVar(&cfg.OpenAI.BaseURL, "openai-base-url", cfg.OpenAI.BaseURL, "базовый URL OpenAI API (опционально)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.OpenAI.Enabled = cfg.Provider == ProviderOpenAI

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
