package main

import (
	"AzureOpenAIStudio/internal/ai"
	"AzureOpenAIStudio/internal/config"
	"AzureOpenAIStudio/internal/web"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// Локальный веб-интерфейс к GPT-4 и DALL-E 3. Работает до Ctrl+C / SIGTERM.
func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg.DebugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	sugar.Infow(
		"Starting app",
		"DebugMode", cfg.DebugMode,
		"Provider", cfg.Provider,
		"BindAddr", cfg.BindAddr,
	)

	gen, err := ai.New(cfg, sugar)
	if err != nil {
		sugar.Errorw("failed to create generator", "error", err)
		return 1
	}

	// Graceful shutdown on Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(cfg, gen, sugar)
	// Останавливаем явно ниже, чтобы дождаться shutdown перед выходом.
	// serveCtx отменяется уже после Stop, поэтому наблюдатель внутри Start просто завершается.
	serveCtx, cancelServe := context.WithCancel(context.Background())
	defer cancelServe()
	if err := srv.Start(serveCtx); err != nil {
		sugar.Errorw("failed to start web ui", "addr", cfg.BindAddr, "error", err)
		return 1
	}
	sugar.Infow("Open the UI in a browser", "url", "http://"+srv.Addr()+"/")

	<-ctx.Done()
	if err := srv.Stop(context.Background()); err != nil {
		sugar.Warnw("web ui stop error", "error", err)
	}
	sugar.Infow("server stopped")
	return 0
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
