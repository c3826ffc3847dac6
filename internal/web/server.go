// Package web локальный веб-интерфейс с двумя вкладками: генерация текста и генерация изображений.
package web

import (
	"AzureOpenAIStudio/internal/ai"
	"AzureOpenAIStudio/internal/config"
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	cfg      *config.Config
	gen      ai.Generator
	srv      *http.Server
	listener net.Listener
	logger   *zap.SugaredLogger
	running  atomic.Bool
}

func NewServer(cfg *config.Config, gen ai.Generator, logger *zap.SugaredLogger) *Server {
	s := &Server{cfg: cfg, gen: gen, logger: logger}

	// WriteTimeout не задаём: ответ ждёт удалённый сервис без ограничения по времени
	s.srv = &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler возвращает роутер со всеми маршрутами интерфейса.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/chat", s.handleForm(ai.KindChat)).Methods(http.MethodPost)
	router.HandleFunc("/image", s.handleForm(ai.KindImage)).Methods(http.MethodPost)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/chat", s.handleAPI(ai.KindChat)).Methods(http.MethodPost)
	api.HandleFunc("/image", s.handleAPI(ai.KindImage)).Methods(http.MethodPost)

	router.HandleFunc("/ws", s.handleQueue).Methods(http.MethodGet)
	router.PathPrefix("/static/").Handler(http.FileServer(http.FS(staticFS))).Methods(http.MethodGet)
	return router
}

// Start занимает адрес синхронно, чтобы ошибка bind вернулась вызывающему, и обслуживает запросы в горутине.
// При отмене ctx сервер останавливается.
func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		s.running.Store(false)
		return err
	}
	s.listener = ln

	go func() {
		s.logger.Infow("Web UI listening", "addr", ln.Addr().String(), "provider", s.cfg.Provider)
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) && err != nil {
			s.logger.Errorw("Web UI stopped with error", "error", err)
		} else {
			s.logger.Infow("Web UI stopped")
		}
	}()

	go func() {
		<-ctx.Done()
		_ = s.Stop(context.WithoutCancel(ctx))
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeoutCause(ctx, 5*time.Second, errors.New("web ui shutdown timeout"))
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warnw("graceful shutdown error", "error", err)
		return s.srv.Close()
	}
	return nil
}

// Addr возвращает фактический адрес слушателя после Start, иначе адрес из конфигурации.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.srv.Addr
}
