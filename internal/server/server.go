package server

import (
	"PostGenius/internal/config"
	"PostGenius/internal/service/post"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
)

// Generator сервис генерации поста.
type Generator interface {
	Generate(ctx context.Context, req post.Request) (post.Result, error)
}

// Server HTTP сервер: POST /api/generate, UI и /healthz.
type Server struct {
	cfg          config.ServerConfig
	bindAddr     string
	maxBodyBytes int64
	generator    Generator
	ui           *ui
	logger       *zap.SugaredLogger

	srv     *http.Server
	addr    atomic.Value // string, фактический адрес после Start
	running atomic.Bool
}

func New(cfg *config.Config, generator Generator, logger *zap.SugaredLogger) (*Server, error) {
	u, err := newUI(logger)
	if err != nil {
		return nil, fmt.Errorf("init ui: %w", err)
	}
	s := &Server{
		cfg:          cfg.Server,
		bindAddr:     cfg.BindAddr,
		maxBodyBytes: cfg.MaxBodyBytes,
		generator:    generator,
		ui:           u,
		logger:       logger,
	}
	s.addr.Store(cfg.BindAddr)

	s.srv = &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	return s, nil
}

// Handler возвращает корневой обработчик со всеми маршрутами.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/static/", http.StripPrefix("/static/", s.ui.static()))
	mux.HandleFunc("/", s.ui.handleIndex)
	return s.withRequestLogging(mux)
}

// Start занимает порт синхронно, чтобы ошибка bind вернулась сразу,
// и обслуживает запросы в отдельной горутине.
func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.bindAddr)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("listen %s: %w", s.bindAddr, err)
	}
	s.addr.Store(ln.Addr().String())

	go func() {
		s.logger.Infow("HTTP server listening", "addr", s.Addr())
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) && err != nil {
			s.logger.Errorw("HTTP server stopped with error", "error", err)
		} else {
			s.logger.Infow("HTTP server stopped")
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeoutCause(ctx, s.cfg.ShutdownTimeout, errors.New("http server shutdown timeout"))
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warnw("graceful shutdown error", "error", err)
		return s.srv.Close()
	}
	return nil
}

func (s *Server) Addr() string { return s.addr.Load().(string) }
