package main

import (
	"PostGenius/internal/ai"
	"PostGenius/internal/config"
	"PostGenius/internal/server"
	"PostGenius/internal/service/image"
	"PostGenius/internal/service/post"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.DebugMode)
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	sugar.Infow(
		"Starting app",
		"DebugMode", cfg.DebugMode,
		"provider", cfg.AIProvider,
		"model", cfg.OpenAI.Model,
	)

	client, err := ai.New(cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to create ai client", "error", err)
	}
	generator := post.NewGenerator(client, image.NewProcessor(cfg.Image), sugar)

	srv, err := server.New(cfg, generator, sugar)
	if err != nil {
		sugar.Fatalw("failed to create server", "error", err)
	}

	// Graceful shutdown on Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		sugar.Fatalw("failed to start server", "error", err)
	}
	<-ctx.Done()

	if err := srv.Stop(context.WithoutCancel(ctx)); err != nil {
		sugar.Warnw("server stop error", "error", err)
	}
	sugar.Infow("server stopped")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
