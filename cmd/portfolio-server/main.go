// Package main provides the entry point for the portfolio chat server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jardelmessias/portfolio-chat/internal/chat"
	"github.com/jardelmessias/portfolio-chat/internal/config"
	"github.com/jardelmessias/portfolio-chat/internal/db"
	"github.com/jardelmessias/portfolio-chat/internal/llm"
	"github.com/jardelmessias/portfolio-chat/internal/metrics"
	"github.com/jardelmessias/portfolio-chat/internal/server"
	"github.com/jardelmessias/portfolio-chat/internal/store"
	"github.com/jardelmessias/portfolio-chat/internal/voice"
	"github.com/jardelmessias/portfolio-chat/internal/weather"
)

const version = "0.1.0"

func main() {
	cfg := config.Load()

	// Dual output: text to stderr, JSON to file
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("portfolio-chat starting",
		"version", version,
		"surrealdb_url", cfg.SurrealDBURL,
		"model", cfg.OpenAIModel,
		"listen_addr", cfg.ListenAddr,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	dbClient, err := db.NewClient(ctx, db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		logger.Info("closing database connection")
		_ = dbClient.Close(context.Background())
	}()

	if err := dbClient.InitSchema(ctx); err != nil {
		logger.Error("failed to initialize database schema", "error", err)
		os.Exit(1)
	}

	// Completion provider
	completer, err := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if err != nil {
		logger.Error("failed to create completion client", "error", err)
		os.Exit(1)
	}
	logger.Info("completion client initialized", "model", completer.Model())

	// Explicitly constructed, dependency-injected collaborators
	collector := metrics.NewCollector()
	chatSvc := chat.NewService(chat.Dependencies{
		Store:       store.NewSessionStore(dbClient, logger),
		Completer:   completer,
		Synthesizer: voice.NewClient(cfg.ElevenAPIKey, cfg.VoiceID),
		Audit:       store.NewConversationLog(dbClient),
		Metrics:     collector,
		Logger:      logger,
	})
	weatherSvc := weather.NewService(completer, collector, logger)

	e := server.New(server.NewHandler(chatSvc, weatherSvc, collector))

	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()
	logger.Info("server ready", "addr", cfg.ListenAddr)

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Let in-flight audit writes finish
	chatSvc.Flush()

	logger.Info("shutdown complete")
}
