package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/vidgrab-go/api"
	"github.com/yourusername/vidgrab-go/internal/app"
	"github.com/yourusername/vidgrab-go/internal/domain"
	"github.com/yourusername/vidgrab-go/internal/infrastructure"
	"github.com/yourusername/vidgrab-go/pkg/logger"
)

var configPath = flag.String("config", "", "Path to config file")

func main() {
	flag.Parse()

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting vidgrab server",
		zap.String("version", "1.0.0"),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("temp_dir", config.Download.TempDir))

	if err := os.MkdirAll(config.Download.TempDir, 0755); err != nil {
		log.Fatal("Failed to create scratch directory", zap.Error(err))
	}

	creds := infrastructure.NewCredentialStore(&config.Credentials)
	log.Info("Credential inventory",
		zap.Bool("youtube_cookies", creds.Has(infrastructure.CredentialCookieFile, domain.PlatformYouTube)),
		zap.Bool("instagram_cookies", creds.Has(infrastructure.CredentialCookieFile, domain.PlatformInstagram)),
		zap.Bool("tiktok_cookies", creds.Has(infrastructure.CredentialCookieFile, domain.PlatformTikTok)),
		zap.Bool("po_token", creds.Has(infrastructure.CredentialPOToken, domain.PlatformYouTube)),
		zap.Bool("visitor_data", creds.Has(infrastructure.CredentialVisitorData, domain.PlatformYouTube)))

	selector := infrastructure.NewEngineSelector(&config.Engines)
	builder := infrastructure.NewCommandBuilder(creds, &config.Engines, config.Download.TempDir)
	runner := infrastructure.NewProcessRunner(log)
	resolver := infrastructure.NewArtifactResolver()
	cleaner := infrastructure.NewCleaner(config.Download.CleanupGrace, log)
	responder := infrastructure.NewStreamingResponder(cleaner, log)
	notifier := infrastructure.NewNotificationService(&config.Notification, log)
	health := domain.NewHealthRegistry()

	orchestrator := app.NewOrchestrator(
		selector, builder, runner, resolver,
		health, cleaner, notifier,
		&config.Download, log)

	router := api.SetupRouter(orchestrator, responder, config.Download.FilenameMaxLength, log)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
