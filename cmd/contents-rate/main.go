package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/ohdongsik/contents-rate/api"
)

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// Optional .env for local development; absence is fine
	_ = godotenv.Load()

	// Setup structured logging: JSON by default, tinted text for local runs
	var handler slog.Handler
	if getEnv("LOG_FORMAT", "json") == "text" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelInfo})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	logger.Info("evaluation service initializing", "version", "1.0.0")

	// Default values
	defaultPort := getEnv("PORT", "8080")
	defaultOllamaURL := getEnv("OLLAMA_URL", "http://localhost:11434")
	defaultOllamaModel := getEnv("OLLAMA_MODEL", "gpt-oss:20b")

	// Command-line flags (override environment variables)
	port := flag.String("port", defaultPort, "Server port")
	ollamaURL := flag.String("ollama-url", defaultOllamaURL, "Ollama base URL")
	ollamaModel := flag.String("ollama-model", defaultOllamaModel, "Ollama model for AI reviews")
	disableCORS := flag.Bool("disable-cors", false, "Disable CORS")
	flag.Parse()

	config := api.DefaultConfig()
	config.Addr = ":" + *port
	config.OllamaBaseURL = *ollamaURL
	config.OllamaModel = *ollamaModel
	config.CORSEnabled = !*disableCORS

	server := api.NewServer(config)

	// Start server in a goroutine
	go func() {
		logger.Info("evaluation service starting",
			"port", *port,
			"ollama_url", *ollamaURL,
			"ollama_model", *ollamaModel,
		)

		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logger.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
