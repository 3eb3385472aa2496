package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/aknishi/studium/internal/config"
	"github.com/aknishi/studium/internal/content"
	"github.com/aknishi/studium/internal/inference"
	"github.com/aknishi/studium/internal/inference/openai"
	"github.com/aknishi/studium/internal/server"
	"github.com/aknishi/studium/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	if cfg.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
	defer func() {
		_ = openaiClient.Close()
	}()

	registry, err := content.NewRegistry(cfg.Templates.PromptDirectory)
	if err != nil {
		return fmt.Errorf("content.NewRegistry() > %w", err)
	}

	logger := slog.Default()
	handler := server.NewHandler(
		session.NewManager(),
		content.NewWorkflow(registry, openaiClient),
		openaiClient,
		logger,
	)

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.Handle("/", http.FileServer(http.Dir(cfg.Server.StaticDirectory)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("starting server", "addr", addr)
	return http.ListenAndServe(addr, corsMiddleware(cfg.Server.AllowedOrigins, h2c.NewHandler(mux, &http2.Server{})))
}

func loadConfig() (*config.Config, error) {
	return config.Load(os.Getenv("STUDIUM_CONFIG"))
}

func corsMiddleware(allowedOrigins []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if slices.Contains(allowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if len(allowedOrigins) > 0 {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins[0])
		}
		w.Header().Set("Access-Control-Allow-Methods", strings.Join([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions,
		}, ", "))
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
