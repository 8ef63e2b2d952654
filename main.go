package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/andrewpaige1/revisa-api/config"
	"github.com/andrewpaige1/revisa-api/generator"
	"github.com/andrewpaige1/revisa-api/handlers"
	"github.com/andrewpaige1/revisa-api/middleware"
	"github.com/andrewpaige1/revisa-api/srs"
	"github.com/andrewpaige1/revisa-api/store"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func newLogger(env config.Environment) *slog.Logger {
	opts := &slog.HandlerOptions{Level: env.LogLevel}
	if env.IsDevelopment {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func main() {
	env, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := newLogger(env)
	slog.SetDefault(logger)

	db, err := config.Connect(env.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	scheduler, err := srs.NewScheduler(srs.SchedulerConfig{MaxIntervalDays: env.MaxIntervalDays})
	if err != nil {
		slog.Error("invalid scheduler configuration", "error", err)
		os.Exit(1)
	}

	authMiddleware, err := middleware.EnsureValidToken(env)
	if err != nil {
		slog.Error("auth setup failed", "error", err)
		os.Exit(1)
	}

	DBHandler := handlers.NewDBHandler(store.New(db, scheduler), nil, env.GenerateLimit)
	gen, err := generator.NewOpenAIGenerator(env.OpenAIKey, env.OpenAIModel, env.OpenAIBaseURL)
	switch {
	case errors.Is(err, generator.ErrNotConfigured):
		slog.Warn("OPENAI_API_KEY not set, flashcard generation disabled")
	case err != nil:
		slog.Error("generator setup failed", "error", err)
		os.Exit(1)
	default:
		DBHandler.Generator = gen
	}

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   env.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(DBHandler.Routes(authMiddleware))

	server := &http.Server{
		Addr:              "0.0.0.0:" + env.Port,
		Handler:           middleware.RequestLogger(logger)(corsHandler),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      env.GenerateLimit + 30*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("listening", "addr", server.Addr, "development", env.IsDevelopment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
