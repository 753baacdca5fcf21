package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gemini-gateway/internal/config"
	"gemini-gateway/internal/llm" // The internal package for this service

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

// main is the entry point for the GeminiGatewayService.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	// Pick the model backend. The echo gateway needs no credentials.
	var gateway llm.Gateway
	switch cfg.Backend {
	case config.BackendEcho:
		gateway = llm.NewEchoGateway()
	default:
		gateway = llm.NewGeminiGateway(llm.GeminiConfig{APIKey: cfg.APIKey, Model: cfg.Model})
	}

	uploads, err := llm.NewUploadStore(cfg.UploadDir, cfg.MaxPayloadBytes)
	if err != nil {
		log.Fatalf("Could not prepare upload directory: %v", err)
	}

	// Inject the gateway into the service
	llmService := llm.NewService(gateway, llm.NewEncoder(cfg.MaxPayloadBytes))

	// Inject service into the handler
	llmHandler := llm.NewHandler(llmService, uploads)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("GeminiGatewayService OK"))
	})

	// Register all the API routes from the handler
	llmHandler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Gemini API server is running at http://localhost:%s (backend %s, model %s)", cfg.Port, cfg.Backend, cfg.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Println("Shutting down GeminiGatewayService")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Could not start server: %v", err)
	}
}
