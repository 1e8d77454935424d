// Package server assembles the HTTP API: routes, middleware, and lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/bolophil/SplitIt/internal/auth"
	"github.com/bolophil/SplitIt/internal/middleware"
	"github.com/bolophil/SplitIt/internal/service"
	"github.com/bolophil/SplitIt/internal/storage"
)

// Config holds the server's runtime settings.
type Config struct {
	Port      int
	JWTSecret string
	TokenTTL  time.Duration
}

// New builds the full HTTP handler: auth and receipt routes behind JWT
// middleware, prometheus metrics, request logging, CORS, and h2c so HTTP/2
// works without TLS behind a terminating proxy.
func New(store storage.Store, cfg Config) http.Handler {
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	authSvc := service.NewAuthService(authenticator, jwtManager, slog.Default())
	receiptSvc := service.NewReceiptService(store)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/register", authSvc.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authSvc.Login)

	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(jwtManager, h)
	}
	mux.Handle("POST /api/v1/receipts", protected(receiptSvc.CreateReceipt))
	mux.Handle("GET /api/v1/receipts/{id}", protected(receiptSvc.GetReceipt))
	mux.Handle("GET /api/v1/receipts/{id}/settlement", protected(receiptSvc.GetSettlement))
	mux.Handle("POST /api/v1/receipts/{id}/participants", protected(receiptSvc.AddParticipant))
	mux.Handle("POST /api/v1/receipts/{id}/payments", protected(receiptSvc.AppendPayment))
	mux.Handle("GET /api/v1/receipts/{id}/payments", protected(receiptSvc.ListPayments))

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.Logging(middleware.Metrics(corsMiddleware(mux)))
	return h2c.NewHandler(handler, &http2.Server{})
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully.
func Run(handler http.Handler, port int) error {
	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	slog.Info("Server exited gracefully")
	return nil
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
