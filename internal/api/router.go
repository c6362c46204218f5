// internal/api/router.go
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rovshanmuradov/token-launcher/internal/feed"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	"github.com/rovshanmuradov/token-launcher/internal/ledger"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Deps — зависимости HTTP-слоя.
type Deps struct {
	Registry *launch.Registry
	Images   launch.ImageResolver
	Ledger   *ledger.Ledger
	Feed     feed.Source
	// Metrics отдаётся на /metrics, если задан.
	Metrics http.Handler
}

// Server обслуживает HTTP API лаунчера.
type Server struct {
	deps   Deps
	logger *zap.Logger
}

func NewServer(deps Deps, logger *zap.Logger) *Server {
	return &Server{deps: deps, logger: logger.Named("api")}
}

// Routes собирает маршруты.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("GET /health", s.Health)
	if s.deps.Metrics != nil {
		mux.Handle("GET /metrics", s.deps.Metrics)
	}

	// Launch endpoints
	mux.HandleFunc("POST /api/launchpad/{platform}", s.BuildLaunch)
	mux.HandleFunc("GET /api/platforms", s.Platforms)

	// Ledger endpoints
	mux.HandleFunc("GET /api/wallets/{wallet}/launches", s.Launches)
	mux.HandleFunc("DELETE /api/wallets/{wallet}/launches", s.ClearLaunches)

	mux.HandleFunc("GET /api/feed", s.FeedPosts)

	return s.recoverer(mux)
}

// Run слушает addr до отмены ctx и затем корректно останавливает сервер.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// recoverer превращает панику обработчика в 500 с телом ошибки.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("Handler panic",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec))
				writeError(w, http.StatusInternalServerError, "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
