package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/config"
	"github.com/taaha3244/quicktools/internal/metrics"
	"github.com/taaha3244/quicktools/internal/tools"
)

const defaultShutdownTimeout = 10 * time.Second

// Server exposes the catalog and the dispatcher over HTTP.
type Server struct {
	cfg        config.ServerConfig
	store      *catalog.Store
	dispatcher *tools.Dispatcher
	metrics    metrics.Recorder
	gatherer   prometheus.Gatherer
	logger     *zap.Logger
	newID      catalog.IDFunc

	handler http.Handler
}

type Option func(*Server)

// WithMetrics records HTTP metrics to rec and serves gatherer at /metrics.
func WithMetrics(rec metrics.Recorder, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = rec
		s.gatherer = gatherer
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithIDFunc sets the id generator for dashboard-added tools.
func WithIDFunc(fn catalog.IDFunc) Option {
	return func(s *Server) { s.newID = fn }
}

func New(cfg config.ServerConfig, store *catalog.Store, dispatcher *tools.Dispatcher, opts ...Option) *Server {
	s := &Server{
		cfg:        cfg,
		store:      store,
		dispatcher: dispatcher,
		metrics:    metrics.NewNoopMetrics(),
		logger:     zap.NewNop(),
		newID:      catalog.NewUUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("server")
	s.handler = s.withRequestLogging(s.routes())
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/tools", s.handleListTools)
	mux.HandleFunc("GET /api/tools/{slug}", s.handleGetTool)
	mux.HandleFunc("POST /api/tools", s.handleAddTool)
	mux.HandleFunc("DELETE /api/tools/{id}", s.handleDeleteTool)
	mux.HandleFunc("POST /api/tools/{slug}/run", s.handleRunTool)
	if s.gatherer != nil {
		mux.Handle("GET /metrics", metrics.Handler(s.gatherer))
	}
	return mux
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on the configured address and serves until ctx is
// done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
