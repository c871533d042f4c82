package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/models"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that knows the patterns it serves.
type Handler interface {
	http.Handler
	Routes() []string // method-qualified patterns, e.g. "POST /api/match"
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)
	Handle(method, path string, handler http.Handler)
	Handler(handler Handler)
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// BatchMatcher resolves a batch of tracks, one outcome per track in input order.
// [tasks.Matcher] implements it.
type BatchMatcher interface {
	MatchBatch(ctx context.Context, tracks []models.TrackDescriptor) []models.MatchOutcome
}

// DefaultMaxBatchSize is the largest batch accepted by the match endpoint.
const DefaultMaxBatchSize = 10

type ServerOpts struct {
	Matcher           BatchMatcher
	Backend           string // search backend name reported by /health
	MaxBatchSize      int    // defaults to [DefaultMaxBatchSize]
	RequestsPerMinute int    // per client IP; zero disables rate limiting
	Burst             int
	Logger            *log.Logger
}

// Server is the HTTP front of the batch matcher.
type Server struct {
	router *BasicRouter
	logger *log.Logger
}

func NewServer(opts ServerOpts) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	size := opts.MaxBatchSize
	if size < 1 {
		size = DefaultMaxBatchSize
	}

	router := NewBasicRouter()
	router.Use(RequestLogger(logger), Recoverer(logger))
	if opts.RequestsPerMinute > 0 {
		router.Use(RateLimiter(NewIPLimiter(opts.RequestsPerMinute, opts.Burst)))
	}

	router.Handler(NewMatchHandler(opts.Matcher, size, logger))
	router.Handle(http.MethodGet, "/health", HealthHandler(opts.Backend))

	return &Server{router: router, logger: logger}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is done.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(listener)
	}()
	s.logger.Info("server listening", "addr", listener.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
