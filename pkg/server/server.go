// Package server exposes the scan store over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/scanlog/scanlog/internal/logging"
	"github.com/scanlog/scanlog/pkg/store"
)

const (
	// MaxLimit caps the page size a client may request.
	MaxLimit = 1000

	maxBodyBytes = 1 << 20
)

// Server wires the HTTP API to a Repository.
type Server struct {
	repo   store.Repository
	log    logging.Logger
	router *mux.Router
}

// New builds a Server and registers its routes.
func New(repo store.Repository, log logging.Logger) *Server {
	s := &Server{
		repo:   repo,
		log:    log,
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)

	// Both spellings are routed directly; no trailing-slash redirect.
	for _, p := range []string{"/scans/", "/scans"} {
		r.HandleFunc(p, s.handleListScans).Methods(http.MethodGet)
		r.HandleFunc(p, s.handleCreateScan).Methods(http.MethodPost)
		r.HandleFunc(p, s.handleDeleteScans).Methods(http.MethodDelete)
	}
	for _, p := range []string{"/scans/export/", "/scans/export"} {
		r.HandleFunc(p, s.handleExportScans).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
}

// Handler returns the root handler. Middleware wraps the router itself so
// unmatched routes (404, 405) pass through it too.
func (s *Server) Handler() http.Handler {
	return cors(s.requestID(s.accessLog(s.recoverPanic(s.router))))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info(gctx, "server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info(shutdownCtx, "server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
