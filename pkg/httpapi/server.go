package httpapi

import (
	"context"
	"net/http"
	"time"
)

// Config is the query API's listen configuration.
type Config struct {
	Addr    string
	Timeout time.Duration
}

// Server wraps http.Server with context-driven graceful shutdown, the
// way the teacher's pkg/http/server package does for its own API.
type Server struct {
	httpServer *http.Server
}

// New builds a Server bound to config.Addr, serving handler, shutting
// down when ctx is cancelled.
func New(ctx context.Context, handler http.Handler, config Config) *Server {
	srv := &Server{
		httpServer: &http.Server{
			Addr:         addrOrDefault(config.Addr),
			Handler:      handler,
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
		},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.httpServer.Shutdown(shutdownCtx)
	}()

	return srv
}

// ListenAndServe blocks serving requests until the server is shut
// down, returning nil instead of http.ErrServerClosed on a clean stop.
func (s *Server) ListenAndServe() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func addrOrDefault(addr string) string {
	if addr == "" {
		return ":8090"
	}
	return addr
}
