package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/diegofornalha/flow-mcp/internal/logging"
)

// HTTPTransport serves the MCP server over streamable HTTP
type HTTPTransport struct {
	host   string
	port   int
	logger *logging.Logger
}

// NewHTTPTransport creates a new HTTP transport bound to host:port
func NewHTTPTransport(host string, port int) *HTTPTransport {
	return &HTTPTransport{
		host:   host,
		port:   port,
		logger: logging.New("http"),
	}
}

// Addr returns the listen address the transport binds to
func (t *HTTPTransport) Addr() string {
	return fmt.Sprintf("%s:%d", t.host, t.port)
}

// Start serves MCP over HTTP until the context is cancelled
func (t *HTTPTransport) Start(ctx context.Context, server *mcp.Server) error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
	router.Handle("/mcp", mcpHandler)

	httpServer := &http.Server{
		Addr:    t.Addr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		t.logger.Info("HTTP transport listening", logging.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	t.logger.Info("shutting down HTTP transport")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
