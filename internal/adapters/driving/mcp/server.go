package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sharepoint-lookup/internal/logger"
)

// serverName identifies the server to MCP clients.
const serverName = "splookup"

// shutdownTimeout bounds graceful shutdown of the HTTP transport.
const shutdownTimeout = 5 * time.Second

// instructions is sent to clients on initialize.
const instructions = `Searches a SharePoint site for entities (strings, domains, emails, ...).

Tools:
  lookup            search for one or more values; each value returns summary
                    tags plus matching pages and documents, or null data when
                    nothing matched. Set exact_match to quote the search term.
  validate_options  report which connection options are missing.

Resources:
  splookup://options  the configured connection options, password redacted.

Connection options come from the server's config file; a failed lookup
returns a JSON error payload with name, message, detail and stack.`

// Server is the MCP server exposing SharePoint lookups.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates an MCP server over the given ports. When ports.LogSink
// is set, the lookup service logs there; stdio mode needs this to keep
// stdout free for protocol messages.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	if ports.LogSink != nil {
		ports.Lookup.Startup(ports.LogSink)
	}

	version := ports.Version
	if version == "" {
		version = "dev"
	}

	impl := &mcp.Implementation{
		Name:    serverName,
		Title:   "SharePoint entity lookup",
		Version: version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions}),
	}

	s.registerTools()
	s.registerResources()

	logger.Debug("MCP server %s %s ready", serverName, version)
	return s, nil
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("MCP server running on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("MCP HTTP shutdown: %v", err)
		}
	}()

	logger.Info("MCP server listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
