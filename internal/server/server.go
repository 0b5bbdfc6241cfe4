// Package server builds the MCP server around the tool registry and runs it
// over stdio or streamable HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"taskmcp/internal/config"
	"taskmcp/internal/tools"
)

const Name = "synaptik-tasks"

// shutdownGrace bounds how long in-flight HTTP requests may finish after the
// serve context ends.
const shutdownGrace = 5 * time.Second

// New registers the tools picked by selector (comma-separated names, empty
// for all) on a fresh MCP server.
func New(reg *tools.Registry, selector, version string, log *zap.Logger) (*mcpserver.MCPServer, error) {
	if reg == nil {
		return nil, errors.New("tool registry is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	selected, err := reg.Resolve(selector)
	if err != nil {
		return nil, err
	}

	hooks := &mcpserver.Hooks{}
	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		log.Warn("mcp request failed", zap.Any("id", id), zap.String("method", string(method)), zap.Error(err))
	})

	s := mcpserver.NewMCPServer(
		Name,
		version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
		mcpserver.WithHooks(hooks),
		mcpserver.WithInstructions(instructions),
	)
	for _, t := range selected {
		s.AddTool(t.Definition(), t.Handle)
	}
	log.Debug("mcp server ready", zap.Int("tools", len(selected)))
	return s, nil
}

// Serve blocks until ctx is done or the transport fails. in and out are only
// used by the stdio transport.
func Serve(ctx context.Context, s *mcpserver.MCPServer, cfg config.Server, in io.Reader, out io.Writer, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Transport {
	case "", "stdio":
		stdio := mcpserver.NewStdioServer(s)
		stdio.SetErrorLogger(zap.NewStdLog(log.Named("stdio")))
		log.Info("serving mcp over stdio")
		return stdio.Listen(ctx, in, out)
	case "http":
		return serveHTTP(ctx, mcpserver.NewStreamableHTTPServer(s), cfg.Addr, log)
	default:
		return fmt.Errorf("unsupported transport %q (allowed: stdio, http)", cfg.Transport)
	}
}

func serveHTTP(ctx context.Context, hs *mcpserver.StreamableHTTPServer, addr string, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("serving mcp over http", zap.String("addr", addr))
		errCh <- hs.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := hs.Shutdown(sctx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	}
}
