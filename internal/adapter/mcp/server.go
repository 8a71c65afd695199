package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/schemalens/schemalens/internal/core/port"
	"github.com/schemalens/schemalens/internal/core/service"
	"go.opentelemetry.io/otel/trace"
)

// NewServer creates an MCPServer with the four analysis tools and
// logging hooks. maxSampleRows is the configured default sample bound.
func NewServer(version string, analysis *service.AnalysisService, maxSampleRows int, logger *slog.Logger, tracer trace.Tracer, inst port.Instrumentation) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithHooks(ToolCallHooks(logger, tracer, inst)),
	)

	RegisterTools(s, analysis, maxSampleRows)

	return s
}
