// Package mcpserver adapts the operation dispatcher to the Model Context
// Protocol's stdio transport: line-delimited JSON-RPC with initialize,
// tools/list and tools/call handled by mcp-go.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tomyedwab/sqlite-tools/dispatch"
)

const ServerName = "sqlite-tools"

// New builds an MCP server with one tool registered per dispatcher
// operation. Tool schemas come from the dispatch registry so the stdio and
// HTTP surfaces always advertise the same argument shapes.
func New(dispatcher *dispatch.Dispatcher, version string) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
	)

	for _, desc := range dispatch.Registry() {
		opts := []mcp.ToolOption{mcp.WithDescription(desc.Description)}
		for _, arg := range desc.Args {
			argOpts := []mcp.PropertyOption{mcp.Description(arg.Description)}
			if arg.Required {
				argOpts = append(argOpts, mcp.Required())
			}
			switch arg.Type {
			case "object":
				opts = append(opts, mcp.WithObject(arg.Name, argOpts...))
			default:
				opts = append(opts, mcp.WithString(arg.Name, argOpts...))
			}
		}

		name := string(desc.Op)
		s.AddTool(mcp.NewTool(name, opts...), toolHandler(dispatcher, name))
	}

	return s
}

// toolHandler translates a tools/call request into a dispatch and the
// resulting envelope back into an MCP tool result. Dispatch failures are
// tool-level errors, never protocol errors.
func toolHandler(dispatcher *dispatch.Dispatcher, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		env := dispatcher.Dispatch(ctx, name, request.GetArguments())
		return toToolResult(env), nil
	}
}

func toToolResult(env dispatch.Envelope) *mcp.CallToolResult {
	text := ""
	if len(env.Content) > 0 {
		text = env.Content[0].Text
	}
	if env.IsError {
		return mcp.NewToolResultError(text)
	}
	return mcp.NewToolResultText(text)
}

// ServeStdio runs the line-delimited JSON-RPC loop on stdin/stdout until
// the stream closes or the context is cancelled.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
