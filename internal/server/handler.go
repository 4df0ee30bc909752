package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/solidcat/solidcat/internal/logger"
	"github.com/solidcat/solidcat/internal/tools"
	"github.com/solidcat/solidcat/pkg/protocol"
	"github.com/solidcat/solidcat/pkg/version"
)

var log = logger.ForComponent("server")

const protocolVersion = "2024-11-05"

type Handler struct {
	registry *tools.Registry
}

func NewHandler(registry *tools.Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	switch req.Method {
	case "initialize":
		h.reply(ctx, conn, req, protocol.InitializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities:    map[string]any{"tools": map[string]any{}},
			ServerInfo: protocol.ServerInfo{
				Name:    version.Name,
				Version: version.Version,
			},
		}, nil)

	case "ping":
		h.reply(ctx, conn, req, map[string]any{}, nil)

	case "tools/list":
		h.reply(ctx, conn, req, h.listTools(), nil)

	case "tools/call":
		result, err := h.callTool(ctx, req)
		h.reply(ctx, conn, req, result, err)

	case "notifications/initialized":
		// Notification, nothing to reply.

	default:
		if req.Notif {
			return
		}
		h.replyError(ctx, conn, req, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not found: %s", req.Method),
		})
	}
}

func (h *Handler) listTools() protocol.ListToolsResult {
	registered := h.registry.List()

	result := protocol.ListToolsResult{Tools: make([]protocol.Tool, 0, len(registered))}
	for _, tool := range registered {
		result.Tools = append(result.Tools, protocol.Tool{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: tool.Schema(),
		})
	}
	return result
}

func (h *Handler) callTool(ctx context.Context, req *jsonrpc2.Request) (any, error) {
	var params protocol.CallToolParams
	if req.Params != nil {
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
		}
	}
	if params.Name == "" {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "tool name is required"}
	}

	log.Debug("tool call", "tool", params.Name)

	result, err := h.registry.Execute(ctx, params.Name, params.Arguments)
	if err != nil {
		var toolErr *tools.ToolError
		if errors.As(err, &toolErr) {
			return nil, &jsonrpc2.Error{Code: int64(toolErr.Code), Message: toolErr.Message}
		}
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
	}

	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
	}

	return protocol.CallToolResult{
		Content: []protocol.ContentBlock{{Type: "text", Text: string(text)}},
	}, nil
}

func (h *Handler) reply(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request, result any, err error) {
	if req.Notif {
		return
	}

	if err != nil {
		var rpcErr *jsonrpc2.Error
		if !errors.As(err, &rpcErr) {
			rpcErr = &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
		}
		h.replyError(ctx, conn, req, rpcErr)
		return
	}

	if replyErr := conn.Reply(ctx, req.ID, result); replyErr != nil {
		log.Error("failed to send reply", "method", req.Method, "error", replyErr)
	}
}

func (h *Handler) replyError(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request, rpcErr *jsonrpc2.Error) {
	if err := conn.ReplyWithError(ctx, req.ID, rpcErr); err != nil {
		log.Error("failed to send error reply", "method", req.Method, "error", err)
	}
}
