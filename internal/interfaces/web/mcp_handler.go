package web

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"sportsNewsMCP/internal/application"
	"sportsNewsMCP/internal/infrastructure/metrics"
)

const (
	protocolVersion = "2025-03-26"
	toolName        = "get_sports_news"

	codeMethodNotFound = -32601
	codeInternalError  = -32603
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      json.RawMessage `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type toolArguments struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Page     int    `json:"page"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolCallResult struct {
	Content []textContent `json:"content"`
}

// MCPHandler serves the tool-calling protocol on a single POST endpoint.
// Every request is classified and answered independently.
type MCPHandler struct {
	classifier *application.Classifier
	news       *application.NewsService
	formatter  *application.Formatter
	metrics    *metrics.Recorder
	logger     *slog.Logger
}

func NewMCPHandler(
	classifier *application.Classifier,
	news *application.NewsService,
	formatter *application.Formatter,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) *MCPHandler {
	return &MCPHandler{
		classifier: classifier,
		news:       news,
		formatter:  formatter,
		metrics:    recorder,
		logger:     logger,
	}
}

func (h *MCPHandler) Handle(c echo.Context) (err error) {
	ctx := c.Request().Context()

	var req rpcRequest
	defer func() {
		if r := recover(); r != nil {
			h.logger.ErrorContext(ctx, "tool request panicked", "method", req.Method, "panic", fmt.Sprint(r))
			h.record(req.Method, "internal_error")
			err = c.JSON(http.StatusInternalServerError, newRPCError(req.ID, codeInternalError, "Internal error"))
		}
	}()

	body, readErr := io.ReadAll(c.Request().Body)
	if readErr != nil {
		h.logger.WarnContext(ctx, "failed to read tool request", "error", readErr)
		return h.methodNotFound(c, nil, "")
	}
	if jsonErr := json.Unmarshal(body, &req); jsonErr != nil {
		h.logger.WarnContext(ctx, "malformed tool request", "error", jsonErr)
		req = rpcRequest{ID: envelopeID(body)}
		return h.methodNotFound(c, req.ID, "")
	}

	h.logger.DebugContext(ctx, "tool request received", "method", req.Method, "id", string(req.ID))

	switch {
	case req.Method == "initialize":
		return h.success(c, req, map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    ServerName,
				"version": ServerVersion,
			},
		})
	case req.Method == "ping":
		return h.success(c, req, map[string]any{})
	case req.Method == "tools/list":
		return h.success(c, req, map[string]any{
			"tools": []map[string]any{h.toolDescriptor()},
		})
	case req.Method == "tools/call":
		return h.handleToolCall(c, req)
	case strings.HasPrefix(req.Method, "notifications/") && len(req.ID) == 0:
		h.record(req.Method, "ok")
		return c.NoContent(http.StatusAccepted)
	default:
		return h.methodNotFound(c, req.ID, req.Method)
	}
}

func (h *MCPHandler) handleToolCall(c echo.Context, req rpcRequest) error {
	ctx := c.Request().Context()

	var params toolCallParams
	if len(req.Params) == 0 || json.Unmarshal(req.Params, &params) != nil {
		h.logger.WarnContext(ctx, "tools/call without valid params")
		return h.methodNotFound(c, req.ID, req.Method)
	}
	if params.Name != toolName {
		h.logger.WarnContext(ctx, "unknown tool", "name", params.Name)
		return h.methodNotFound(c, req.ID, req.Method)
	}

	var args toolArguments
	if len(params.Arguments) > 0 && string(params.Arguments) != "null" {
		if err := json.Unmarshal(params.Arguments, &args); err != nil {
			h.logger.WarnContext(ctx, "invalid tool arguments", "error", err)
			return h.methodNotFound(c, req.ID, req.Method)
		}
	}

	info := h.classifier.Classify(args.Query)
	if args.Category != "" {
		explicit, err := h.classifier.Lookup(args.Category)
		if err != nil {
			h.logger.WarnContext(ctx, "unknown category argument", "error", err)
			return h.methodNotFound(c, req.ID, req.Method)
		}
		info = explicit
	}

	h.logger.InfoContext(ctx, "tool call", "tool", params.Name, "query", args.Query, "category", info.ID)

	batch := h.news.GetNews(ctx, info, args.Page)
	return h.success(c, req, toolCallResult{
		Content: []textContent{
			{Type: "text", Text: h.formatter.Narrative(batch)},
		},
	})
}

func (h *MCPHandler) toolDescriptor() map[string]any {
	categories := h.classifier.Categories()
	ids := make([]string, 0, len(categories))
	labels := make([]string, 0, len(categories))
	for _, info := range categories {
		ids = append(ids, string(info.ID))
		labels = append(labels, fmt.Sprintf("%s: %s", info.ID, info.DisplayName))
	}

	return map[string]any{
		"name":        toolName,
		"description": "Daum 스포츠에서 축구/골프 뉴스를 가져옵니다",
		"inputSchema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "뉴스 카테고리 (축구, 골프)",
				},
				"category": map[string]any{
					"type":        "string",
					"enum":        ids,
					"description": "스포츠 카테고리 (" + strings.Join(labels, ", ") + "). 지정하면 query보다 우선합니다",
				},
				"page": map[string]any{
					"type":        "integer",
					"minimum":     0,
					"description": "페이지 번호 (기본값 0)",
				},
			},
		},
	}
}

func (h *MCPHandler) success(c echo.Context, req rpcRequest, result any) error {
	h.record(req.Method, "ok")
	return c.JSON(http.StatusOK, rpcResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	})
}

func (h *MCPHandler) methodNotFound(c echo.Context, id json.RawMessage, method string) error {
	h.record(method, "method_not_found")
	return c.JSON(http.StatusBadRequest, newRPCError(id, codeMethodNotFound, "Method not found"))
}

func (h *MCPHandler) record(method, outcome string) {
	if h.metrics == nil {
		return
	}
	switch {
	case method == "initialize", method == "ping", method == "tools/list", method == "tools/call":
	case strings.HasPrefix(method, "notifications/"):
		method = "notifications"
	default:
		// keep label cardinality bounded
		method = "other"
	}
	h.metrics.RPCRequest(method, outcome)
}

// envelopeID recovers the request id from a body whose other fields did
// not decode. It returns nil when the body is not a JSON object.
func envelopeID(body []byte) json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil
	}
	return fields["id"]
}

func newRPCError(id json.RawMessage, code int, message string) rpcResponse {
	return rpcResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	}
}
