package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sportsNewsMCP/internal/application"
	"sportsNewsMCP/internal/domain/entity"
)

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type smartRequest struct {
	Query string `json:"query"`
	Page  int    `json:"page"`
}

type categoryView struct {
	ID          entity.Category `json:"id"`
	DisplayName string          `json:"displayName"`
	Keywords    []string        `json:"keywords"`
}

type NewsHandler struct {
	classifier *application.Classifier
	news       *application.NewsService
	formatter  *application.Formatter
	logger     *slog.Logger
}

func NewNewsHandler(
	classifier *application.Classifier,
	news *application.NewsService,
	formatter *application.Formatter,
	logger *slog.Logger,
) *NewsHandler {
	return &NewsHandler{
		classifier: classifier,
		news:       news,
		formatter:  formatter,
		logger:     logger,
	}
}

func HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Message: "MCP Soccer News Server is running",
	})
}

func (h *NewsHandler) HandleSoccer(c echo.Context) error {
	return h.handleFixed(c, entity.CategoryWorldSoccer, "Failed to fetch soccer news")
}

func (h *NewsHandler) HandleGolf(c echo.Context) error {
	return h.handleFixed(c, entity.CategoryGolf, "Failed to fetch golf news")
}

func (h *NewsHandler) handleFixed(c echo.Context, category entity.Category, failure string) error {
	ctx := c.Request().Context()

	page, ok := parsePage(c.QueryParam("page"))
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Success: false, Error: "page must be a non-negative integer"})
	}

	info, err := h.classifier.Lookup(string(category))
	if err != nil {
		h.logger.ErrorContext(ctx, "category missing from table", "category", category, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Success: false, Error: failure})
	}

	batch := h.news.GetNews(ctx, info, page)
	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Data:    h.formatter.Structured(info.DisplayName, batch),
	})
}

func (h *NewsHandler) HandleSmart(c echo.Context) error {
	ctx := c.Request().Context()

	var req smartRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		h.logger.DebugContext(ctx, "invalid smart request body", "error", err)
		return c.JSON(http.StatusBadRequest, errorResponse{Success: false, Error: "Query is required"})
	}
	if req.Query == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Success: false, Error: "Query is required"})
	}
	if req.Page < 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Success: false, Error: "page must be a non-negative integer"})
	}

	info := h.classifier.Classify(req.Query)
	h.logger.InfoContext(ctx, "classified query", "query", req.Query, "category", info.ID)

	batch := h.news.GetNews(ctx, info, req.Page)
	payload := h.formatter.Structured(string(info.ID), batch)
	payload.Query = req.Query

	return c.JSON(http.StatusOK, successResponse{Success: true, Data: payload})
}

func (h *NewsHandler) HandleCategories(c echo.Context) error {
	categories := h.classifier.Categories()
	views := make([]categoryView, 0, len(categories))
	for _, info := range categories {
		views = append(views, categoryView{
			ID:          info.ID,
			DisplayName: info.DisplayName,
			Keywords:    info.Keywords,
		})
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: views})
}

func parsePage(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0, false
	}
	return page, true
}
