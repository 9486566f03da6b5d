package http

import (
	"net/http"
	"strconv"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/digest/service"
	"dfo-news-digest/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ItemHandler handles HTTP requests from the collector and the LLM worker.
type ItemHandler struct {
	itemService service.ItemService
	logger      *logger.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService service.ItemService, logger *logger.Logger) *ItemHandler {
	return &ItemHandler{itemService: itemService, logger: logger}
}

// RegisterRoutes registers the item routes to the Echo group.
func (h *ItemHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListItems)
	g.POST("", h.CreateItem)
	g.POST("/:id/analyses", h.AddAnalysis)
}

// ListItems godoc
// @Summary List recent items
// @Description List items from the last window_hours by publication time, newest first
// @Tags items
// @Produce  json
// @Param   window_hours     query   int     false   "Window in hours (1..168)" default(24)
// @Param   min_business     query   int     false   "Minimum business score" default(2)
// @Param   min_dfo          query   int     false   "Minimum DFO relevance" default(2)
// @Param   require_company  query   bool    false   "Only items naming a company"
// @Param   exclude_war      query   bool    false   "Drop war-related items"
// @Param   limit            query   int     false   "Maximum number of items (1..200)" default(50)
// @Success 200 {object} dto.ListItemsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /items [get]
func (h *ItemHandler) ListItems(c echo.Context) error {
	req := dto.DefaultListItemsRequest()
	err := echo.QueryParamsBinder(c).
		Int("window_hours", &req.WindowHours).
		Int("min_business", &req.MinBusiness).
		Int("min_dfo", &req.MinDFO).
		Bool("require_company", &req.RequireCompany).
		Bool("exclude_war", &req.ExcludeWar).
		Int("limit", &req.Limit).
		BindError()
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := h.itemService.ListRecent(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateItem godoc
// @Summary Ingest an item
// @Description Store a scored article. Duplicates by canonical URL or fingerprint are ignored.
// @Tags items
// @Accept  json
// @Produce  json
// @Param   item    body    dto.CreateItemRequest   true    "Item to store"
// @Success 201 {object} dto.CreateItemResponse
// @Success 200 {object} dto.CreateItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /items [post]
func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req dto.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	resp, err := h.itemService.CreateItem(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if !resp.Created {
		return c.JSON(http.StatusOK, resp)
	}
	return c.JSON(http.StatusCreated, resp)
}

// AddAnalysis godoc
// @Summary Add an item analysis
// @Description Append a new analysis of an item. The latest analysis is the one used for selection.
// @Tags items
// @Accept  json
// @Produce  json
// @Param   id          path    int                         true    "Item ID"
// @Param   analysis    body    dto.CreateAnalysisRequest   true    "Analysis to store"
// @Success 201 {object} dto.CreateAnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /items/{id}/analyses [post]
func (h *ItemHandler) AddAnalysis(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid item ID"})
	}

	var req dto.CreateAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	resp, err := h.itemService.AddAnalysis(c.Request().Context(), uint(id), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, resp)
}
