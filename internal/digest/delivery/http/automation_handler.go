package http

import (
	"net/http"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/digest/service"
	"dfo-news-digest/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultRunLogLimit = 200

// AutomationHandler handles HTTP requests for the daily automation pipeline.
type AutomationHandler struct {
	automationService service.AutomationService
	logger            *logger.Logger
}

// NewAutomationHandler creates a new AutomationHandler.
func NewAutomationHandler(automationService service.AutomationService, logger *logger.Logger) *AutomationHandler {
	return &AutomationHandler{automationService: automationService, logger: logger}
}

// RegisterRoutes registers the automation routes to the Echo group.
func (h *AutomationHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/run", h.Run)
	g.GET("/state", h.GetState)
	g.GET("/runs", h.ListRuns)
	g.GET("/runs/:id", h.GetRun)
}

// Run godoc
// @Summary Start an automation run
// @Description Queue the digest, script, publish and notify steps for a day. Only one run may be active at a time.
// @Tags automation
// @Produce  json
// @Param   day             query   string  false   "Day (YYYY-MM-DD), today in the reference timezone by default"
// @Param   force_digest    query   bool    false   "Rebuild the digest from scratch"
// @Param   force_script    query   bool    false   "Regenerate the script"
// @Param   skip_notify     query   bool    false   "Do not post to Telegram"
// @Success 202 {object} dto.AutomationRunResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /automation/run [post]
func (h *AutomationHandler) Run(c echo.Context) error {
	req := dto.AutomationRunRequest{TriggeredBy: "api"}
	err := echo.QueryParamsBinder(c).
		String("day", &req.Day).
		Bool("force_digest", &req.ForceDigest).
		Bool("force_script", &req.ForceScript).
		Bool("skip_notify", &req.SkipNotify).
		BindError()
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := h.automationService.Enqueue(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusAccepted, resp)
}

// GetState godoc
// @Summary Automation state
// @Description Get the running run and the last successful and failed runs
// @Tags automation
// @Produce  json
// @Success 200 {object} dto.AutomationStateResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /automation/state [get]
func (h *AutomationHandler) GetState(c echo.Context) error {
	resp, err := h.automationService.State(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListRuns godoc
// @Summary List automation runs
// @Description List run ids, newest first
// @Tags automation
// @Produce  json
// @Param   limit   query   int false   "Page size (1-200)" default(30)
// @Param   offset  query   int false   "Offset" default(0)
// @Success 200 {object} dto.AutomationRunsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /automation/runs [get]
func (h *AutomationHandler) ListRuns(c echo.Context) error {
	limit, offset := defaultListLimit, 0
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).Int("offset", &offset).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := h.automationService.ListRuns(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetRun godoc
// @Summary Get an automation run
// @Description Get a run with its step states and the tail of its log
// @Tags automation
// @Produce  json
// @Param   id          path    string  true    "Run ID"
// @Param   log_limit   query   int     false   "Log lines (0-800)" default(200)
// @Success 200 {object} dto.AutomationRunDetail
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /automation/runs/{id} [get]
func (h *AutomationHandler) GetRun(c echo.Context) error {
	logLimit := defaultRunLogLimit
	if err := echo.QueryParamsBinder(c).Int("log_limit", &logLimit).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := h.automationService.GetRun(c.Request().Context(), c.Param("id"), logLimit)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}
