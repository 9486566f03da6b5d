package http

import (
	"net/http"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/digest/service"
	"dfo-news-digest/internal/entity"
	"dfo-news-digest/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultListLimit = 30

// DigestHandler handles HTTP requests for daily digests.
type DigestHandler struct {
	digestService service.DigestService
	scriptService service.ScriptService
	logger        *logger.Logger
}

// NewDigestHandler creates a new DigestHandler.
func NewDigestHandler(digestService service.DigestService, scriptService service.ScriptService, logger *logger.Logger) *DigestHandler {
	return &DigestHandler{digestService: digestService, scriptService: scriptService, logger: logger}
}

// RegisterRoutes registers the digest routes to the Echo group.
func (h *DigestHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListDigests)
	g.GET("/:day", h.GetDigest)
	g.POST("/:day", h.BuildDigest)
	g.GET("/:day/diagnostics", h.GetDiagnostics)
	g.POST("/:day/script", h.GenerateScript)
	g.PUT("/:day/artifacts", h.AttachArtifacts)
}

// bindParams overlays digest params given in the query string on the configured defaults.
func (h *DigestHandler) bindParams(c echo.Context) (entity.DigestParams, error) {
	p := h.digestService.DefaultParams()
	err := echo.QueryParamsBinder(c).
		Int("top_n", &p.TopN).
		Int("prefer_days", &p.PreferDays).
		Int("max_lookback_days", &p.MaxLookbackDays).
		Int("min_interest", &p.MinInterest).
		Int("min_business", &p.MinBusiness).
		Int("min_dfo", &p.MinDFO).
		Bool("exclude_war", &p.ExcludeWar).
		Bool("only_dfo_business", &p.OnlyDFOBusiness).
		BindError()
	return p, err
}

// ListDigests godoc
// @Summary List digests
// @Description List digest metadata ordered by day, newest first
// @Tags digests
// @Produce  json
// @Param   limit   query   int false   "Page size (1-200)" default(30)
// @Param   offset  query   int false   "Offset" default(0)
// @Success 200 {object} dto.ListDigestsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /digests [get]
func (h *DigestHandler) ListDigests(c echo.Context) error {
	limit, offset := defaultListLimit, 0
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).Int("offset", &offset).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := h.digestService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetDigest godoc
// @Summary Get a digest
// @Description Get the digest of a day with its ranked items
// @Tags digests
// @Produce  json
// @Param   day path    string  true    "Day (YYYY-MM-DD)"
// @Success 200 {object} dto.DigestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /digests/{day} [get]
func (h *DigestHandler) GetDigest(c echo.Context) error {
	resp, err := h.digestService.GetByDay(c.Request().Context(), c.Param("day"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// BuildDigest godoc
// @Summary Create or refill a digest
// @Description Fill the day's digest up to top_n items. Items already used by any digest are never selected again.
// @Tags digests
// @Produce  json
// @Param   day                 path    string  true    "Day (YYYY-MM-DD)"
// @Param   refill              query   bool    false   "Top up a partially filled digest" default(true)
// @Param   force               query   bool    false   "Release current items and rebuild" default(false)
// @Param   top_n               query   int     false   "Digest size (1-50)"
// @Param   prefer_days         query   int     false   "Preferred window in days (1-31)"
// @Param   max_lookback_days   query   int     false   "Backfill bound in days (prefer_days-366)"
// @Param   min_interest        query   int     false   "Minimum interest score (0-10)"
// @Param   min_business        query   int     false   "Minimum business score (0-4)"
// @Param   min_dfo             query   int     false   "Minimum DFO score (0-4)"
// @Param   exclude_war         query   bool    false   "Exclude war-related items"
// @Param   only_dfo_business   query   bool    false   "Only items analysed as DFO business"
// @Success 200 {object} dto.BuildDigestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /digests/{day} [post]
func (h *DigestHandler) BuildDigest(c echo.Context) error {
	params, err := h.bindParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	refill, force := true, false
	if err := echo.QueryParamsBinder(c).Bool("refill", &refill).Bool("force", &force).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := h.digestService.CreateOrRefill(c.Request().Context(), c.Param("day"), params, refill, force)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetDiagnostics godoc
// @Summary Digest diagnostics
// @Description Count eligible candidates overall, in the preferred window and in the backfill window. Never writes.
// @Tags digests
// @Produce  json
// @Param   day                 path    string  true    "Day (YYYY-MM-DD)"
// @Param   top_n               query   int     false   "Digest size (1-50)"
// @Param   prefer_days         query   int     false   "Preferred window in days (1-31)"
// @Param   max_lookback_days   query   int     false   "Backfill bound in days"
// @Param   min_interest        query   int     false   "Minimum interest score (0-10)"
// @Param   min_business        query   int     false   "Minimum business score (0-4)"
// @Param   min_dfo             query   int     false   "Minimum DFO score (0-4)"
// @Param   exclude_war         query   bool    false   "Exclude war-related items"
// @Param   only_dfo_business   query   bool    false   "Only items analysed as DFO business"
// @Success 200 {object} dto.DiagnosticsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /digests/{day}/diagnostics [get]
func (h *DigestHandler) GetDiagnostics(c echo.Context) error {
	params, err := h.bindParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := h.digestService.ComputeDiagnostics(c.Request().Context(), c.Param("day"), params)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GenerateScript godoc
// @Summary Generate the digest script
// @Description Ask the configured AI provider for a spoken script of the digest. The stored script is reused unless force is set.
// @Tags digests
// @Produce  json
// @Param   day     path    string  true    "Day (YYYY-MM-DD)"
// @Param   force   query   bool    false   "Regenerate an existing script" default(false)
// @Success 200 {object} dto.DigestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /digests/{day}/script [post]
func (h *DigestHandler) GenerateScript(c echo.Context) error {
	force := false
	if err := echo.QueryParamsBinder(c).Bool("force", &force).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := h.scriptService.GenerateScript(c.Request().Context(), c.Param("day"), force)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// AttachArtifacts godoc
// @Summary Attach media artifacts
// @Description Record the audio and/or video reference rendered for the digest
// @Tags digests
// @Accept  json
// @Produce  json
// @Param   day         path    string                  true    "Day (YYYY-MM-DD)"
// @Param   artifacts   body    dto.ArtifactsRequest    true    "Artifact references"
// @Success 200 {object} dto.DigestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /digests/{day}/artifacts [put]
func (h *DigestHandler) AttachArtifacts(c echo.Context) error {
	var req dto.ArtifactsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	resp, err := h.digestService.AttachArtifacts(c.Request().Context(), c.Param("day"), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}
