package http

import (
	"errors"
	"net/http"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/digest/service"
	"dfo-news-digest/pkg/logger"

	"github.com/labstack/echo/v4"
)

// respondError maps service errors onto status codes. Unknown errors are logged and hidden behind a 500.
func respondError(c echo.Context, log *logger.Logger, err error) error {
	switch {
	case service.IsValidation(err):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrDigestNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrRunNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrDigestEmpty),
		errors.Is(err, service.ErrRunInProgress):
		return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	}

	log.Error("Request failed", logger.ErrorField(err), logger.StringField("path", c.Path()))
	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
}
