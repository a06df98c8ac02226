package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gompdf/labelsheet/pkg/api"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DownloadName is the attachment name of every generated sheet
const DownloadName = "generated_barcodes.pdf"

// Handler serves label sheet requests
type Handler struct {
	generator *api.Generator
	defaults  Defaults
	version   string
	logger    *zap.Logger
}

// NewHandler creates a handler
func NewHandler(generator *api.Generator, defaults Defaults, version string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		generator: generator,
		defaults:  defaults,
		version:   version,
		logger:    logger,
	}
}

// HandleGenerate renders a sheet and returns it as a PDF download
func (h *Handler) HandleGenerate(c echo.Context) error {
	req, err := ParseGenerateRequest(c.Request().Body, h.defaults)
	if err != nil {
		var fe *fieldError
		if errors.As(err, &fe) {
			return NewValidationError(fe.Field, fe.Err)
		}
		return NewBadRequestError("invalid request body", err)
	}

	data, summary, err := h.generator.GenerateBytes(req.Location, req.Count)
	if err != nil {
		if errors.Is(err, api.ErrInvalidRequest) {
			return NewValidationError("count", err)
		}
		h.logger.Error("sheet generation failed",
			zap.String("location", req.Location),
			zap.Int("count", req.Count),
			zap.Error(err))
		return NewInternalError(err.Error(), nil)
	}

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, `attachment; filename="`+DownloadName+`"`)
	header.Set("X-Labels-Placed", strconv.Itoa(len(summary.Placements)))
	header.Set("X-Labels-Skipped", strconv.Itoa(len(summary.Skipped)))
	header.Set("X-Pages", strconv.Itoa(summary.Pages))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// HandleHealth returns server health status
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
	})
}
