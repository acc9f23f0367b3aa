package handler

import (
	"net/http"

	"pos-service/internal/service"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SettingsHandler exposes the tax rate setting over HTTP
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler with the given service
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// TaxRateRequest defines the structure for tax rate updates
type TaxRateRequest struct {
	TaxRate float64 `json:"tax_rate"`
}

// GetTaxRate handles retrieving the saved tax rate percentage
func (h *SettingsHandler) GetTaxRate(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"tax_rate": h.settings.TaxRate()})
}

// SetTaxRate handles saving a new tax rate percentage
func (h *SettingsHandler) SetTaxRate(c echo.Context) error {
	log := logger.FromContext(c)

	var req TaxRateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.TaxRate < 0 || req.TaxRate > 100 {
		log.Warn("Rejected tax rate outside 0-100", zap.Float64("tax_rate", req.TaxRate))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Tax rate must be between 0 and 100"})
	}

	if err := h.settings.SetTaxRate(req.TaxRate); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save tax rate"})
	}

	log.Info("Tax rate updated", zap.Float64("tax_rate", req.TaxRate))
	return c.JSON(http.StatusOK, echo.Map{"tax_rate": req.TaxRate})
}
