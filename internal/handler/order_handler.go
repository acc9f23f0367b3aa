package handler

import (
	"errors"
	"net/http"
	"strconv"

	"pos-service/internal/service"
	"pos-service/pkg/logger"
	"pos-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OrderHandler exposes the cart summary and payment recording over HTTP
type OrderHandler struct {
	payments *service.PaymentService
}

// NewOrderHandler creates a new OrderHandler with the given service
func NewOrderHandler(payments *service.PaymentService) *OrderHandler {
	return &OrderHandler{payments: payments}
}

// RecordPaymentRequest defines the structure for payment recording requests
type RecordPaymentRequest struct {
	IncludeTax bool `json:"include_tax"`
}

// OrderReview is the derived order state shown before recording
type OrderReview struct {
	Summary interface{} `json:"summary"`
	Lines   interface{} `json:"lines"`
}

// GetSummary handles deriving the current order totals and review lines
func (h *OrderHandler) GetSummary(c echo.Context) error {
	includeTax := false
	if v := c.QueryParam("include_tax"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err == nil {
			includeTax = parsed
		} else {
			logger.FromContext(c).Warn("Invalid include_tax parameter", zap.String("value", v))
		}
	}

	summary, lines := h.payments.Summary(includeTax)
	prometheus.UpdateOrderValue(summary.Subtotal)
	return c.JSON(http.StatusOK, OrderReview{Summary: summary, Lines: lines})
}

// RecordPayment handles snapshotting the cart into a new payment
func (h *OrderHandler) RecordPayment(c echo.Context) error {
	log := logger.FromContext(c)

	var req RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	payment, err := h.payments.RecordPayment(req.IncludeTax)
	if errors.Is(err, service.ErrEmptyOrder) {
		log.Warn("Rejected payment with zero order value")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Nothing to record"})
	}
	if err != nil {
		log.Error("Failed to record payment", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to record payment"})
	}

	log.Info("Payment recorded",
		zap.String("payment_id", payment.ID),
		zap.Float64("total", payment.Total))
	prometheus.RecordPayment(payment.Total)
	prometheus.UpdateOrderValue(0)
	return c.JSON(http.StatusCreated, payment)
}
