package handler

import (
	"fmt"
	"net/http"
	"time"

	"pos-service/internal/service"
	"pos-service/pkg/logger"
	"pos-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HistoryHandler exposes the payment history over HTTP
type HistoryHandler struct {
	history *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler with the given service
func NewHistoryHandler(history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// EventNameRequest defines the structure for event name updates
type EventNameRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// ListPayments handles retrieving the full history, newest first
func (h *HistoryHandler) ListPayments(c echo.Context) error {
	return c.JSON(http.StatusOK, h.history.List())
}

// ListByDate handles retrieving the history grouped into date buckets
func (h *HistoryHandler) ListByDate(c echo.Context) error {
	return c.JSON(http.StatusOK, h.history.ByDate())
}

// SetEventName handles assigning an event name to every payment on a date
func (h *HistoryHandler) SetEventName(c echo.Context) error {
	log := logger.FromContext(c)

	var req EventNameRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Date is required"})
	}

	history, err := h.history.SetEventName(req.Date, req.Name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save payment history"})
	}

	log.Info("Event name updated", zap.String("date", req.Date), zap.String("name", req.Name))
	prometheus.RecordHistoryOperation("set_event_name")
	return c.JSON(http.StatusOK, history)
}

// DeletePayment handles removing a single payment from the history
func (h *HistoryHandler) DeletePayment(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	found, err := h.history.Delete(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save payment history"})
	}
	if !found {
		log.Warn("Payment not found for deletion", zap.String("payment_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
	}

	log.Info("Payment deleted", zap.String("payment_id", id))
	prometheus.RecordHistoryOperation("delete_payment")
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment deleted successfully"})
}

// ExportCSV handles downloading the full history as a CSV attachment
func (h *HistoryHandler) ExportCSV(c echo.Context) error {
	log := logger.FromContext(c)

	csv := h.history.ExportCSV()
	filename := fmt.Sprintf("payment-history-%s.csv", time.Now().Format("2006-01-02"))

	log.Info("History exported", zap.String("filename", filename))
	prometheus.RecordHistoryOperation("export_csv")

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
