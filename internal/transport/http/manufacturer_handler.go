package http

import (
	"net/http"

	"distributor-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ManufacturerHandler struct {
	d   *service.Dispatcher
	log *zap.Logger
}

func NewManufacturerHandler(d *service.Dispatcher, log *zap.Logger) *ManufacturerHandler {
	return &ManufacturerHandler{d: d, log: log}
}

func (h *ManufacturerHandler) StockRequests(c *gin.Context) {
	views, err := h.d.ListStockRequests(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponses(views))
}

func (h *ManufacturerHandler) PaymentRequests(c *gin.Context) {
	views, err := h.d.ListPaymentRequests(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponses(views))
}

func (h *ManufacturerHandler) PaidOrders(c *gin.Context) {
	views, err := h.d.ListPaidOrders(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponses(views))
}

func (h *ManufacturerHandler) RequestPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid order id", err.Error()))
		return
	}

	ord, err := h.d.RequestPayment(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(ord))
}

func (h *ManufacturerHandler) ShipStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid order id", err.Error()))
		return
	}

	ord, err := h.d.ShipStock(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(ord))
}
