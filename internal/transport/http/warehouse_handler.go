package http

import (
	"net/http"

	"distributor-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WarehouseHandler struct {
	d   *service.Dispatcher
	log *zap.Logger
}

func NewWarehouseHandler(d *service.Dispatcher, log *zap.Logger) *WarehouseHandler {
	return &WarehouseHandler{d: d, log: log}
}

func (h *WarehouseHandler) ConfirmedOrders(c *gin.Context) {
	views, err := h.d.ListConfirmedOrders(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponses(views))
}

func (h *WarehouseHandler) StockRequests(c *gin.Context) {
	views, err := h.d.ListStockRequests(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponses(views))
}

func (h *WarehouseHandler) PaymentRequests(c *gin.Context) {
	views, err := h.d.ListPaymentRequests(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponses(views))
}

func (h *WarehouseHandler) PaidOrders(c *gin.Context) {
	views, err := h.d.ListPaidOrders(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponses(views))
}

// ProcessOrder — одна точка для двух складских команд по confirmed-заказу.
func (h *WarehouseHandler) ProcessOrder(c *gin.Context) {
	var req ProcessOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body", err.Error()))
		return
	}
	id, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid order id", err.Error()))
		return
	}

	switch req.Action {
	case "dispatch":
		ord, err := h.d.Dispatch(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, toOrderResponse(ord))
	case "request_stock":
		ord, err := h.d.RequestStock(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, toOrderResponse(ord))
	default:
		c.JSON(http.StatusBadRequest, NewValidationError("unknown action", "action must be dispatch or request_stock"))
	}
}

func (h *WarehouseHandler) PayManufacturer(c *gin.Context) {
	var req PayManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body", err.Error()))
		return
	}
	id, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid order id", err.Error()))
		return
	}

	ord, err := h.d.PayManufacturer(c.Request.Context(), service.PayManufacturerInput{
		OrderID:   id,
		PaidCents: req.PaidCents,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(ord))
}
