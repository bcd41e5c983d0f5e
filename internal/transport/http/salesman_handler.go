package http

import (
	"net/http"

	"distributor-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SalesmanHandler struct {
	d   *service.Dispatcher
	log *zap.Logger
}

func NewSalesmanHandler(d *service.Dispatcher, log *zap.Logger) *SalesmanHandler {
	return &SalesmanHandler{d: d, log: log}
}

func (h *SalesmanHandler) PendingOrders(c *gin.Context) {
	views, err := h.d.ListPlacedOrders(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponses(views))
}

func (h *SalesmanHandler) DispatchedOrders(c *gin.Context) {
	views, err := h.d.ListDispatchedOrders(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponses(views))
}

func (h *SalesmanHandler) ConfirmOrder(c *gin.Context) {
	var req ConfirmOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body", err.Error()))
		return
	}
	id, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid order id", err.Error()))
		return
	}

	ord, err := h.d.ConfirmOrder(c.Request.Context(), service.ConfirmOrderInput{
		OrderID:        id,
		CollectedCents: req.CollectedCents,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(ord))
}

func (h *SalesmanHandler) DeliverOrder(c *gin.Context) {
	var req DeliverOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body", err.Error()))
		return
	}
	id, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid order id", err.Error()))
		return
	}

	ord, err := h.d.DeliverOrder(c.Request.Context(), service.DeliverOrderInput{
		OrderID:        id,
		CollectedCents: req.CollectedCents,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(ord))
}
