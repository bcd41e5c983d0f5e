package http

import (
	"fmt"
	"net/http"

	"distributor-service/internal/report"
	"distributor-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderHandler — команды и чтения shopkeeper'а.
type OrderHandler struct {
	d   *service.Dispatcher
	log *zap.Logger
}

func NewOrderHandler(d *service.Dispatcher, log *zap.Logger) *OrderHandler {
	return &OrderHandler{d: d, log: log}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid request body", err.Error()))
		return
	}

	ord, err := h.d.PlaceOrder(c.Request.Context(), service.PlaceOrderInput{
		ProductName:  req.ProductName,
		Quantity:     req.Quantity,
		AdvanceCents: req.AdvanceCents,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(ord))
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	views, err := h.d.ListMyOrders(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponses(views))
}

func (h *OrderHandler) Payments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid order id", err.Error()))
		return
	}

	pays, err := h.d.OrderPayments(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	out := make([]PaymentResponse, 0, len(pays))
	for i := range pays {
		out = append(out, toPaymentResponse(&pays[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid order id", err.Error()))
		return
	}

	view, err := h.d.ExportOrder(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%s.xlsx", view.Order.ID))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := report.WriteOrderExport(c.Writer, view); err != nil {
		h.log.Error("failed to write order export", zap.Error(err))
	}
}
