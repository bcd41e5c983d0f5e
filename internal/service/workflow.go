package service

import (
	"context"

	"distributor-service/internal/models"

	"github.com/google/uuid"
)

type PlaceOrderInput struct {
	ProductName  string
	Quantity     int32
	AdvanceCents int64
}

type ConfirmOrderInput struct {
	OrderID        uuid.UUID
	CollectedCents int64
}

type DeliverOrderInput struct {
	OrderID        uuid.UUID
	CollectedCents int64
}

type PayManufacturerInput struct {
	OrderID   uuid.UUID
	PaidCents int64
}

// OrderView — проекция заказа для списков и экспорта: сам заказ плюс
// явно дочитанные username владельца и история платежей. Никакой
// автоподгрузки связей — каждое межсущностное чтение отдельный вызов.
type OrderView struct {
	Order     models.Order
	Username  string
	Payments  []models.Payment
	FullyPaid bool
}

type WorkflowService interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error)
	ConfirmOrder(ctx context.Context, in ConfirmOrderInput) (*models.Order, error)
	Dispatch(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	RequestStock(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	DeliverOrder(ctx context.Context, in DeliverOrderInput) (*models.Order, error)
	RequestPayment(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	PayManufacturer(ctx context.Context, in PayManufacturerInput) (*models.Order, error)
	ShipStock(ctx context.Context, orderID uuid.UUID) (*models.Order, error)

	ListMyOrders(ctx context.Context) ([]OrderView, error)
	ListOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]OrderView, error)
	OrderPayments(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error)
	GetOrderView(ctx context.Context, orderID uuid.UUID) (*OrderView, error)
}
