package service

import (
	"context"
	"time"

	"distributor-service/internal/models"

	"github.com/google/uuid"
)

type OrderPlacedEvent struct {
	OrderID          uuid.UUID `json:"order_id"`
	UserID           uuid.UUID `json:"user_id"`
	ProductName      string    `json:"product_name"`
	Quantity         int32     `json:"quantity"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	AdvanceCents     int64     `json:"advance_cents"`
	CreatedAt        time.Time `json:"created_at"`
}

type OrderStatusChangedEvent struct {
	OrderID     uuid.UUID          `json:"order_id"`
	UserID      uuid.UUID          `json:"user_id"`
	ProductName string             `json:"product_name"`
	Quantity    int32              `json:"quantity"`
	From        models.OrderStatus `json:"from"`
	To          models.OrderStatus `json:"to"`
	ChangedAt   time.Time          `json:"changed_at"`
}

// EventBus опционален: nil отключает публикацию, ошибки публикации не
// откатывают уже применённый переход.
type EventBus interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
}
