package models

import (
	"time"

	"github.com/google/uuid"
)

// Роли участников цепочки поставок — закрытый набор.
type Role string

const (
	RoleShopkeeper       Role = "shopkeeper"
	RoleSalesman         Role = "salesman"
	RoleWarehouseManager Role = "warehouse_manager"
	RoleManufacturer     Role = "manufacturer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleShopkeeper, RoleSalesman, RoleWarehouseManager, RoleManufacturer:
		return true
	}
	return false
}

// Статус заказа — строковый тип, значения совпадают с wire-форматом.
type OrderStatus string

const (
	OrderStatusPlaced             OrderStatus = "placed"
	OrderStatusConfirmed          OrderStatus = "confirmed"
	OrderStatusDispatched         OrderStatus = "dispatched"
	OrderStatusDelivered          OrderStatus = "delivered"
	OrderStatusStockRequested     OrderStatus = "stock_requested"
	OrderStatusPaymentRequested   OrderStatus = "payment_requested"
	OrderStatusPaidToManufacturer OrderStatus = "paid_to_manufacturer"
)

type PaymentType string

const (
	PaymentTypeAdvance     PaymentType = "advance"
	PaymentTypeRemaining   PaymentType = "remaining"
	PaymentTypeStockSupply PaymentType = "stock_supply"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username string    `gorm:"type:text;not null;uniqueIndex"`
	Email    string    `gorm:"type:text;not null;uniqueIndex"`
	Password string    `gorm:"not null"` // bcrypt hash
	Role     Role      `gorm:"type:text;not null;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (User) TableName() string { return "users" }

// Order — одна заявка на закупку. Денежные суммы храним в копейках (int64),
// никакой плавающей точки в денежных путях.
type Order struct {
	ID               uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID   `gorm:"type:uuid;not null;index"`
	ProductName      string      `gorm:"type:text;not null;index"`
	Quantity         int32       `gorm:"type:int;not null"` // CHECK (> 0) в миграции
	TotalAmountCents int64       `gorm:"not null"`          // вычисляется сервером при создании, далее неизменен
	AdvanceCents     int64       `gorm:"not null;default:0"`
	RemainingCents   int64       `gorm:"not null"` // убывает только через записанные платежи, минимум 0
	Status           OrderStatus `gorm:"type:text;not null;default:'placed';index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Order) TableName() string { return "orders" }

// Payment — одна запись в журнале движений денег. Журнал append-only:
// репозиторий не даёт ни Update, ни Delete.
type Payment struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	AmountCents int64       `gorm:"not null"` // CHECK (> 0) в миграции
	PaymentType PaymentType `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
}

func (Payment) TableName() string { return "payments" }

// ProductStock — счётчик остатка по товару. Создаётся лениво при первом
// приходе, quantity никогда не уходит в минус (условный UPDATE + CHECK).
type ProductStock struct {
	ProductName string `gorm:"type:text;primaryKey"`
	Quantity    int32  `gorm:"type:int;not null;default:0"`

	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (ProductStock) TableName() string { return "product_stocks" }
