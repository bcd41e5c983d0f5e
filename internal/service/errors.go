package service

import (
	"errors"
	"fmt"

	"distributor-service/internal/models"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnknownProduct     = errors.New("unknown product")
	ErrQuantityInvalid    = errors.New("quantity must be > 0")
	ErrAmountNegative     = errors.New("amount must not be negative")
	ErrUserExists         = errors.New("username or email already taken")
	ErrRoleInvalid        = errors.New("unknown role")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Ошибки ниже несут конкретные нарушенные значения: клиент всегда видит
// «ожидалось vs передано», а не голый текст.

type AdvanceLimitError struct {
	LimitCents int64
	GivenCents int64
}

func (e *AdvanceLimitError) Error() string {
	return fmt.Sprintf("advance payment %d exceeds 60%% limit %d", e.GivenCents, e.LimitCents)
}

type AmountMismatchError struct {
	ExpectedCents int64
	GivenCents    int64
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("must collect exact amount: expected %d, given %d", e.ExpectedCents, e.GivenCents)
}

type InsufficientStockError struct {
	Product string
	Have    int32
	Need    int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock of %q: have %d, need %d", e.Product, e.Have, e.Need)
}

type InvalidStateError struct {
	OrderID uuid.UUID
	Status  models.OrderStatus
	Command Command
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("command %q not applicable to order %s in status %q", e.Command, e.OrderID, e.Status)
}
