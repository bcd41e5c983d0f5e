package http

import (
	"time"

	"distributor-service/internal/models"
	"distributor-service/internal/service"
)

// BaseError — универсальный формат ошибки наружу.
// Code — машинный код (snake_case), Message — краткое описание,
// Details — конкретика (ожидалось vs передано и т.п.).
type BaseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewValidationError(msg, details string) BaseError {
	return BaseError{Code: "validation_error", Message: msg, Details: details}
}
func NewInvalidStateError(msg, details string) BaseError {
	return BaseError{Code: "invalid_state", Message: msg, Details: details}
}
func NewInsufficientStockError(msg, details string) BaseError {
	return BaseError{Code: "insufficient_stock", Message: msg, Details: details}
}
func NewUnauthorizedError(msg string) BaseError {
	return BaseError{Code: "unauthorized", Message: msg}
}
func NewForbiddenError(msg string) BaseError {
	return BaseError{Code: "forbidden", Message: msg}
}
func NewNotFoundError(msg string) BaseError {
	return BaseError{Code: "not_found", Message: msg}
}
func NewConflictError(msg string) BaseError {
	return BaseError{Code: "conflict", Message: msg}
}
func NewInternalError() BaseError {
	return BaseError{Code: "internal_error", Message: "internal server error"}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type PlaceOrderRequest struct {
	ProductName  string `json:"product_name" binding:"required"`
	Quantity     int32  `json:"quantity" binding:"required"`
	AdvanceCents int64  `json:"advance_cents"`
}

type ConfirmOrderRequest struct {
	OrderID        string `json:"order_id" binding:"required"`
	CollectedCents int64  `json:"remaining_payment_collected_cents"`
}

// ProcessOrderRequest — команда склада по confirmed-заказу:
// action = dispatch | request_stock.
type ProcessOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Action  string `json:"action" binding:"required"`
}

type DeliverOrderRequest struct {
	OrderID        string `json:"order_id" binding:"required"`
	CollectedCents int64  `json:"collected_cents"`
}

type PayManufacturerRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaidCents int64  `json:"paid_cents"`
}

type OrderResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	ProductName      string    `json:"product_name"`
	Quantity         int32     `json:"quantity"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	AdvanceCents     int64     `json:"advance_cents"`
	RemainingCents   int64     `json:"remaining_cents"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type PaymentResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	AmountCents int64     `json:"amount_cents"`
	PaymentType string    `json:"payment_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderViewResponse struct {
	OrderResponse
	Username  string            `json:"username"`
	FullyPaid bool              `json:"fully_paid"`
	Payments  []PaymentResponse `json:"payments"`
}

func toOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID.String(),
		UserID:           o.UserID.String(),
		ProductName:      o.ProductName,
		Quantity:         o.Quantity,
		TotalAmountCents: o.TotalAmountCents,
		AdvanceCents:     o.AdvanceCents,
		RemainingCents:   o.RemainingCents,
		Status:           string(o.Status),
		CreatedAt:        o.CreatedAt,
	}
}

func toPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID.String(),
		OrderID:     p.OrderID.String(),
		AmountCents: p.AmountCents,
		PaymentType: string(p.PaymentType),
		CreatedAt:   p.CreatedAt,
	}
}

func toViewResponse(v *service.OrderView) OrderViewResponse {
	pays := make([]PaymentResponse, 0, len(v.Payments))
	for i := range v.Payments {
		pays = append(pays, toPaymentResponse(&v.Payments[i]))
	}
	return OrderViewResponse{
		OrderResponse: toOrderResponse(&v.Order),
		Username:      v.Username,
		FullyPaid:     v.FullyPaid,
		Payments:      pays,
	}
}

func toViewResponses(views []service.OrderView) []OrderViewResponse {
	out := make([]OrderViewResponse, 0, len(views))
	for i := range views {
		out = append(out, toViewResponse(&views[i]))
	}
	return out
}
