package repository

import (
	"context"
	"errors"

	"distributor-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)

	// UpdateStatusFrom — условный переход статуса: срабатывает только если
	// заказ сейчас в статусе from. false — заказ не в ожидаемом состоянии
	// (или его перехватила параллельная команда).
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (bool, error)

	// ZeroRemaining обнуляет остаток к оплате после записи платежа.
	ZeroRemaining(ctx context.Context, id uuid.UUID) error

	// WithTx выполняет fn в одной транзакции БД; все репозитории внутри
	// замыкания работают поверх неё. Команда воркфлоу либо применяется
	// целиком, либо не применяется вовсе.
	WithTx(ctx context.Context, fn func(orders OrderRepo, payments PaymentRepo, stock StockRepo) error) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).First(&ord, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *orderRepo) ListByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *orderRepo) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return tx.RowsAffected > 0, tx.Error
}

func (r *orderRepo) ZeroRemaining(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("remaining_cents", 0).Error
}

func (r *orderRepo) WithTx(ctx context.Context, fn func(orders OrderRepo, payments PaymentRepo, stock StockRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderRepo{db: tx}, &paymentRepo{db: tx}, &stockRepo{db: tx})
	})
}
