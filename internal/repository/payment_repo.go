package repository

import (
	"context"
	"errors"

	"distributor-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRepo — журнал платежей. Интерфейс намеренно без Update и Delete:
// история денег не правится, ошибки исправляются новыми записями.
type PaymentRepo interface {
	Append(ctx context.Context, p *models.Payment) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error)
	SumByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
	// SumSettlement — сумма только advance+remaining платежей; stock_supply
	// идут производителю и в расчёт остатка покупателя не входят.
	SumSettlement(ctx context.Context, orderID uuid.UUID) (int64, error)
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepo(db *gorm.DB) PaymentRepo { return &paymentRepo{db: db} }

func (r *paymentRepo) Append(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	var rows []models.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return rows, err
}

func (r *paymentRepo) SumByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount_cents),0)").
		Where("order_id = ?", orderID).
		Scan(&total).Error
	return total, err
}

func (r *paymentRepo) SumSettlement(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount_cents),0)").
		Where("order_id = ? AND payment_type IN ?", orderID,
			[]models.PaymentType{models.PaymentTypeAdvance, models.PaymentTypeRemaining}).
		Scan(&total).Error
	return total, err
}
