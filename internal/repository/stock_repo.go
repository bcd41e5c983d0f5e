package repository

import (
	"context"
	"errors"

	"distributor-service/internal/models"

	"gorm.io/gorm"
)

type StockRepo interface {
	Get(ctx context.Context, product string) (*models.ProductStock, error)
	// Quantity — текущий остаток; 0 для товара, который ещё не приходовали.
	Quantity(ctx context.Context, product string) (int32, error)

	// TryDecrement атомарно списывает qty, если остатка хватает:
	// одиночный условный UPDATE, без read-check-write гонки.
	TryDecrement(ctx context.Context, product string, qty int32) (bool, error)

	// Increment приходует qty; строка товара создаётся с нулевой базой,
	// если её ещё нет.
	Increment(ctx context.Context, product string, qty int32) error
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepo(db *gorm.DB) StockRepo { return &stockRepo{db: db} }

func (r *stockRepo) Get(ctx context.Context, product string) (*models.ProductStock, error) {
	var st models.ProductStock
	err := r.db.WithContext(ctx).First(&st, "product_name = ?", product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &st, err
}

func (r *stockRepo) Quantity(ctx context.Context, product string) (int32, error) {
	st, err := r.Get(ctx, product)
	if err != nil {
		return 0, err
	}
	if st == nil {
		return 0, nil
	}
	return st.Quantity, nil
}

func (r *stockRepo) TryDecrement(ctx context.Context, product string, qty int32) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE product_stocks
SET quantity = quantity - @q,
    updated_at = now()
WHERE product_name = @p
  AND quantity >= @q
`, map[string]any{
		"p": product,
		"q": qty,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *stockRepo) Increment(ctx context.Context, product string, qty int32) error {
	return r.db.WithContext(ctx).Exec(`
INSERT INTO product_stocks (product_name, quantity, updated_at)
VALUES (@p, @q, now())
ON CONFLICT (product_name)
DO UPDATE SET quantity = product_stocks.quantity + EXCLUDED.quantity,
              updated_at = now()
`, map[string]any{
		"p": product,
		"q": qty,
	}).Error
}
