package repository

import "gorm.io/gorm"

type Repository struct {
	DB       *gorm.DB
	Orders   OrderRepo
	Payments PaymentRepo
	Stock    StockRepo
	Users    UserRepo
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		DB:       db,
		Orders:   NewOrderRepo(db),
		Payments: NewPaymentRepo(db),
		Stock:    NewStockRepo(db),
		Users:    NewUserRepo(db),
	}
}
