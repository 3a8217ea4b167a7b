package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type Repository struct {
	DB         *gorm.DB
	Categories *CategoryRepo
	Services   *ServiceRepo
	Orders     *OrderRepo
	Payments   *PaymentRepo
	Users      *UserRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:         db,
		Categories: NewCategoryRepo(db),
		Services:   NewServiceRepo(db),
		Orders:     NewOrderRepo(db),
		Payments:   NewPaymentRepo(db),
		Users:      NewUserRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// WithTx выполняет fn в транзакции, передавая репозитории, привязанные к ней.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	}
	return err
}
