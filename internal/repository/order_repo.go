package repository

import (
	"context"
	"errors"

	"github.com/rajeshboldtribe/boldserve/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderListFilter struct {
	Status *models.OrderStatus
}

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Create(ctx context.Context, o *models.Order) error {
	return translate(r.db.WithContext(ctx).Create(o).Error)
}

func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Category").Preload("SubCategory").First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *OrderRepo) List(ctx context.Context, f OrderListFilter) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	list := make([]models.Order, 0)
	err := q.Preload("Category").Preload("SubCategory").Order("created_at DESC").Find(&list).Error
	return list, err
}

// TransitionStatus атомарно меняет статус, только если текущий входит в from.
// false без ошибки — заказа нет либо он уже в другом статусе.
func (r *OrderRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from []models.OrderStatus, to models.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}
