package repository

import (
	"context"
	"errors"

	"github.com/rajeshboldtribe/boldserve/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceListFilter: пустое поле означает «без фильтра». Сравнение точное, без учёта регистра.
type ServiceListFilter struct {
	Category    string
	SubCategory string
}

// ServiceUpdate: nil поле не меняется. Пустая строка в Offers/Review сбрасывает значение в NULL.
type ServiceUpdate struct {
	CategoryID    *uuid.UUID
	SubCategoryID *uuid.UUID
	ProductName   *string
	Price         *decimal.Decimal
	Description   *string
	Offers        *string
	Review        *string
	Rating        *float64
	ImagePath     *string
}

type ServiceRepo struct{ db *gorm.DB }

func NewServiceRepo(db *gorm.DB) *ServiceRepo { return &ServiceRepo{db: db} }

func (r *ServiceRepo) Create(ctx context.Context, s *models.Service) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *ServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).Preload("Category").Preload("SubCategory").First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepo) List(ctx context.Context, f ServiceListFilter) ([]models.Service, error) {
	q := r.db.WithContext(ctx).Model(&models.Service{}).
		Select("services.*").
		Joins("JOIN categories c ON c.id = services.category_id").
		Joins("JOIN sub_categories sc ON sc.id = services.sub_category_id")

	if f.Category != "" {
		q = q.Where("lower(c.name) = lower(?)", f.Category)
	}
	if f.SubCategory != "" {
		q = q.Where("lower(sc.name) = lower(?)", f.SubCategory)
	}

	list := make([]models.Service, 0)
	err := q.Preload("Category").Preload("SubCategory").
		Order("services.created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *ServiceRepo) Update(ctx context.Context, id uuid.UUID, u ServiceUpdate) error {
	upd := map[string]any{}
	if u.CategoryID != nil {
		upd["category_id"] = *u.CategoryID
	}
	if u.SubCategoryID != nil {
		upd["sub_category_id"] = *u.SubCategoryID
	}
	if u.ProductName != nil {
		upd["product_name"] = *u.ProductName
	}
	if u.Price != nil {
		upd["price"] = *u.Price
	}
	if u.Description != nil {
		upd["description"] = *u.Description
	}
	if u.Offers != nil {
		upd["offers"] = nullable(*u.Offers)
	}
	if u.Review != nil {
		upd["review"] = nullable(*u.Review)
	}
	if u.Rating != nil {
		upd["rating"] = *u.Rating
	}
	if u.ImagePath != nil {
		upd["image_path"] = *u.ImagePath
	}

	q := r.db.WithContext(ctx).Model(&models.Service{}).Where("id = ?", id)
	if len(upd) == 0 {
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	}
	res := q.Updates(upd)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
