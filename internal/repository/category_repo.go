package repository

import (
	"context"
	"errors"

	"github.com/rajeshboldtribe/boldserve/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// EnsureCategories вставляет отсутствующие категории; существующие (по name/slug) пропускаются.
func (r *CategoryRepo) EnsureCategories(ctx context.Context, cats []models.Category) (int64, error) {
	if len(cats) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&cats)
	return res.RowsAffected, res.Error
}

func (r *CategoryRepo) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&n).Error
	return n, err
}

func (r *CategoryRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	err := r.db.WithContext(ctx).Order("created_at ASC, name ASC").Find(&list).Error
	return list, err
}

func (r *CategoryRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CategoryRepo) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return r.firstCategory(ctx, "id = ?", id)
}

func (r *CategoryRepo) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return r.firstCategory(ctx, "lower(name) = lower(?)", name)
}

func (r *CategoryRepo) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.firstCategory(ctx, "slug = ?", slug)
}

func (r *CategoryRepo) firstCategory(ctx context.Context, query string, args ...any) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).Where(query, args...).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// EnsureSubCategories: идемпотентная вставка; уникальный индекс (category_id, lower(name))
// гасит дубли при гонке двух засевов.
func (r *CategoryRepo) EnsureSubCategories(ctx context.Context, subs []models.SubCategory) (int64, error) {
	if len(subs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&subs)
	return res.RowsAffected, res.Error
}

func (r *CategoryRepo) CreateSubCategory(ctx context.Context, s *models.SubCategory) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *CategoryRepo) CountSubCategories(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.SubCategory{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}

func (r *CategoryRepo) ListSubCategories(ctx context.Context, categoryID uuid.UUID) ([]models.SubCategory, error) {
	var list []models.SubCategory
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at ASC, name ASC").
		Find(&list).Error
	return list, err
}

func (r *CategoryRepo) ListAllSubCategories(ctx context.Context) ([]models.SubCategory, error) {
	var list []models.SubCategory
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("category_id, created_at ASC, name ASC").
		Find(&list).Error
	return list, err
}

func (r *CategoryRepo) GetSubCategoryByID(ctx context.Context, id uuid.UUID) (*models.SubCategory, error) {
	var s models.SubCategory
	if err := r.db.WithContext(ctx).Preload("Category").First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *CategoryRepo) GetSubCategoryByName(ctx context.Context, categoryID uuid.UUID, name string) (*models.SubCategory, error) {
	var s models.SubCategory
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND lower(name) = lower(?)", categoryID, name).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
