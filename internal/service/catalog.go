package service

import (
	"context"

	"github.com/rajeshboldtribe/boldserve/internal/models"

	"github.com/google/uuid"
)

type ProductFilter struct {
	Category    string
	SubCategory string
}

type CreateProductInput struct {
	Category    string
	SubCategory string
	ProductName string
	Price       string
	Description string
	Offers      string
	Review      string
	Rating      *float64
}

// UpdateProductInput: nil поле остаётся как есть.
type UpdateProductInput struct {
	Category    *string
	SubCategory *string
	ProductName *string
	Price       *string
	Description *string
	Offers      *string
	Review      *string
	Rating      *float64
}

type CatalogService interface {
	ListProducts(ctx context.Context, f ProductFilter) ([]models.Service, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Service, error)
	CreateProduct(ctx context.Context, in CreateProductInput, image *ImageUpload) (*models.Service, error)
	// UpdateProduct меняет только переданные поля; новое изображение заменяет старое.
	UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput, image *ImageUpload) (*models.Service, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
