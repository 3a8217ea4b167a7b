package service

import (
	"context"

	"github.com/rajeshboldtribe/boldserve/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateOrderInput struct {
	OrderNumber   string
	CategoryID    uuid.UUID
	SubCategoryID uuid.UUID
	Customer      models.CustomerDetails
	Description   string
	Quantity      int
	Price         decimal.Decimal
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, status *models.OrderStatus) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}
