package dto

import (
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"

	"github.com/shopspring/decimal"
)

type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type OrderDetails struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
}

type CreateOrderRequest struct {
	OrderNumber     string          `json:"orderNumber"`
	CategoryID      string          `json:"categoryId" binding:"required,uuid"`
	SubCategoryID   string          `json:"subCategoryId" binding:"required,uuid"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	OrderDetails    OrderDetails    `json:"orderDetails"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderResponse struct {
	ID              string               `json:"id"`
	OrderNumber     string               `json:"orderNumber"`
	Status          string               `json:"status"`
	CategoryID      string               `json:"categoryId"`
	SubCategoryID   string               `json:"subCategoryId"`
	Category        *CategoryResponse    `json:"category,omitempty"`
	SubCategory     *SubCategoryResponse `json:"subCategory,omitempty"`
	CustomerDetails CustomerDetails      `json:"customerDetails"`
	OrderDetails    OrderDetails         `json:"orderDetails"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	r := OrderResponse{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		Status:        string(o.Status),
		CategoryID:    o.CategoryID.String(),
		SubCategoryID: o.SubCategoryID.String(),
		CustomerDetails: CustomerDetails{
			Name:    o.Customer.Name,
			Email:   o.Customer.Email,
			Phone:   o.Customer.Phone,
			Address: o.Customer.Address,
		},
		OrderDetails: OrderDetails{
			Description: o.Details.Description,
			Quantity:    o.Details.Quantity,
			Price:       o.Details.Price,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if o.Category != nil {
		c := NewCategoryResponse(o.Category)
		r.Category = &c
	}
	if o.SubCategory != nil {
		s := NewSubCategoryResponse(o.SubCategory)
		r.SubCategory = &s
	}
	return r
}

func NewOrderList(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
