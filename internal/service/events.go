package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderCreatedEvent struct {
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Category      string          `json:"category"`
	SubCategory   string          `json:"sub_category"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	CreatedAt     time.Time       `json:"created_at"`
}

type OrderStatusChangedEvent struct {
	OrderID       uuid.UUID `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Status        string    `json:"status"`
	ChangedAt     time.Time `json:"changed_at"`
}

type PaymentUpdatedEvent struct {
	OrderID       string          `json:"order_id"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	TrackingID    string          `json:"tracking_id,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// EventBus публикует доменные события; nil отключает публикацию.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
	PublishPaymentUpdated(ctx context.Context, e PaymentUpdatedEvent) error
}
