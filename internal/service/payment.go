package service

import (
	"context"

	"github.com/rajeshboldtribe/boldserve/internal/models"

	"github.com/shopspring/decimal"
)

// GatewayStatusSuccess — значение order_status шлюза при успешной оплате.
const GatewayStatusSuccess = "SUCCESS"

type GatewayConfig struct {
	MerchantID string
	AccessKey  string
	Currency   string
	BackendURL string
}

type CreatePaymentInput struct {
	Amount        decimal.Decimal
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// GatewayRequest — параметры редиректа на платёжную страницу шлюза.
type GatewayRequest struct {
	MerchantID    string
	OrderID       string
	AmountPaise   int64
	Currency      string
	RedirectURL   string
	CancelURL     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Checksum      string
}

type CallbackInput struct {
	OrderID     string
	TrackingID  string
	BankRefNo   string
	OrderStatus string
	PaymentMode string
	Amount      string
	Checksum    string
}

type PaymentListFilter struct {
	Status *models.PaymentStatus
	Limit  int
	Offset int
}

type PaymentService interface {
	CreatePayment(ctx context.Context, in CreatePaymentInput) (*GatewayRequest, error)
	Initiate(ctx context.Context, orderID string) (*models.Payment, error)
	HandleCallback(ctx context.Context, in CallbackInput) (*models.Payment, error)
	Cancel(ctx context.Context, orderID string) (*models.Payment, error)
	GetStatus(ctx context.Context, orderID string) (*models.Payment, error)
	ListPayments(ctx context.Context, f PaymentListFilter) ([]models.Payment, int64, error)
}
