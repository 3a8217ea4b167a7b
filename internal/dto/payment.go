package dto

import (
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" swaggertype:"number"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
}

// GatewayRequestResponse — поля формы, которую фронтенд отправляет на страницу шлюза.
// Amount — в пайсах.
type GatewayRequestResponse struct {
	MerchantID    string `json:"merchant_id"`
	OrderID       string `json:"order_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	RedirectURL   string `json:"redirect_url"`
	CancelURL     string `json:"cancel_url"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Checksum      string `json:"checksum"`
}

// CallbackRequest приходит от шлюза как form-urlencoded или JSON.
type CallbackRequest struct {
	OrderID     string `form:"order_id" json:"order_id"`
	TrackingID  string `form:"tracking_id" json:"tracking_id"`
	BankRefNo   string `form:"bank_ref_no" json:"bank_ref_no"`
	OrderStatus string `form:"order_status" json:"order_status"`
	PaymentMode string `form:"payment_mode" json:"payment_mode"`
	Amount      string `form:"amount" json:"amount"`
	Checksum    string `form:"checksum" json:"checksum"`
}

type CancelRequest struct {
	OrderID string `form:"order_id" json:"order_id"`
}

type PaymentStatusResponse struct {
	OrderID string          `json:"orderId"`
	Status  string          `json:"status"`
	Amount  decimal.Decimal `json:"amount" swaggertype:"number"`
}

type PaymentResponse struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"orderId"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"number"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	TrackingID    *string         `json:"trackingId,omitempty"`
	BankRefNo     *string         `json:"bankRefNo,omitempty"`
	PaymentMode   *string         `json:"paymentMode,omitempty"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Total int64             `json:"total"`
}

func NewGatewayRequestResponse(g *service.GatewayRequest) GatewayRequestResponse {
	return GatewayRequestResponse{
		MerchantID:    g.MerchantID,
		OrderID:       g.OrderID,
		Amount:        g.AmountPaise,
		Currency:      g.Currency,
		RedirectURL:   g.RedirectURL,
		CancelURL:     g.CancelURL,
		CustomerName:  g.CustomerName,
		CustomerEmail: g.CustomerEmail,
		CustomerPhone: g.CustomerPhone,
		Checksum:      g.Checksum,
	}
}

func (r CallbackRequest) ToInput() service.CallbackInput {
	return service.CallbackInput{
		OrderID:     r.OrderID,
		TrackingID:  r.TrackingID,
		BankRefNo:   r.BankRefNo,
		OrderStatus: r.OrderStatus,
		PaymentMode: r.PaymentMode,
		Amount:      r.Amount,
		Checksum:    r.Checksum,
	}
}

func NewPaymentStatusResponse(p *models.Payment) PaymentStatusResponse {
	return PaymentStatusResponse{OrderID: p.OrderID, Status: string(p.Status), Amount: p.Amount}
}

func NewPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID.String(),
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        string(p.Status),
		TrackingID:    p.TrackingID,
		BankRefNo:     p.BankRefNo,
		PaymentMode:   p.PaymentMode,
		CustomerName:  p.CustomerName,
		CustomerEmail: p.CustomerEmail,
		CustomerPhone: p.CustomerPhone,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func NewPaymentList(ps []models.Payment, total int64) PaymentListResponse {
	items := make([]PaymentResponse, 0, len(ps))
	for i := range ps {
		items = append(items, NewPaymentResponse(&ps[i]))
	}
	return PaymentListResponse{Items: items, Total: total}
}
