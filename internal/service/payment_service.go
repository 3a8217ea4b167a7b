package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"
	repo "github.com/rajeshboldtribe/boldserve/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var openPaymentStatuses = []models.PaymentStatus{models.PaymentStatusCreated, models.PaymentStatusPending}

type paymentService struct {
	payments PaymentRepo
	signer   ChecksumSigner
	gateway  GatewayConfig
	events   EventBus
	newID    func(time.Time) (string, error)
	now      func() time.Time
	log      *zap.Logger
}

func NewPaymentService(payments PaymentRepo, signer ChecksumSigner, gateway GatewayConfig, events EventBus, log *zap.Logger) PaymentService {
	if gateway.Currency == "" {
		gateway.Currency = "INR"
	}
	return &paymentService{
		payments: payments,
		signer:   signer,
		gateway:  gateway,
		events:   events,
		newID:    newPaymentOrderID,
		now:      time.Now,
		log:      log,
	}
}

// checksumAmount: каноническая строка суммы в рупиях (500, 499.5), участвует в HMAC.
func checksumAmount(d decimal.Decimal) string { return d.String() }

func (s *paymentService) CreatePayment(ctx context.Context, in CreatePaymentInput) (*GatewayRequest, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)

	switch {
	case !in.Amount.IsPositive():
		return nil, invalid("amount", "amount must be > 0")
	case in.CustomerName == "":
		return nil, invalid("customerName", "customerName is required")
	case in.CustomerEmail == "":
		return nil, invalid("customerEmail", "customerEmail is required")
	case in.CustomerPhone == "":
		return nil, invalid("customerPhone", "customerPhone is required")
	}
	if err := checkAmount("amount", in.Amount); err != nil {
		return nil, err
	}

	orderID, err := s.newID(s.now())
	if err != nil {
		return nil, err
	}

	sum := s.signer.Sign(s.gateway.MerchantID, orderID, checksumAmount(in.Amount), s.gateway.Currency, s.gateway.AccessKey)

	p := &models.Payment{
		OrderID:       orderID,
		Amount:        in.Amount,
		Currency:      s.gateway.Currency,
		Status:        models.PaymentStatusCreated,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	s.log.Info("payment created", zap.String("order_id", orderID), zap.String("amount", in.Amount.String()))

	return &GatewayRequest{
		MerchantID:    s.gateway.MerchantID,
		OrderID:       orderID,
		AmountPaise:   in.Amount.Shift(2).IntPart(),
		Currency:      s.gateway.Currency,
		RedirectURL:   s.gateway.BackendURL + "/api/payments/callback",
		CancelURL:     s.gateway.BackendURL + "/api/payments/cancel",
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		Checksum:      sum,
	}, nil
}

// Initiate отмечает передачу покупателя на страницу шлюза (created -> pending).
func (s *paymentService) Initiate(ctx context.Context, orderID string) (*models.Payment, error) {
	ok, err := s.payments.Transition(ctx, orderID,
		[]models.PaymentStatus{models.PaymentStatusCreated},
		repo.PaymentUpdate{Status: models.PaymentStatusPending})
	if err != nil {
		return nil, err
	}
	p, err := s.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if !ok && p.Status != models.PaymentStatusPending {
		return nil, ErrInvalidTransition
	}
	return p, nil
}

func (s *paymentService) HandleCallback(ctx context.Context, in CallbackInput) (*models.Payment, error) {
	if !s.signer.Verify(in.Checksum,
		s.gateway.MerchantID, in.OrderID, in.TrackingID, in.BankRefNo, in.OrderStatus, in.Amount, s.gateway.AccessKey) {
		s.log.Warn("payment callback checksum mismatch", zap.String("order_id", in.OrderID))
		return nil, ErrChecksumMismatch
	}

	p, err := s.payments.GetByOrderID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	// шлюз возвращает сумму в пайсах, как она ушла в форме редиректа
	expected := p.Amount.Shift(2)
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil || !amount.Equal(expected) {
		s.log.Warn("payment callback amount mismatch",
			zap.String("order_id", in.OrderID),
			zap.String("expected", expected.String()),
			zap.String("got", in.Amount))
		return nil, ErrAmountMismatch
	}

	target := models.PaymentStatusFailed
	if in.OrderStatus == GatewayStatusSuccess {
		target = models.PaymentStatusCompleted
	}

	ok, err := s.payments.Transition(ctx, in.OrderID, openPaymentStatuses, repo.PaymentUpdate{
		Status:      target,
		TrackingID:  &in.TrackingID,
		BankRefNo:   &in.BankRefNo,
		PaymentMode: &in.PaymentMode,
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.payments.GetByOrderID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	if !ok {
		// Повторная доставка того же результата допустима, смена исхода — нет.
		if updated.Status == target {
			s.log.Info("duplicate payment callback ignored", zap.String("order_id", in.OrderID))
			return updated, nil
		}
		s.log.Warn("payment callback for finalized payment rejected",
			zap.String("order_id", in.OrderID),
			zap.String("status", string(updated.Status)),
			zap.String("gateway_status", in.OrderStatus))
		return nil, ErrInvalidTransition
	}

	s.publish(ctx, updated)
	s.log.Info("payment callback processed", zap.String("order_id", in.OrderID), zap.String("status", string(target)))
	return updated, nil
}

func (s *paymentService) Cancel(ctx context.Context, orderID string) (*models.Payment, error) {
	ok, err := s.payments.Transition(ctx, orderID, openPaymentStatuses,
		repo.PaymentUpdate{Status: models.PaymentStatusFailed})
	if err != nil {
		return nil, err
	}
	p, err := s.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	s.publish(ctx, p)
	s.log.Info("payment cancelled", zap.String("order_id", orderID))
	return p, nil
}

func (s *paymentService) GetStatus(ctx context.Context, orderID string) (*models.Payment, error) {
	p, err := s.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *paymentService) ListPayments(ctx context.Context, f PaymentListFilter) ([]models.Payment, int64, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, invalid("status", "status must be one of created, pending, completed, failed")
	}
	return s.payments.List(ctx, repo.PaymentListFilter{Status: f.Status, Limit: f.Limit, Offset: f.Offset})
}

func (s *paymentService) publish(ctx context.Context, p *models.Payment) {
	if s.events == nil {
		return
	}
	ev := PaymentUpdatedEvent{
		OrderID:       p.OrderID,
		Status:        string(p.Status),
		Amount:        p.Amount,
		Currency:      p.Currency,
		CustomerName:  p.CustomerName,
		CustomerEmail: p.CustomerEmail,
		UpdatedAt:     s.now(),
	}
	if p.TrackingID != nil {
		ev.TrackingID = *p.TrackingID
	}
	if err := s.events.PublishPaymentUpdated(ctx, ev); err != nil {
		s.log.Warn("failed to publish payment event", zap.String("order_id", p.OrderID), zap.Error(err))
	}
}
