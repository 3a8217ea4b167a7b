package service_test

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"

	"github.com/rajeshboldtribe/boldserve/internal/checksum"
	"github.com/rajeshboldtribe/boldserve/internal/models"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	testMerchant  = "M1001"
	testAccessKey = "AK-TEST"
	testSecret    = "gateway-secret"
)

var paymentIDPattern = regexp.MustCompile(`^ORDER_\d{13}_\S+$`)

type paymentFixture struct {
	svc      service.PaymentService
	payments *memPaymentRepo
	signer   *checksum.Signer
	bus      *recordingBus
}

func newPaymentFixture() *paymentFixture {
	payments := newMemPaymentRepo()
	signer := checksum.NewSigner(testSecret)
	bus := &recordingBus{}
	svc := service.NewPaymentService(payments, signer, service.GatewayConfig{
		MerchantID: testMerchant,
		AccessKey:  testAccessKey,
		BackendURL: "https://api.boldserve.in",
	}, bus, zap.NewNop())
	return &paymentFixture{svc: svc, payments: payments, signer: signer, bus: bus}
}

func (f *paymentFixture) create(t *testing.T, amount string) *service.GatewayRequest {
	t.Helper()
	gw, err := f.svc.CreatePayment(context.Background(), service.CreatePaymentInput{
		Amount:        decimal.RequireFromString(amount),
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9876543210",
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	return gw
}

// callback собирает callback так, как его подписал бы шлюз.
func (f *paymentFixture) callback(orderID, status, amount string) service.CallbackInput {
	in := service.CallbackInput{
		OrderID:     orderID,
		TrackingID:  "TRK-1",
		BankRefNo:   "BRN-1",
		OrderStatus: status,
		PaymentMode: "UPI",
		Amount:      amount,
	}
	in.Checksum = f.signer.Sign(testMerchant, in.OrderID, in.TrackingID, in.BankRefNo, in.OrderStatus, in.Amount, testAccessKey)
	return in
}

func TestPayment_CreateGatewayRequest(t *testing.T) {
	f := newPaymentFixture()
	gw := f.create(t, "500")

	if !paymentIDPattern.MatchString(gw.OrderID) {
		t.Fatalf("unexpected order id %q", gw.OrderID)
	}
	if gw.AmountPaise != 50000 || gw.Currency != "INR" {
		t.Fatalf("unexpected amount/currency: %d %s", gw.AmountPaise, gw.Currency)
	}
	if gw.RedirectURL != "https://api.boldserve.in/api/payments/callback" || gw.CancelURL != "https://api.boldserve.in/api/payments/cancel" {
		t.Fatalf("unexpected urls: %s %s", gw.RedirectURL, gw.CancelURL)
	}
	// повторный расчёт подписи даёт то же значение
	want := f.signer.Sign(testMerchant, gw.OrderID, "500", "INR", testAccessKey)
	if gw.Checksum != want {
		t.Fatalf("checksum mismatch: got %s want %s", gw.Checksum, want)
	}
	if st := f.payments.status(gw.OrderID); st != models.PaymentStatusCreated {
		t.Fatalf("expected created, got %s", st)
	}
}

func TestPayment_CreateValidation(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	cases := []service.CreatePaymentInput{
		{Amount: decimal.Zero, CustomerName: "a", CustomerEmail: "b", CustomerPhone: "c"},
		{Amount: decimal.RequireFromString("1.005"), CustomerName: "a", CustomerEmail: "b", CustomerPhone: "c"},
		{Amount: decimal.RequireFromString("10000000000"), CustomerName: "a", CustomerEmail: "b", CustomerPhone: "c"},
		{Amount: decimal.NewFromInt(10), CustomerEmail: "b", CustomerPhone: "c"},
		{Amount: decimal.NewFromInt(10), CustomerName: "a", CustomerPhone: "c"},
		{Amount: decimal.NewFromInt(10), CustomerName: "a", CustomerEmail: "b"},
	}
	for i, in := range cases {
		if _, err := f.svc.CreatePayment(ctx, in); !errors.Is(err, service.ErrValidation) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestPayment_CallbackSuccess(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	gw := f.create(t, "499.50")

	// шлюз подписывает ту же сумму в пайсах, что получил в форме
	paise := strconv.FormatInt(gw.AmountPaise, 10)
	p, err := f.svc.HandleCallback(ctx, f.callback(gw.OrderID, service.GatewayStatusSuccess, paise))
	if err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}
	if p.Status != models.PaymentStatusCompleted || p.TrackingID == nil || *p.TrackingID != "TRK-1" {
		t.Fatalf("unexpected payment %+v", p)
	}
	if len(f.bus.payments) != 1 || f.bus.payments[0].Status != "completed" {
		t.Fatalf("payment event not published: %+v", f.bus.payments)
	}

	// повтор того же исхода допустим
	if _, err := f.svc.HandleCallback(ctx, f.callback(gw.OrderID, service.GatewayStatusSuccess, paise)); err != nil {
		t.Fatalf("replay: %v", err)
	}
	// смена исхода для завершённого платежа — нет
	if _, err := f.svc.HandleCallback(ctx, f.callback(gw.OrderID, "FAILURE", paise)); !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if st := f.payments.status(gw.OrderID); st != models.PaymentStatusCompleted {
		t.Fatalf("status changed after rejected replay: %s", st)
	}
}

func TestPayment_CallbackFailureStatus(t *testing.T) {
	f := newPaymentFixture()
	gw := f.create(t, "100")
	p, err := f.svc.HandleCallback(context.Background(), f.callback(gw.OrderID, "ABORTED", "10000"))
	if err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}
	if p.Status != models.PaymentStatusFailed {
		t.Fatalf("expected failed, got %s", p.Status)
	}
}

func TestPayment_TamperedCallbackRejected(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	gw := f.create(t, "500")

	in := f.callback(gw.OrderID, service.GatewayStatusSuccess, "50000")
	in.Amount = "1"
	if _, err := f.svc.HandleCallback(ctx, in); !errors.Is(err, service.ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}

	// подпись верна, но сумма не совпадает с сохранённой
	for _, amount := range []string{"5", "500", "49999", "abc"} {
		if _, err := f.svc.HandleCallback(ctx, f.callback(gw.OrderID, service.GatewayStatusSuccess, amount)); !errors.Is(err, service.ErrAmountMismatch) {
			t.Fatalf("amount %q: expected ErrAmountMismatch, got %v", amount, err)
		}
	}
	if st := f.payments.status(gw.OrderID); st != models.PaymentStatusCreated {
		t.Fatalf("payment must stay untouched, got %s", st)
	}
}

func TestPayment_CallbackUnknownOrder(t *testing.T) {
	f := newPaymentFixture()
	if _, err := f.svc.HandleCallback(context.Background(), f.callback("ORDER_1_x", service.GatewayStatusSuccess, "1")); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPayment_InitiateAndCancel(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	gw := f.create(t, "250")

	for i := 0; i < 2; i++ {
		p, err := f.svc.Initiate(ctx, gw.OrderID)
		if err != nil {
			t.Fatalf("Initiate #%d: %v", i, err)
		}
		if p.Status != models.PaymentStatusPending {
			t.Fatalf("expected pending, got %s", p.Status)
		}
	}

	p, err := f.svc.Cancel(ctx, gw.OrderID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if p.Status != models.PaymentStatusFailed {
		t.Fatalf("expected failed, got %s", p.Status)
	}
	if _, err := f.svc.Cancel(ctx, gw.OrderID); !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("cancel terminal: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := f.svc.Initiate(ctx, gw.OrderID); !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("initiate terminal: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := f.svc.Cancel(ctx, "ORDER_0_missing"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("cancel unknown: expected ErrNotFound, got %v", err)
	}
}

func TestPayment_GetStatusAndList(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	gw := f.create(t, "75")

	p, err := f.svc.GetStatus(ctx, gw.OrderID)
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !p.Amount.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("unexpected amount %s", p.Amount)
	}
	if _, err := f.svc.GetStatus(ctx, "nope"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	bad := models.PaymentStatus("refunded")
	if _, _, err := f.svc.ListPayments(ctx, service.PaymentListFilter{Status: &bad}); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	items, total, err := f.svc.ListPayments(ctx, service.PaymentListFilter{})
	if err != nil || total != 1 || len(items) != 1 {
		t.Fatalf("ListPayments: %v total=%d", err, total)
	}
}
