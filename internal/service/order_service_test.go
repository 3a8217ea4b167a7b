package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rajeshboldtribe/boldserve/internal/models"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type orderFixture struct {
	svc    service.OrderService
	orders *memOrderRepo
	bus    *recordingBus
	catID  uuid.UUID
	subID  uuid.UUID
	other  uuid.UUID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	ctx := context.Background()
	cats := seededTaxonomy(t)
	list, _ := cats.ListCategories(ctx)
	subs, _ := cats.ListSubCategories(ctx, list[0].ID)
	otherSubs, _ := cats.ListSubCategories(ctx, list[1].ID)

	orders := newMemOrderRepo()
	bus := &recordingBus{}
	next, err := service.NewOrderNumberGenerator(1)
	if err != nil {
		t.Fatalf("order number generator: %v", err)
	}
	return &orderFixture{
		svc:    service.NewOrderService(orders, cats, bus, next, zap.NewNop()),
		orders: orders,
		bus:    bus,
		catID:  list[0].ID,
		subID:  subs[0].ID,
		other:  otherSubs[0].ID,
	}
}

func (f *orderFixture) input() service.CreateOrderInput {
	return service.CreateOrderInput{
		CategoryID:    f.catID,
		SubCategoryID: f.subID,
		Customer:      models.CustomerDetails{Name: "Asha", Email: "asha@example.com"},
		Quantity:      2,
		Price:         decimal.RequireFromString("250.00"),
	}
}

func TestOrder_CreatePending(t *testing.T) {
	f := newOrderFixture(t)
	o, err := f.svc.CreateOrder(context.Background(), f.input())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if o.Status != models.OrderStatusPending {
		t.Fatalf("expected pending, got %s", o.Status)
	}
	if len(o.OrderNumber) < 4 || o.OrderNumber[:3] != "BS-" {
		t.Fatalf("unexpected generated order number %q", o.OrderNumber)
	}
	if len(f.bus.created) != 1 || f.bus.created[0].Category != string(models.CategoryOfficeStationeries) {
		t.Fatalf("order created event not published: %+v", f.bus.created)
	}
}

func TestOrder_CreateValidation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	in := f.input()
	in.SubCategoryID = f.other
	if _, err := f.svc.CreateOrder(ctx, in); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("foreign subcategory: expected validation error, got %v", err)
	}

	in = f.input()
	in.Quantity = 0
	if _, err := f.svc.CreateOrder(ctx, in); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("zero quantity: expected validation error, got %v", err)
	}

	in = f.input()
	in.Customer.Email = " "
	if _, err := f.svc.CreateOrder(ctx, in); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("missing email: expected validation error, got %v", err)
	}

	// numeric(12,2): лишние знаки и переполнение отсекаются до базы
	for _, price := range []string{"0.001", "10000000000", "12345678901.50"} {
		in = f.input()
		in.Price = decimal.RequireFromString(price)
		_, err := f.svc.CreateOrder(ctx, in)
		var verr *service.ValidationError
		if !errors.As(err, &verr) || verr.Field != "orderDetails.price" {
			t.Fatalf("price %s: expected orderDetails.price validation error, got %v", price, err)
		}
	}
	in = f.input()
	in.Price = decimal.RequireFromString("9999999999.99")
	if _, err := f.svc.CreateOrder(ctx, in); err != nil {
		t.Fatalf("max price rejected: %v", err)
	}
}

func TestOrder_DuplicateNumber(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	in := f.input()
	in.OrderNumber = "BS-1"
	if _, err := f.svc.CreateOrder(ctx, in); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := f.svc.CreateOrder(ctx, in); !errors.Is(err, service.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestOrder_StatusTransitions(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	o, _ := f.svc.CreateOrder(ctx, f.input())

	if _, err := f.svc.UpdateStatus(ctx, o.ID, models.OrderStatusPending); !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("pending -> pending: expected ErrInvalidTransition, got %v", err)
	}

	updated, err := f.svc.UpdateStatus(ctx, o.ID, models.OrderStatusAccepted)
	if err != nil {
		t.Fatalf("pending -> accepted: %v", err)
	}
	if updated.Status != models.OrderStatusAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status)
	}
	got, _ := f.svc.GetOrder(ctx, o.ID)
	if got.Status != models.OrderStatusAccepted {
		t.Fatalf("status not visible on read: %s", got.Status)
	}

	if _, err := f.svc.UpdateStatus(ctx, o.ID, models.OrderStatusCancelled); !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("accepted -> cancelled: expected ErrInvalidTransition, got %v", err)
	}
	if len(f.bus.changed) != 1 || f.bus.changed[0].Status != "accepted" {
		t.Fatalf("expected one status event, got %+v", f.bus.changed)
	}
}

func TestOrder_UpdateStatusErrors(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	if _, err := f.svc.UpdateStatus(ctx, uuid.New(), models.OrderStatusAccepted); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("unknown id: expected ErrNotFound, got %v", err)
	}
	if _, err := f.svc.UpdateStatus(ctx, uuid.New(), "shipped"); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("bad status: expected validation error, got %v", err)
	}
	bad := models.OrderStatus("shipped")
	if _, err := f.svc.ListOrders(ctx, &bad); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("list by bad status: expected validation error, got %v", err)
	}
}

func TestOrder_ListByStatus(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	a, _ := f.svc.CreateOrder(ctx, f.input())
	_, _ = f.svc.CreateOrder(ctx, f.input())
	if _, err := f.svc.UpdateStatus(ctx, a.ID, models.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	pending := models.OrderStatusPending
	list, err := f.svc.ListOrders(ctx, &pending)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 pending order, got %d", len(list))
	}
	all, _ := f.svc.ListOrders(ctx, nil)
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}
}
