package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"
	repo "github.com/rajeshboldtribe/boldserve/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Единственные допустимые переходы: pending -> accepted | cancelled.
var orderTransitionsFrom = []models.OrderStatus{models.OrderStatusPending}

type orderService struct {
	orders      OrderRepo
	cats        CategoryRepo
	events      EventBus
	orderNumber func() string
	now         func() time.Time
	log         *zap.Logger
}

func NewOrderService(orders OrderRepo, cats CategoryRepo, events EventBus, orderNumber func() string, log *zap.Logger) OrderService {
	return &orderService{
		orders:      orders,
		cats:        cats,
		events:      events,
		orderNumber: orderNumber,
		now:         time.Now,
		log:         log,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	in.Customer.Name = strings.TrimSpace(in.Customer.Name)
	in.Customer.Email = strings.TrimSpace(in.Customer.Email)

	switch {
	case in.CategoryID == uuid.Nil:
		return nil, invalid("categoryId", "categoryId is required")
	case in.SubCategoryID == uuid.Nil:
		return nil, invalid("subCategoryId", "subCategoryId is required")
	case in.Customer.Name == "":
		return nil, invalid("customerDetails.name", "customer name is required")
	case in.Customer.Email == "":
		return nil, invalid("customerDetails.email", "customer email is required")
	case in.Quantity <= 0:
		return nil, invalid("orderDetails.quantity", "quantity must be > 0")
	case in.Price.IsNegative():
		return nil, invalid("orderDetails.price", "price must be >= 0")
	}
	if err := checkAmount("orderDetails.price", in.Price); err != nil {
		return nil, err
	}

	sub, err := s.cats.GetSubCategoryByID(ctx, in.SubCategoryID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.CategoryID != in.CategoryID {
		return nil, invalid("subCategoryId", "subCategory does not belong to category")
	}

	number := strings.TrimSpace(in.OrderNumber)
	if number == "" {
		number = s.orderNumber()
	}

	now := s.now()
	order := &models.Order{
		OrderNumber:   number,
		CategoryID:    in.CategoryID,
		SubCategoryID: in.SubCategoryID,
		Status:        models.OrderStatusPending,
		Customer:      in.Customer,
		Details: models.OrderDetails{
			Description: strings.TrimSpace(in.Description),
			Quantity:    in.Quantity,
			Price:       in.Price,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	order.Category = sub.Category
	order.SubCategory = sub

	if s.events != nil {
		ev := OrderCreatedEvent{
			OrderID:       order.ID,
			OrderNumber:   order.OrderNumber,
			CustomerName:  order.Customer.Name,
			CustomerEmail: order.Customer.Email,
			SubCategory:   sub.Name,
			Quantity:      order.Details.Quantity,
			Price:         order.Details.Price,
			CreatedAt:     now,
		}
		if sub.Category != nil {
			ev.Category = string(sub.Category.Name)
		}
		if err := s.events.PublishOrderCreated(ctx, ev); err != nil {
			s.log.Warn("failed to publish order created event", zap.String("order_id", order.ID.String()), zap.Error(err))
		}
	}

	s.log.Info("order created", zap.String("order_id", order.ID.String()), zap.String("order_number", number))
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *orderService) ListOrders(ctx context.Context, status *models.OrderStatus) ([]models.Order, error) {
	if status != nil && !status.Valid() {
		return nil, invalid("status", "status must be one of pending, accepted, cancelled")
	}
	return s.orders.List(ctx, repo.OrderListFilter{Status: status})
}

// UpdateStatus выполняет одно условное UPDATE; из терминальных статусов и в pending переходов нет.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, invalid("status", "status must be one of pending, accepted, cancelled")
	}

	changed := false
	if status != models.OrderStatusPending {
		var err error
		changed, err = s.orders.TransitionStatus(ctx, id, orderTransitionsFrom, status)
		if err != nil {
			return nil, err
		}
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if !changed {
		s.log.Warn("rejected order status transition",
			zap.String("order_id", id.String()),
			zap.String("from", string(order.Status)),
			zap.String("to", string(status)))
		return nil, ErrInvalidTransition
	}

	if s.events != nil {
		if err := s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
			OrderID:       order.ID,
			OrderNumber:   order.OrderNumber,
			CustomerName:  order.Customer.Name,
			CustomerEmail: order.Customer.Email,
			Status:        string(order.Status),
			ChangedAt:     s.now(),
		}); err != nil {
			s.log.Warn("failed to publish order status event", zap.String("order_id", id.String()), zap.Error(err))
		}
	}

	s.log.Info("order status updated", zap.String("order_id", id.String()), zap.String("status", string(status)))
	return order, nil
}
