package cleanup

import (
	"context"
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"go.uber.org/zap"
)

type StalePayments interface {
	FailStale(ctx context.Context, cutoff time.Time) ([]models.Payment, error)
}

type CleanupService struct {
	payments StalePayments
	events   service.EventBus
	ttl      time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewCleanupService(payments StalePayments, events service.EventBus, ttl time.Duration, log *zap.Logger) *CleanupService {
	return &CleanupService{
		payments: payments,
		events:   events,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// FailStalePayments помечает failed платежи, которые висят в created/pending дольше ttl.
func (c *CleanupService) FailStalePayments(ctx context.Context) (int, error) {
	cutoff := c.now().Add(-c.ttl)
	failed, err := c.payments.FailStale(ctx, cutoff)
	if err != nil {
		c.log.Error("failed to expire stale payments", zap.Error(err))
		return 0, err
	}
	if len(failed) > 0 {
		c.log.Info("expired stale payments", zap.Int("count", len(failed)), zap.Time("cutoff", cutoff))
	}
	if c.events == nil {
		return len(failed), nil
	}
	for _, p := range failed {
		ev := service.PaymentUpdatedEvent{
			OrderID:       p.OrderID,
			Status:        string(p.Status),
			Amount:        p.Amount,
			Currency:      p.Currency,
			CustomerName:  p.CustomerName,
			CustomerEmail: p.CustomerEmail,
			UpdatedAt:     c.now(),
		}
		if err := c.events.PublishPaymentUpdated(ctx, ev); err != nil {
			c.log.Warn("failed to publish payment event", zap.String("order_id", p.OrderID), zap.Error(err))
		}
	}
	return len(failed), nil
}

// RunFullCleanup выполняет все задачи очистки
func (c *CleanupService) RunFullCleanup(ctx context.Context) error {
	c.log.Info("starting full cleanup")
	if _, err := c.FailStalePayments(ctx); err != nil {
		return err
	}
	c.log.Info("full cleanup completed")
	return nil
}
