package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStale struct {
	cutoff time.Time
	out    []models.Payment
	err    error
}

func (f *fakeStale) FailStale(_ context.Context, cutoff time.Time) ([]models.Payment, error) {
	f.cutoff = cutoff
	return f.out, f.err
}

type recordingBus struct {
	payments []service.PaymentUpdatedEvent
}

func (b *recordingBus) PublishOrderCreated(context.Context, service.OrderCreatedEvent) error {
	return nil
}

func (b *recordingBus) PublishOrderStatusChanged(context.Context, service.OrderStatusChangedEvent) error {
	return nil
}

func (b *recordingBus) PublishPaymentUpdated(_ context.Context, e service.PaymentUpdatedEvent) error {
	b.payments = append(b.payments, e)
	return nil
}

func TestFailStalePayments(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeStale{out: []models.Payment{
		{OrderID: "ORDER_1_a", Status: models.PaymentStatusFailed, Amount: decimal.NewFromInt(500), Currency: "INR", CustomerEmail: "a@b.c"},
		{OrderID: "ORDER_2_b", Status: models.PaymentStatusFailed, Amount: decimal.NewFromInt(10), Currency: "INR"},
	}}
	bus := &recordingBus{}
	svc := NewCleanupService(repo, bus, 2*time.Hour, zap.NewNop())
	svc.now = func() time.Time { return now }

	n, err := svc.FailStalePayments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, now.Add(-2*time.Hour), repo.cutoff)
	require.Len(t, bus.payments, 2)
	assert.Equal(t, "failed", bus.payments[0].Status)
	assert.Equal(t, "ORDER_2_b", bus.payments[1].OrderID)
}

func TestFailStalePaymentsWithoutBus(t *testing.T) {
	repo := &fakeStale{out: []models.Payment{{OrderID: "x"}}}
	svc := NewCleanupService(repo, nil, time.Hour, zap.NewNop())

	n, err := svc.FailStalePayments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFailStalePaymentsError(t *testing.T) {
	repo := &fakeStale{err: errors.New("db down")}
	svc := NewCleanupService(repo, nil, time.Hour, zap.NewNop())

	_, err := svc.FailStalePayments(context.Background())
	assert.Error(t, err)
	assert.Error(t, svc.RunFullCleanup(context.Background()))
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	svc := NewCleanupService(&fakeStale{}, nil, time.Hour, zap.NewNop())
	s := NewScheduler(svc, "not a schedule", zap.NewNop())
	assert.Error(t, s.Start(context.Background()))
}

func TestSchedulerStartStop(t *testing.T) {
	repo := &fakeStale{}
	svc := NewCleanupService(repo, nil, time.Hour, zap.NewNop())
	s := NewScheduler(svc, "@every 1h", zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, repo.cutoff.IsZero(), "initial run should happen on start")
	s.Stop()
}
