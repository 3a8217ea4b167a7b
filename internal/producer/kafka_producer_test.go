package producer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type recordingWriter struct {
	msgs []kafka.Message
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPublishOrderCreatedWritesEmailMessage(t *testing.T) {
	w := &recordingWriter{}
	p := &EmailProducer{writer: w}

	id := uuid.New()
	err := p.PublishOrderCreated(context.Background(), service.OrderCreatedEvent{
		OrderID:       id,
		OrderNumber:   "BS-1",
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		Category:      "Print and Demands",
		SubCategory:   "Business Cards",
		Quantity:      2,
		Price:         decimal.NewFromInt(250),
		CreatedAt:     time.Now(),
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	if string(w.msgs[0].Key) != id.String() {
		t.Fatalf("unexpected key %q", w.msgs[0].Key)
	}

	var msg EmailMessage
	if err := json.Unmarshal(w.msgs[0].Value, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.To != "asha@example.com" || msg.Template != TemplateOrderCreated {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Data["Price"] != "250.00" {
		t.Fatalf("unexpected price %v", msg.Data["Price"])
	}
}

func TestPublishPaymentUpdatedUsesGatewayOrderIDAsKey(t *testing.T) {
	w := &recordingWriter{}
	p := &EmailProducer{writer: w}

	if err := p.PublishPaymentUpdated(context.Background(), service.PaymentUpdatedEvent{
		OrderID:       "ORDER_1_abc",
		Status:        "completed",
		Amount:        decimal.RequireFromString("499.5"),
		Currency:      "INR",
		CustomerEmail: "a@b.c",
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if string(w.msgs[0].Key) != "ORDER_1_abc" {
		t.Fatalf("unexpected key %q", w.msgs[0].Key)
	}
}
