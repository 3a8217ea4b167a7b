package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/segmentio/kafka-go"
)

// Имена шаблонов писем, которые понимает notifier.
const (
	TemplateOrderCreated       = "order_created"
	TemplateOrderStatusChanged = "order_status_changed"
	TemplatePaymentUpdated     = "payment_updated"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type EmailProducer struct {
	writer messageWriter
}

func NewEmailProducer(brokers []string, topic string) *EmailProducer {
	return &EmailProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}

type EmailMessage struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

func (p *EmailProducer) SendEmail(ctx context.Context, key string, msg EmailMessage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *EmailProducer) Close() error {
	return p.writer.Close()
}

// Реализация service.EventBus: каждое событие превращается в письмо покупателю.

func (p *EmailProducer) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	return p.SendEmail(ctx, e.OrderID.String(), EmailMessage{
		To:       e.CustomerEmail,
		Subject:  "Order " + e.OrderNumber + " received",
		Template: TemplateOrderCreated,
		Data: map[string]any{
			"Name":        e.CustomerName,
			"OrderNumber": e.OrderNumber,
			"Category":    e.Category,
			"SubCategory": e.SubCategory,
			"Quantity":    e.Quantity,
			"Price":       e.Price.StringFixed(2),
		},
	})
}

func (p *EmailProducer) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	return p.SendEmail(ctx, e.OrderID.String(), EmailMessage{
		To:       e.CustomerEmail,
		Subject:  "Order " + e.OrderNumber + " " + e.Status,
		Template: TemplateOrderStatusChanged,
		Data: map[string]any{
			"Name":        e.CustomerName,
			"OrderNumber": e.OrderNumber,
			"Status":      e.Status,
		},
	})
}

func (p *EmailProducer) PublishPaymentUpdated(ctx context.Context, e service.PaymentUpdatedEvent) error {
	return p.SendEmail(ctx, e.OrderID, EmailMessage{
		To:       e.CustomerEmail,
		Subject:  "Payment " + e.Status,
		Template: TemplatePaymentUpdated,
		Data: map[string]any{
			"Name":       e.CustomerName,
			"OrderID":    e.OrderID,
			"Status":     e.Status,
			"Amount":     e.Amount.StringFixed(2),
			"Currency":   e.Currency,
			"TrackingID": e.TrackingID,
		},
	})
}
