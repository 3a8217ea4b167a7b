package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rajeshboldtribe/boldserve/config"
	"github.com/rajeshboldtribe/boldserve/internal/notification"
	"github.com/rajeshboldtribe/boldserve/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Воркер писем: читает события заказов и платежей из Kafka и отправляет их по SMTP.
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.LoadNotifier(log)
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("no kafka brokers configured (KAFKA_BROKERS)")
	}

	cons := notification.NewKafkaEmailConsumer(
		cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic,
		notification.NewEmailSender(cfg.Mail),
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Info("notifier started", zap.String("topic", cfg.Kafka.Topic), zap.String("group", cfg.Kafka.GroupID))
		if err := cons.Run(ctx); err != nil {
			log.Error("consumer stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		log.Warn("consumer did not stop in time")
	}
	if err := cons.Close(); err != nil {
		log.Warn("failed to close kafka reader", zap.Error(err))
	}
}
