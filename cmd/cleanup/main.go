package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rajeshboldtribe/boldserve/config"
	"github.com/rajeshboldtribe/boldserve/internal/cleanup"
	"github.com/rajeshboldtribe/boldserve/internal/producer"
	"github.com/rajeshboldtribe/boldserve/internal/repository"
	"github.com/rajeshboldtribe/boldserve/internal/service"
	"github.com/rajeshboldtribe/boldserve/pkg/database"
	"github.com/rajeshboldtribe/boldserve/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()
	cfg := config.Load(log)

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/cleanup/main.go [payments|all]")
		fmt.Println("  payments - mark stale created/pending payments as failed")
		fmt.Println("  all      - run full cleanup (default)")
		os.Exit(1)
	}

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	var events service.EventBus
	if len(cfg.Kafka.Brokers) > 0 {
		p := producer.NewEmailProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer p.Close()
		events = p
	}

	cleanupSvc := cleanup.NewCleanupService(repository.New(db).Payments, events, cfg.Payment.TTL, log)

	ctx := context.Background()

	switch os.Args[1] {
	case "payments":
		log.Info("running stale payments cleanup")
		n, err := cleanupSvc.FailStalePayments(ctx)
		if err != nil {
			log.Fatal("failed to cleanup stale payments", zap.Error(err))
		}
		log.Info("stale payments marked failed", zap.Int("count", n))
	case "all":
		fallthrough
	default:
		log.Info("running full cleanup")
		if err := cleanupSvc.RunFullCleanup(ctx); err != nil {
			log.Fatal("failed to run full cleanup", zap.Error(err))
		}
	}

	log.Info("cleanup completed successfully")
}
