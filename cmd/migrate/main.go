package main

import (
	"context"
	"os"

	"github.com/rajeshboldtribe/boldserve/config"
	"github.com/rajeshboldtribe/boldserve/internal/migrate"
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

	db := database.ConnectDBForMigration(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	ctx := context.Background()
	opts := migrate.DefaultMigrateOptions()

	if err := migrate.MigrateDB(ctx, db, log, opts); err != nil {
		log.Fatal("Ошибка при выполнении миграции", zap.Error(err))
	}

	repos := repository.New(db)
	if err := service.NewTaxonomyService(repos.Categories, log).Bootstrap(ctx); err != nil {
		log.Fatal("Ошибка при засеве категорий", zap.Error(err))
	}

	log.Info("Миграция успешно завершена")
}
