package migrate

import (
	"context"

	"github.com/rajeshboldtribe/boldserve/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateFunctionalIdx bool // lower(email), (category_id, lower(name))
	CreateChecks        bool // CHECK на статусы, цены, рейтинг
	CreateFKsViaSQL     bool // FK через Exec после AutoMigrate
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateFunctionalIdx: true,
		CreateChecks:        true,
		CreateFKsViaSQL:     true,
	}
}

func MigrateDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	db = db.WithContext(ctx)
	log.Info("Начало миграции базы данных BoldServe")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
		return err
	}

	log.Info("Создание таблиц")
	if err := db.AutoMigrate(
		&models.Category{},
		&models.SubCategory{},
		&models.Service{},
		&models.Order{},
		&models.Payment{},
		&models.User{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}
	log.Info("Таблицы успешно созданы")

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")
		if err := db.Exec(`
ALTER TABLE categories
  DROP CONSTRAINT IF EXISTS chk_categories_name,
  ADD CONSTRAINT chk_categories_name CHECK (name IN ('Office Stationeries','Print and Demands','IT Services and Repair'));
ALTER TABLE services
  DROP CONSTRAINT IF EXISTS chk_services_price,
  ADD CONSTRAINT chk_services_price CHECK (price >= 0),
  DROP CONSTRAINT IF EXISTS chk_services_rating,
  ADD CONSTRAINT chk_services_rating CHECK (rating >= 0 AND rating <= 5);
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status,
  ADD CONSTRAINT chk_orders_status CHECK (status IN ('pending','accepted','cancelled')),
  DROP CONSTRAINT IF EXISTS chk_orders_quantity,
  ADD CONSTRAINT chk_orders_quantity CHECK (order_quantity > 0),
  DROP CONSTRAINT IF EXISTS chk_orders_price,
  ADD CONSTRAINT chk_orders_price CHECK (order_price >= 0);
ALTER TABLE payments
  DROP CONSTRAINT IF EXISTS chk_payments_status,
  ADD CONSTRAINT chk_payments_status CHECK (status IN ('created','pending','completed','failed')),
  DROP CONSTRAINT IF EXISTS chk_payments_amount,
  ADD CONSTRAINT chk_payments_amount CHECK (amount > 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK-ограничения", zap.Error(err))
			return err
		}
		log.Info("CHECK-ограничения созданы")
	}

	log.Info("Создание триггеров updated_at")
	if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;
DROP TRIGGER IF EXISTS trg_categories_updated ON categories;
CREATE TRIGGER trg_categories_updated BEFORE UPDATE ON categories
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
DROP TRIGGER IF EXISTS trg_sub_categories_updated ON sub_categories;
CREATE TRIGGER trg_sub_categories_updated BEFORE UPDATE ON sub_categories
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
DROP TRIGGER IF EXISTS trg_services_updated ON services;
CREATE TRIGGER trg_services_updated BEFORE UPDATE ON services
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
DROP TRIGGER IF EXISTS trg_payments_updated ON payments;
CREATE TRIGGER trg_payments_updated BEFORE UPDATE ON payments
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
DROP TRIGGER IF EXISTS trg_users_updated ON users;
CREATE TRIGGER trg_users_updated BEFORE UPDATE ON users
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
		log.Error("Не удалось создать триггеры updated_at", zap.Error(err))
		return err
	}

	if opt.CreateFunctionalIdx {
		log.Info("Создание функциональных уникальных индексов")
		if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email ON users (lower(email))`).Error; err != nil {
			log.Error("Не удалось создать уникальный индекс на lower(email)", zap.Error(err))
			return err
		}
		// Защищает от дублей при параллельном засеве подкатегорий.
		if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_sub_categories_category_name ON sub_categories (category_id, lower(name))`).Error; err != nil {
			log.Error("Не удалось создать уникальный индекс подкатегорий", zap.Error(err))
			return err
		}
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_status_created ON orders (status, created_at DESC);
CREATE INDEX IF NOT EXISTS ix_payments_status_created ON payments (status, created_at);
`).Error; err != nil {
			log.Error("Не удалось создать индексы по статусам", zap.Error(err))
			return err
		}
		log.Info("Индексы созданы")
	}

	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")
		if err := db.Exec(`
ALTER TABLE sub_categories
  DROP CONSTRAINT IF EXISTS fk_sub_categories_category,
  ADD CONSTRAINT fk_sub_categories_category FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE;
ALTER TABLE services
  DROP CONSTRAINT IF EXISTS fk_services_category,
  ADD CONSTRAINT fk_services_category FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE RESTRICT,
  DROP CONSTRAINT IF EXISTS fk_services_sub_category,
  ADD CONSTRAINT fk_services_sub_category FOREIGN KEY (sub_category_id) REFERENCES sub_categories(id) ON DELETE RESTRICT;
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_category,
  ADD CONSTRAINT fk_orders_category FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE RESTRICT,
  DROP CONSTRAINT IF EXISTS fk_orders_sub_category,
  ADD CONSTRAINT fk_orders_sub_category FOREIGN KEY (sub_category_id) REFERENCES sub_categories(id) ON DELETE RESTRICT;
`).Error; err != nil {
			log.Error("Не удалось создать внешние ключи", zap.Error(err))
			return err
		}
		log.Info("Внешние ключи успешно созданы")
	}

	log.Info("Миграция базы данных BoldServe успешно завершена")
	return nil
}
