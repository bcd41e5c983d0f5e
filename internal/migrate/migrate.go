package migrate

import (
	"context"

	"distributor-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto, uuid-ossp
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы и UNIQUE
	CreateFKsViaSQL        bool // FK через SQL (поверх GORM-constraint)
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

func MigrateDistributorDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных дистрибьютора")

	// Расширения
	if opt.CreateExtensions {
		log.Info("Создание расширений PostgreSQL")
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
			log.Error("Не удалось включить расширение uuid-ossp", zap.Error(err))
			return err
		}
		log.Info("Расширения PostgreSQL успешно созданы")
	}

	// Таблицы
	log.Info("Создание таблиц users, orders, payments, product_stocks")
	if err := db.AutoMigrate(&models.User{}, &models.Order{}, &models.Payment{}, &models.ProductStock{}); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}
	log.Info("Таблицы успешно созданы")

	// Триггер updated_at для orders
	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггера updated_at для orders")
		if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated
BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("Не удалось создать триггер updated_at", zap.Error(err))
			return err
		}
		log.Info("Триггер updated_at успешно создан")
	}

	// CHECK-constraint
	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")

		// Роли (так как храним TEXT)
		if err := db.Exec(`
ALTER TABLE users
  DROP CONSTRAINT IF EXISTS chk_users_role_allowed;
ALTER TABLE users
  ADD CONSTRAINT chk_users_role_allowed
  CHECK (role IN ('shopkeeper','salesman','warehouse_manager','manufacturer'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для ролей", zap.Error(err))
			return err
		}

		// Статусы заказа
		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('placed','confirmed','dispatched','delivered',
                    'stock_requested','payment_requested','paid_to_manufacturer'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов", zap.Error(err))
			return err
		}

		// Количество > 0
		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_quantity_gt_zero;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_quantity_gt_zero
  CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для orders.quantity", zap.Error(err))
			return err
		}

		// Суммы неотрицательные, остаток не больше полной стоимости
		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_amounts_non_negative;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_amounts_non_negative
  CHECK (total_amount_cents >= 0 AND advance_cents >= 0
         AND remaining_cents >= 0 AND remaining_cents <= total_amount_cents);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для сумм заказа", zap.Error(err))
			return err
		}

		// Тип платежа
		if err := db.Exec(`
ALTER TABLE payments
  DROP CONSTRAINT IF EXISTS chk_payments_type_allowed;
ALTER TABLE payments
  ADD CONSTRAINT chk_payments_type_allowed
  CHECK (payment_type IN ('advance','remaining','stock_supply'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для типов платежей", zap.Error(err))
			return err
		}

		// Сумма платежа > 0
		if err := db.Exec(`
ALTER TABLE payments
  DROP CONSTRAINT IF EXISTS chk_payments_amount_gt_zero;
ALTER TABLE payments
  ADD CONSTRAINT chk_payments_amount_gt_zero
  CHECK (amount_cents > 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для payments.amount_cents", zap.Error(err))
			return err
		}

		// Остаток на складе не уходит в минус
		if err := db.Exec(`
ALTER TABLE product_stocks
  DROP CONSTRAINT IF EXISTS chk_product_stocks_quantity_non_negative;
ALTER TABLE product_stocks
  ADD CONSTRAINT chk_product_stocks_quantity_non_negative
  CHECK (quantity >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для product_stocks.quantity", zap.Error(err))
			return err
		}

		log.Info("CHECK-ограничения успешно созданы")
	}

	// Индексы
	if opt.CreateIndexes {
		log.Info("Создание индексов")

		// Для выборок: заказы пользователя по дате
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_user_created
ON orders (user_id, created_at DESC);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_orders_user_created", zap.Error(err))
			return err
		}

		// Для выборок по статусу
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_status_created
ON orders (status, created_at DESC);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_orders_status_created", zap.Error(err))
			return err
		}

		// Журнал платежей заказа читается в порядке записи
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_payments_order_created
ON payments (order_id, created_at ASC);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_payments_order_created", zap.Error(err))
			return err
		}

		log.Info("Индексы успешно созданы")
	}

	// Внешние ключи
	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")

		// orders.user_id -> users.id
		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_user,
  ADD CONSTRAINT fk_orders_user
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE RESTRICT;
`).Error; err != nil {
			log.Error("Не удалось создать FK orders.user_id -> users.id", zap.Error(err))
			return err
		}

		// payments.order_id -> orders.id (журнал живёт вместе с заказом)
		if err := db.Exec(`
ALTER TABLE payments
  DROP CONSTRAINT IF EXISTS fk_payments_order,
  ADD CONSTRAINT fk_payments_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("Не удалось создать FK payments.order_id -> orders.id", zap.Error(err))
			return err
		}

		log.Info("Внешние ключи успешно созданы")
	}

	log.Info("Миграция базы данных дистрибьютора успешно завершена")
	return nil
}
