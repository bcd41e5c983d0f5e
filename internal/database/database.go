package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

const (
	connectAttempts = 20
	connectDelay    = 3 * time.Second
)

// ConnectDB подключается к Postgres с ограниченным числом повторов —
// при старте в docker-compose база может подниматься дольше сервиса.
func ConnectDB(cfg *Config, log *zap.Logger) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			log.Info("database connected",
				zap.String("host", cfg.Host),
				zap.String("db", cfg.Name),
				zap.Int("attempt", attempt))
			return db
		}
		log.Warn("database not ready, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", connectAttempts),
			zap.Error(err))
		time.Sleep(connectDelay)
	}
	log.Fatal("failed to connect to database", zap.Error(err))
	return nil
}

func CloseDB(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("failed to get sql.DB for close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("failed to close database", zap.Error(err))
	}
}
