package config

import (
	"fmt"
	"time"

	"restaurante360/models"
	"restaurante360/services/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormWriter sends gorm's SQL log through the application logger.
type gormWriter struct {
	log logger.Logger
}

func (w gormWriter) Printf(format string, v ...interface{}) {
	w.log.Debug(format, v...)
}

func ConnectDB(cfg DBConfig, env string, log logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "restaurante360.db"
		}
		dialector = sqlite.Open(dsn)
	default:
		dialector = postgres.Open(cfg.dsn())
	}

	level := gormlogger.Warn
	if env == EnvLocal {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(gormWriter{log: log}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}

	log.Info("Connected to %s database", cfg.Driver)
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return models.AutoMigrate(db)
}
