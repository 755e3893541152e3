package db

import (
	"strings"
	"time"

	"offer-marketplace/internal/domain/investment"
	"offer-marketplace/internal/domain/offer"
	"offer-marketplace/internal/domain/user"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn, logLevel string) (*gorm.DB, error) {
	return open(mysql.Open(dsn), logLevel)
}

// OpenGormWithDialector opens gorm over an existing dialector (tests, sqlmock).
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	return open(dial, "warn")
}

func open(dial gorm.Dialector, logLevel string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(gormLogLevel(logLevel)),
		NowFunc:              func() time.Time { return time.Now().UTC() },
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables of every persisted aggregate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&offer.Offer{},
		&offer.Image{},
		&investment.Investment{},
	)
}

func gormLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
