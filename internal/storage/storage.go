package storage

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/SH20RAJ/sketchflow-sub001/internal/config"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	db   *gorm.DB
	once sync.Once
)

type txContextKey struct{}

func GetDb() *gorm.DB {
	once.Do(func() {
		log := logger.GetLogger()

		database, err := Open(config.GetEnv().DatabaseDsn)
		if err != nil {
			log.Error("Failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}

		db = database
	})

	return db
}

// Open creates a pooled gorm connection. Exposed separately from GetDb so
// integration tests can point repositories at a throwaway database.
func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return database, nil
}

// SetDb replaces the connection returned by GetDb
func SetDb(database *gorm.DB) {
	once.Do(func() {})
	db = database
}

// FromContext returns the transaction bound to ctx, or the shared
// connection scoped to ctx when no transaction is running.
func FromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}

	return GetDb().WithContext(ctx)
}

type Transactor interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type GormTransactor struct{}

// InTransaction runs fn in a database transaction. Repositories called with
// the ctx passed to fn join the transaction; any error rolls everything back.
// Nested calls reuse the outer transaction.
func (t *GormTransactor) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return GetDb().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}
