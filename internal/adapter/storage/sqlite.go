package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var _ BlobStorage = (*SQLiteStorage)(nil)

type cartBlob struct {
	Key       string `gorm:"column:blob_key;primaryKey"`
	Data      []byte `gorm:"column:data;not null"`
	UpdatedAt time.Time
}

func (cartBlob) TableName() string {
	return "cart_blobs"
}

// A SQLiteStorage keeps blobs in a single SQLite table managed by gorm.
type SQLiteStorage struct {
	db *gorm.DB
}

// NewSQLiteStorage opens the database at dsn and creates
// the cart_blobs table when it is missing.
func NewSQLiteStorage(ctx context.Context, dsn string) (SQLiteStorage, error) {
	const op = "NewSQLiteStorage"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return SQLiteStorage{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&cartBlob{}); err != nil {
		return SQLiteStorage{}, fmt.Errorf("%s: failed to migrate: %w", op, err)
	}

	slog.Info("sqlite storage is ready", "op", op)
	return SQLiteStorage{db: db}, nil
}

func (s SQLiteStorage) Load(ctx context.Context, key string) ([]byte, error) {
	const op = "SQLiteStorage.Load"

	var b cartBlob
	err := s.db.WithContext(ctx).Take(&b, "blob_key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(op, key)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b.Data, nil
}

func (s SQLiteStorage) Save(ctx context.Context, key string, blob []byte) error {
	const op = "SQLiteStorage.Save"

	if blob == nil {
		blob = []byte{}
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blob_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&cartBlob{Key: key, Data: blob}).Error
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s SQLiteStorage) Delete(ctx context.Context, key string) error {
	const op = "SQLiteStorage.Delete"

	res := s.db.WithContext(ctx).Delete(&cartBlob{}, "blob_key = ?", key)
	if res.Error != nil {
		return fmt.Errorf("%s: %w", op, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(op, key)
	}
	return nil
}

func (s SQLiteStorage) Close() {
	const op = "SQLiteStorage.Close"
	log := slog.With("op", op)

	sqlDB, err := s.db.DB()
	if err != nil {
		log.Error("failed to get connection pool", "err", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sqlite storage is closed")
}
