package repository

import (
	"context"
	"fmt"

	"marketplace_service/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type viewCountRecord struct {
	ID    uint `gorm:"primaryKey;autoIncrement:false"`
	Count int64
}

func (viewCountRecord) TableName() string { return "view_counts" }

type gormViewCounter struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewGormViewCounter(ctx context.Context, db *gorm.DB, logger *logrus.Logger) (domain.ViewCounter, error) {
	if err := db.WithContext(ctx).AutoMigrate(&viewCountRecord{}); err != nil {
		return nil, fmt.Errorf("could not migrate view_counts table: %w", err)
	}
	return &gormViewCounter{db: db, log: logger}, nil
}

func (c *gormViewCounter) IncrementAndGet(ctx context.Context) (int64, error) {
	var record viewCountRecord
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(viewCountRecord{ID: 1}).FirstOrCreate(&record).Error; err != nil {
			return err
		}
		if err := tx.Model(&record).Update("count", gorm.Expr("count + ?", 1)).Error; err != nil {
			return err
		}
		return tx.First(&record, 1).Error
	})
	if err != nil {
		c.log.Errorf("Failed to increment view count: %v", err)
		return 0, fmt.Errorf("could not update view count: %w", err)
	}
	return record.Count, nil
}
