package repository

import (
	"context"
	"fmt"

	"marketplace_service/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type productRecord struct {
	Seq         uint   `gorm:"primaryKey;autoIncrement"`
	ProductID   string `gorm:"column:product_id;uniqueIndex;not null"`
	Name        string `gorm:"not null;default:''"`
	Description string `gorm:"not null;default:''"`
	Price       float64
	Image       string `gorm:"not null;default:''"`
}

func (productRecord) TableName() string { return "products" }

func (p productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:          p.ProductID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
	}
}

type gormProductRepository struct {
	db  *gorm.DB
	ids *timestampIDs
	log *logrus.Logger
}

// NewGormProductRepository stores products in an embedded SQLite (or any gorm) database.
func NewGormProductRepository(ctx context.Context, db *gorm.DB, logger *logrus.Logger) (domain.ProductRepository, error) {
	if err := db.WithContext(ctx).AutoMigrate(&productRecord{}); err != nil {
		return nil, fmt.Errorf("could not migrate products table: %w", err)
	}
	r := &gormProductRepository{
		db:  db,
		ids: newTimestampIDs(),
		log: logger,
	}
	existing, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	r.ids.Observe(existing)
	return r, nil
}

func (r *gormProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	record := productRecord{
		ProductID:   r.ids.Next(),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Image:       product.Image,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		r.log.Errorf("Failed to create product '%s': %v", record.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	created := record.toDomain()
	r.log.Infof("Product created successfully with ID: %s, Name: %s", created.ID, created.Name)
	return &created, nil
}

func (r *gormProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&records).Error; err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	products := make([]domain.Product, 0, len(records))
	for _, record := range records {
		products = append(products, record.toDomain())
	}
	r.log.Debugf("Retrieved %d products", len(products))
	return products, nil
}

func (r *gormProductRepository) DeleteProduct(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("product_id = ?", id).Delete(&productRecord{})
	if result.Error != nil {
		r.log.Errorf("Failed to delete product ID %s: %v", id, result.Error)
		return false, fmt.Errorf("could not delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %s", id)
		return false, nil
	}
	r.log.Infof("Product deleted successfully with ID: %s", id)
	return true, nil
}
