package repository

import (
	"context"
	"sync"

	"marketplace_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type memoryProductRepository struct {
	mu       sync.RWMutex
	products []domain.Product
	ids      *timestampIDs
	log      *logrus.Logger
}

// NewMemoryProductRepository keeps products in process memory only; they are lost on restart.
func NewMemoryProductRepository(logger *logrus.Logger) domain.ProductRepository {
	return newMemoryProductRepository(logger)
}

func newMemoryProductRepository(logger *logrus.Logger) *memoryProductRepository {
	return &memoryProductRepository{
		products: []domain.Product{},
		ids:      newTimestampIDs(),
		log:      logger,
	}
}

func (r *memoryProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := r.appendLocked(product)
	r.log.Infof("Product created successfully with ID: %s, Name: %s", created.ID, created.Name)
	return created, nil
}

func (r *memoryProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, len(r.products))
	copy(products, r.products)
	r.log.Debugf("Retrieved %d products", len(products))
	return products, nil
}

func (r *memoryProductRepository) DeleteProduct(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, _, ok := r.removeLocked(id); !ok {
		r.log.Warnf("Attempted to delete non-existent product ID %s", id)
		return false, nil
	}
	r.log.Infof("Product deleted successfully with ID: %s", id)
	return true, nil
}

func (r *memoryProductRepository) appendLocked(product *domain.Product) *domain.Product {
	created := *product
	created.ID = r.ids.Next()
	r.products = append(r.products, created)
	return &created
}

// removeLocked drops the first product matching id and returns it with its former index.
func (r *memoryProductRepository) removeLocked(id string) (int, domain.Product, bool) {
	for i := range r.products {
		if r.products[i].ID == id {
			removed := r.products[i]
			r.products = append(r.products[:i], r.products[i+1:]...)
			return i, removed, true
		}
	}
	return -1, domain.Product{}, false
}

func (r *memoryProductRepository) insertLocked(i int, product domain.Product) {
	r.products = append(r.products, domain.Product{})
	copy(r.products[i+1:], r.products[i:])
	r.products[i] = product
}
