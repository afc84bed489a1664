package repository

import (
	"context"
	"fmt"

	"marketplace_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type fileProductRepository struct {
	*memoryProductRepository
	path string
}

// NewFileProductRepository mirrors the product list to a JSON array at path.
// The whole list is rewritten on every mutation.
func NewFileProductRepository(path string, logger *logrus.Logger) domain.ProductRepository {
	r := &fileProductRepository{
		memoryProductRepository: newMemoryProductRepository(logger),
		path:                    path,
	}
	r.load()
	return r
}

func (r *fileProductRepository) load() {
	var products []domain.Product
	found, err := readJSONFile(r.path, &products)
	if err != nil {
		r.log.Errorf("Failed to read or parse %s, starting with no products: %v", r.path, err)
		return
	}
	if !found {
		r.log.Infof("Products file %s not found, starting with no products", r.path)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	r.products = products
	r.ids.Observe(products)
	r.log.Infof("Loaded %d products from %s", len(products), r.path)
}

func (r *fileProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := r.appendLocked(product)
	if err := r.saveLocked(); err != nil {
		r.products = r.products[:len(r.products)-1]
		r.log.Errorf("Failed to persist product '%s': %v", created.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	r.log.Infof("Product created successfully with ID: %s, Name: %s", created.ID, created.Name)
	return created, nil
}

func (r *fileProductRepository) DeleteProduct(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, removed, ok := r.removeLocked(id)
	if !ok {
		r.log.Warnf("Attempted to delete non-existent product ID %s", id)
		return false, nil
	}
	if err := r.saveLocked(); err != nil {
		r.insertLocked(i, removed)
		r.log.Errorf("Failed to persist deletion of product ID %s: %v", id, err)
		return false, fmt.Errorf("could not delete product: %w", err)
	}
	r.log.Infof("Product deleted successfully with ID: %s", id)
	return true, nil
}

func (r *fileProductRepository) saveLocked() error {
	return writeJSONFile(r.path, r.products, true)
}
