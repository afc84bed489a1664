package repository

import (
	"context"
	"database/sql"
	"fmt"

	"marketplace_service/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const productsSchema = `
        CREATE TABLE IF NOT EXISTS products (
            seq         BIGSERIAL PRIMARY KEY,
            id          TEXT NOT NULL UNIQUE,
            name        TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL DEFAULT '',
            price       DOUBLE PRECISION NOT NULL DEFAULT 0,
            image       TEXT NOT NULL DEFAULT ''
        )`

type postgresProductRepository struct {
	db  *sql.DB
	ids *timestampIDs
	log *logrus.Logger
}

// NewPostgresProductRepository creates the products table when missing. Rows keep
// insertion order through the seq column.
func NewPostgresProductRepository(ctx context.Context, db *sql.DB, logger *logrus.Logger) (domain.ProductRepository, error) {
	r := &postgresProductRepository{
		db:  db,
		ids: newTimestampIDs(),
		log: logger,
	}
	if _, err := db.ExecContext(ctx, productsSchema); err != nil {
		return nil, fmt.Errorf("could not ensure products table: %w", err)
	}
	existing, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	r.ids.Observe(existing)
	return r, nil
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (id, name, description, price, image)
        VALUES ($1, $2, $3, $4, $5)`
	created := *product
	created.ID = r.ids.Next()

	_, err := r.db.ExecContext(ctx, query, created.ID, created.Name, created.Description, created.Price, created.Image)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Duplicate product ID %s generated: %s", created.ID, pqErr.Message)
			return nil, fmt.Errorf("product with id %s already exists", created.ID)
		}
		r.log.Errorf("Failed to create product '%s': %v", created.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	r.log.Infof("Product created successfully with ID: %s, Name: %s", created.ID, created.Name)
	return &created, nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
        SELECT id, name, description, price, image
        FROM products
        ORDER BY seq ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Image); err != nil {
			r.log.Errorf("Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during products list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	r.log.Debugf("Retrieved %d products", len(products))
	return products, nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM products WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.log.Errorf("Failed to delete product ID %s: %v", id, err)
		return false, fmt.Errorf("could not delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting product ID %s: %v", id, err)
		return false, fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %s", id)
		return false, nil
	}
	r.log.Infof("Product deleted successfully with ID: %s", id)
	return true, nil
}
