// domain/product.go
package domain

import "context"

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)

	// DeleteProduct reports false when no product matched id.
	DeleteProduct(ctx context.Context, id string) (bool, error)
}
