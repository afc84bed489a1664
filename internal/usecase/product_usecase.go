package usecase

import (
	"context"
	"fmt"
	"io"

	"marketplace_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// ImageUpload is the file part of a product submission.
type ImageUpload struct {
	FieldName string
	Filename  string
	Content   io.Reader
}

type ProductUseCase interface {
	CreateProduct(ctx context.Context, product *domain.Product, image *ImageUpload) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type productUseCase struct {
	productRepo domain.ProductRepository
	images      domain.ImageStore
	log         *logrus.Logger
}

func NewProductUseCase(pRepo domain.ProductRepository, images domain.ImageStore, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo: pRepo,
		images:      images,
		log:         logger,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, product *domain.Product, image *ImageUpload) (*domain.Product, error) {
	if image == nil || image.Content == nil {
		uc.log.Warnf("Use Case: Attempted to create product '%s' without an image", product.Name)
		return nil, domain.ErrImageRequired
	}

	uc.log.Infof("Use Case: Storing image '%s' for product '%s'", image.Filename, product.Name)
	imagePath, err := uc.images.Store(ctx, image.Content, image.FieldName, image.Filename)
	if err != nil {
		uc.log.Errorf("Use Case: Image store failed for product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not store product image: %w", err)
	}

	toCreate := *product
	toCreate.Image = imagePath

	createdProduct, err := uc.productRepo.CreateProduct(ctx, &toCreate)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", toCreate.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %s", createdProduct.Name, createdProduct.ID)
	return createdProduct, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	uc.log.Infof("Use Case: Attempting to delete product ID %s", id)
	removed, err := uc.productRepo.DeleteProduct(ctx, id)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to delete product ID %s: %v", id, err)
		return err
	}
	if !removed {
		uc.log.Warnf("Use Case: Product ID %s not found for deletion", id)
		return fmt.Errorf("delete product %s: %w", id, domain.ErrProductNotFound)
	}
	// The stored image is left in place.
	uc.log.Infof("Use Case: Product deleted successfully for ID %s", id)
	return nil
}

func (uc *productUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := uc.productRepo.ListProducts(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	uc.log.Debugf("Use Case: Retrieved %d products", len(products))
	return products, nil
}
