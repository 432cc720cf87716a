package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
)

const imageURLExpiry = 15 * time.Minute

type ProductService interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, page, pageSize int) (*common.PaginatedResponse[*models.Product], error)

	UploadImage(ctx context.Context, productID uuid.UUID, contentType string, reader io.Reader, size int64) error
	ImageURL(ctx context.Context, productID uuid.UUID) (string, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	minioSvc    MinioService // nil when object storage is not configured
}

func NewProductService(productRepo repositories.ProductRepository, minioSvc MinioService) ProductService {
	return &productService{
		productRepo: productRepo,
		minioSvc:    minioSvc,
	}
}

func (s *productService) Create(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if product.Price < 0 {
		return fmt.Errorf("product price cannot be negative")
	}
	return s.productRepo.Create(ctx, product)
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) Update(ctx context.Context, product *models.Product) error {
	if product.Price < 0 {
		return fmt.Errorf("product price cannot be negative")
	}
	return s.productRepo.Update(ctx, product)
}

// Delete removes the product row and, best-effort, its stored image.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, nil
	}

	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted && product.ImageObject != nil && s.minioSvc != nil {
		if err := s.minioSvc.DeleteImage(ctx, ProductImageBucket, *product.ImageObject); err != nil {
			log.Printf("Failed to delete image for product %s: %v", id, err)
		}
	}
	return deleted, nil
}

func (s *productService) List(ctx context.Context, page, pageSize int) (*common.PaginatedResponse[*models.Product], error) {
	page, pageSize = common.NormalizePageParams(page, pageSize)
	offset := (page - 1) * pageSize

	products, err := s.productRepo.List(ctx, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	total, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	return common.NewPaginatedResponse(products, total, page, pageSize), nil
}

func (s *productService) UploadImage(ctx context.Context, productID uuid.UUID, contentType string, reader io.Reader, size int64) error {
	if s.minioSvc == nil {
		return fmt.Errorf("object storage is not configured")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("product %s not found", productID)
	}

	objectName := fmt.Sprintf("products/%s", productID)
	if err := s.minioSvc.UploadImage(ctx, ProductImageBucket, objectName, contentType, reader, size); err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}

	product.ImageObject = &objectName
	return s.productRepo.Update(ctx, product)
}

func (s *productService) ImageURL(ctx context.Context, productID uuid.UUID) (string, error) {
	if s.minioSvc == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return "", err
	}
	if product == nil || product.ImageObject == nil {
		return "", fmt.Errorf("product image not found")
	}

	return s.minioSvc.GetPresignedURL(ctx, ProductImageBucket, *product.ImageObject, imageURLExpiry)
}
