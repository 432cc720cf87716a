package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/caching"
	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
)

var (
	// ErrInvalidOrderUser means the ordering user does not exist or is inactive.
	ErrInvalidOrderUser = errors.New("invalid user for order")

	// ErrProductUnavailable means a requested product is missing or out of stock.
	ErrProductUnavailable = errors.New("product not available")
)

// OrderService coordinates users, products and orders for the order
// creation workflow.
type OrderService interface {
	Create(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (*models.Order, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) (*common.PaginatedResponse[*models.Order], error)
	CancelStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type orderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	cacheSvc    caching.CacheService
}

func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository, cacheSvc caching.CacheService) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		cacheSvc:    cacheSvc,
	}
}

// Create validates the user and every product, totals the prices, persists
// a pending order and invalidates the user's cart cache.
func (s *orderService) Create(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (*models.Order, error) {
	if len(productIDs) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one product", ErrProductUnavailable)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidOrderUser
	}

	var totalPrice float64
	for _, productID := range productIDs {
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up product %s: %w", productID, err)
		}
		if product == nil || !product.InStock {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, productID)
		}
		totalPrice += product.Price
	}

	order := &models.Order{
		UserID:     userID,
		ProductIDs: productIDs,
		TotalPrice: totalPrice,
		Status:     models.OrderStatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.DeleteCart(ctx, userID); err != nil {
			log.Printf("Cart cache invalidation failed for %s: %v", userID, err)
		}
	}

	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) (*common.PaginatedResponse[*models.Order], error) {
	page, pageSize = common.NormalizePageParams(page, pageSize)
	offset := (page - 1) * pageSize

	orders, err := s.orderRepo.ListByUser(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	return common.NewPaginatedResponse(orders, total, page, pageSize), nil
}

// CancelStale cancels pending orders older than the given age. Run by the
// background scheduler.
func (s *orderService) CancelStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	return s.orderRepo.CancelStalePending(ctx, cutoff)
}
