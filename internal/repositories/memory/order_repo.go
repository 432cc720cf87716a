package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
)

type orderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*models.Order
}

func NewOrderRepo() repositories.OrderRepository {
	return &orderRepo{orders: make(map[uuid.UUID]*models.Order)}
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	stored := *order
	stored.ProductIDs = append([]uuid.UUID(nil), order.ProductIDs...)
	r.orders[order.ID] = &stored
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	copied.ProductIDs = append([]uuid.UUID(nil), order.ProductIDs...)
	return &copied, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*models.Order
	for _, order := range r.orders {
		if order.UserID != userID {
			continue
		}
		copied := *order
		copied.ProductIDs = append([]uuid.UUID(nil), order.ProductIDs...)
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *orderRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, order := range r.orders {
		if order.UserID == userID {
			total++
		}
	}
	return total, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return nil
}

func (r *orderRepo) CancelStalePending(ctx context.Context, olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cancelled int64
	for _, order := range r.orders {
		if order.Status == models.OrderStatusPending && order.CreatedAt.Before(olderThan) {
			order.Status = models.OrderStatusCancelled
			order.UpdatedAt = time.Now()
			cancelled++
		}
	}
	return cancelled, nil
}
