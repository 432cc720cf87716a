package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront/internal/caching"
	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
)

const userCacheTTL = time.Hour

// UserUpdate carries the mutable fields of a user. Password and id are
// never updated through this path.
type UserUpdate struct {
	Email       *string `json:"email"`
	FullName    *string `json:"full_name"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, page, pageSize int) (*common.PaginatedResponse[*models.User], error)
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type userService struct {
	userRepo repositories.UserRepository
	cacheSvc caching.CacheService
}

func NewUserService(userRepo repositories.UserRepository, cacheSvc caching.CacheService) UserService {
	return &userService{
		userRepo: userRepo,
		cacheSvc: cacheSvc,
	}
}

// GetByID checks the cache first and falls through to the store,
// populating the cache on a miss. Cache errors degrade to store reads.
func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.cacheSvc != nil {
		cached, err := s.cacheSvc.GetUser(ctx, id)
		if err != nil {
			log.Printf("User cache read failed for %s: %v", id, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetUser(ctx, user, userCacheTTL); err != nil {
			log.Printf("User cache write failed for %s: %v", id, err)
		}
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, page, pageSize int) (*common.PaginatedResponse[*models.User], error) {
	page, pageSize = common.NormalizePageParams(page, pageSize)
	offset := (page - 1) * pageSize

	users, err := s.userRepo.List(ctx, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return common.NewPaginatedResponse(users, total, page, pageSize), nil
}

// Update applies the provided fields and invalidates the cache entry.
func (s *userService) Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.IsSuperuser != nil {
		user.IsSuperuser = *update.IsSuperuser
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.invalidate(ctx, id)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidate(ctx, id)
	}
	return deleted, nil
}

func (s *userService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeleteUser(ctx, id); err != nil {
		log.Printf("User cache invalidation failed for %s: %v", id, err)
	}
}
