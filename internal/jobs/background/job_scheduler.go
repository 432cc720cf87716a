package background

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"storefront/internal/caching"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/go-co-op/gocron/v2"
)

const (
	staleOrderAge     = 24 * time.Hour
	userCountCacheKey = "storefront:stats:user_count"
	userCountCacheTTL = 10 * time.Minute
)

// JobScheduler runs periodic maintenance jobs.
type JobScheduler struct {
	scheduler gocron.Scheduler
	orderSvc  services.OrderService
	userRepo  repositories.UserRepository
	cacheSvc  caching.CacheService
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

func NewJobScheduler(orderSvc services.OrderService, userRepo repositories.UserRepository,
	cacheSvc caching.CacheService) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		orderSvc:  orderSvc,
		userRepo:  userRepo,
		cacheSvc:  cacheSvc,
		jobs:      make(map[string]gocron.Job),
	}

	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Stale pending orders get cancelled every 30 minutes.
	staleJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.cancelStaleOrders, context.Background()),
		gocron.WithName("stale-order-cancellation"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stale order job: %v", err)
	} else {
		js.jobs["stale-orders"] = staleJob
	}

	// The cached user count feeds the health and admin surfaces.
	countJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshUserCount, context.Background()),
		gocron.WithName("user-count-refresh"),
	)
	if err != nil {
		log.Printf("Failed to create user count job: %v", err)
	} else {
		js.jobs["user-count"] = countJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

func (js *JobScheduler) cancelStaleOrders(ctx context.Context) error {
	cancelled, err := js.orderSvc.CancelStale(ctx, staleOrderAge)
	if err != nil {
		log.Printf("Stale order cancellation failed: %v", err)
		return err
	}
	if cancelled > 0 {
		log.Printf("Cancelled %d stale pending orders", cancelled)
	}
	return nil
}

func (js *JobScheduler) refreshUserCount(ctx context.Context) error {
	total, err := js.userRepo.Count(ctx)
	if err != nil {
		log.Printf("User count refresh failed: %v", err)
		return err
	}
	if js.cacheSvc == nil {
		return nil
	}
	if err := js.cacheSvc.SetString(ctx, userCountCacheKey, fmt.Sprintf("%d", total), userCountCacheTTL); err != nil {
		log.Printf("Failed to cache user count: %v", err)
		return err
	}
	return nil
}

// JobNames lists the registered jobs, for introspection in tests and logs.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}
