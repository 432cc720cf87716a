package main

import (
	"context"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	"storefront/internal/caching"
	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/jobs"
	"storefront/internal/jobs/background"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/repositories/memory"
	"storefront/internal/services"
	"storefront/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Storage backend
	var (
		db          repositories.Database
		userRepo    repositories.UserRepository
		productRepo repositories.ProductRepository
		orderRepo   repositories.OrderRepository
	)
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		db = pool
		userRepo = repositories.NewUserRepo(pool)
		productRepo = repositories.NewProductRepo(pool)
		orderRepo = repositories.NewOrderRepo(pool)
	case config.BackendMemory:
		log.Println("Using in-memory storage backend")
		userRepo = memory.NewUserRepo()
		productRepo = memory.NewProductRepo()
		orderRepo = memory.NewOrderRepo()
	}

	// Cache
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Object storage
	minioSvc, err := services.NewMinioService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(ctx, services.ProductImageBucket); err != nil {
		log.Printf("Image bucket unavailable, uploads will fail: %v", err)
	}

	// Auth primitives
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token codec: %v", err)
	}

	// Background worker
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	var notifier services.WelcomeNotifier
	var worker *jobs.Worker
	if cfg.WorkerEnabled {
		workerCfg := config.DefaultWorkerConfig()
		if cfg.WorkerConfigPath != "" {
			workerCfg, err = config.LoadWorkerConfig(cfg.WorkerConfigPath)
			if err != nil {
				log.Fatalf("Failed to load worker config: %v", err)
			}
		}

		var mailer jobs.Mailer
		if cfg.SMTPHost != "" {
			mailer = jobs.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
		} else {
			mailer = jobs.NewLogMailer()
		}

		asynqClient := asynq.NewClient(redisOpt)
		defer asynqClient.Close()
		notifier = jobs.NewNotifier(asynqClient)

		worker = jobs.NewWorker(redisOpt, workerCfg, jobs.NewEmailProcessor(mailer))
		worker.Start()
		defer worker.Stop()
	}

	// Services
	authSvc := services.NewAuthService(userRepo, hasher, codec, notifier)
	userSvc := services.NewUserService(userRepo, cacheSvc)
	productSvc := services.NewProductService(productRepo, minioSvc)
	orderSvc := services.NewOrderService(orderRepo, productRepo, userRepo, cacheSvc)

	// Periodic jobs
	scheduler, err := background.NewJobScheduler(orderSvc, userRepo, cacheSvc)
	if err != nil {
		log.Fatalf("Failed to initialize job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Scheduler shutdown error: %v", err)
		}
	}()

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userSvc)
	userHandlers := handlers.NewUserHandlers(userSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	healthHandlers := handlers.NewHealthHandlers(db, cacheSvc)

	e := echo.New()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	v1 := e.Group("/v1")

	// Authentication routes (no JWT required)
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandlers.Register)
	authGroup.POST("/login", authHandlers.Login)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.JWT(codec, userRepo))

	protected.GET("/me", authHandlers.Me)

	protected.GET("/users", userHandlers.ListUsers)
	protected.GET("/users/:id", userHandlers.GetUser)
	protected.PUT("/users/:id", userHandlers.UpdateUser)
	protected.DELETE("/users/:id", userHandlers.DeleteUser)

	protected.GET("/products", productHandlers.ListProducts)
	protected.GET("/products/:id", productHandlers.GetProduct)
	protected.GET("/products/:id/image", productHandlers.GetProductImageURL)

	adminProducts := protected.Group("/products", middleware.RequireSuperuser())
	adminProducts.POST("", productHandlers.CreateProduct)
	adminProducts.PUT("/:id", productHandlers.UpdateProduct)
	adminProducts.DELETE("/:id", productHandlers.DeleteProduct)
	adminProducts.POST("/:id/image", productHandlers.UploadProductImage)

	protected.GET("/orders", orderHandlers.ListOrders)
	protected.POST("/orders", orderHandlers.CreateOrder)
	protected.GET("/orders/:id", orderHandlers.GetOrder)

	log.Printf("Storefront server starting on port %d", cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
