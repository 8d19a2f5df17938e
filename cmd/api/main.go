package main

import (
	"context"
	"log"
	"time"

	"account-service/config"
	"account-service/internal/events"
	"account-service/internal/handler"
	"account-service/internal/middleware"
	"account-service/internal/redis"
	"account-service/internal/repository"
	"account-service/internal/server"
	"account-service/internal/services"
	"account-service/internal/storage"
	"account-service/pkg/database"
	"account-service/pkg/logger"

	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logMode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		logMode = logger.ProductionMode
	}
	l := logger.New(logMode, cfg.LogFile)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		l.Errorf("Failed to open %s store: %v", cfg.StoreDriver, err)
		return
	}
	defer closeStore()
	l.Infof("Using %s user store", cfg.StoreDriver)

	// Interfaces stay nil when the backing service is disabled.
	var (
		cache     services.ProfileCache
		limiter   middleware.LoginLimiter
		archive   services.ImageArchive
		publisher services.EventPublisher
	)

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			l.Errorf("Failed to connect to redis: %v", err)
			return
		}
		defer client.Close()

		cache = redis.NewCacheStore(client, redis.CacheConfig{ProfileTTL: cfg.Redis.ProfileCacheTTL})
		limiter = redis.NewRateLimiter(client, redis.RateLimitConfig{
			LoginLimit:  cfg.Redis.LoginRateLimit,
			LoginWindow: cfg.Redis.LoginRateWindow,
		})
		publisher = events.NewRedisPublisher(client, events.DefaultChannel)
		l.Infof("Redis profile cache, login rate limit and account events enabled")
	}

	if cfg.S3.Enabled() {
		client, err := storage.NewClient(ctx, storage.S3Config{
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Endpoint:  cfg.S3.Endpoint,
		})
		if err != nil {
			l.Errorf("Failed to create s3 client: %v", err)
			return
		}
		archive = client
		l.Infof("Archiving profile images to s3://%s", cfg.S3.Bucket)
	}

	userService := services.NewUserService(repo, cache, archive, l).WithPublisher(publisher)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		User:   handler.NewUserHandler(userService),
		Health: handler.NewHealthHandler(userService),
	}, limiter)

	if err := srv.Start(); err != nil {
		l.Errorf("Server exited: %v", err)
	}
}

// openStore connects the configured user store and returns a func releasing it.
func openStore(ctx context.Context, cfg *config.Config) (repository.UserRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, coll, err := database.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}
		return repository.NewMongoUserRepository(coll), closeFn, nil

	case config.StoreMemory:
		return repository.NewMemoryUserRepository(), func() {}, nil

	default:
		db, err := database.Connect(cfg.Postgres, gormlogger.Warn)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.InitSchema(db); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
		return repository.NewUserRepository(db), func() { _ = database.Close(db) }, nil
	}
}
