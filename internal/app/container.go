package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"gigboard/internal/config"
	"gigboard/internal/database"
	dbpostgres "gigboard/internal/database/postgres"
	"gigboard/internal/database/schema"
	"gigboard/internal/delivery/http/handler"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/delivery/http/routes"
	"gigboard/internal/infrastructure/cache"
	"gigboard/internal/infrastructure/geocode"
	"gigboard/internal/notify"
	"gigboard/internal/pkg/jwt"
	"gigboard/internal/pkg/secrets"
	"gigboard/internal/repository"
	"gigboard/internal/usecase"
	"gigboard/internal/ws"
)

// Container wires configuration into the full dependency graph. Everything
// the server needs hangs off it; Close tears down in reverse order.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB         database.DB
	Cache      *cache.Redis
	Hub        *ws.Hub
	Dispatcher *notify.QueueDispatcher
	Worker     *notify.Worker

	Registry *routes.Registry
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := schema.Ensure(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	sealer, err := secrets.NewContactSealer(cfg.Secrets.ContactKeyHex)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("contact sealer: %w", err)
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	geocoder := geocode.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.Timeout, redisCache, logger)
	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	hub := ws.NewHub(logger)
	dispatcher := notify.NewQueueDispatcher(cfg.Redis, logger)

	userRepo := repository.NewPostgresUserRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	testimonialRepo := repository.NewPostgresTestimonialRepository(db)
	chatRepo := repository.NewPostgresChatRepository(db)
	notificationRepo := repository.NewPostgresNotificationRepository(db)

	worker := notify.NewWorker(cfg.Redis, notificationRepo, hub, logger)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	jobUC := usecase.NewJobUsecase(jobRepo, testimonialRepo, sealer, geocoder, dispatcher, hub, redisCache, logger)
	discoveryUC := usecase.NewDiscoveryUsecase(jobRepo, geocoder, redisCache, logger)
	chatUC := usecase.NewChatUsecase(jobRepo, chatRepo, dispatcher, hub, logger)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)

	registry := &routes.Registry{
		Auth:          handler.NewAuthHandler(authUC),
		Jobs:          handler.NewJobsHandler(jobUC, discoveryUC),
		Chats:         handler.NewChatHandler(chatUC),
		Notifications: handler.NewNotificationHandler(notificationUC),
		Health:        handler.NewHealthHandler(db),
		AuthMW:        middleware.NewAuthMiddleware(jwtSvc),
		Stream:        ws.NewHandler(hub, logger),
	}

	return &Container{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Cache:      redisCache,
		Hub:        hub,
		Dispatcher: dispatcher,
		Worker:     worker,
		Registry:   registry,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Dispatcher != nil {
		_ = c.Dispatcher.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
