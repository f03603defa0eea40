package main

import (
	"context"
	"log"
	"os"

	actionlogAdapter "github.com/42roma/monitor/internal/adapter/actionlog"
	redisAdapter "github.com/42roma/monitor/internal/adapter/cache/redis"
	"github.com/42roma/monitor/internal/adapter/feeds"
	fileAdapter "github.com/42roma/monitor/internal/adapter/file"
	mongoAdapter "github.com/42roma/monitor/internal/adapter/mongo"
	natsAdapter "github.com/42roma/monitor/internal/adapter/nats"
	"github.com/42roma/monitor/internal/adapter/oauth"
	"github.com/42roma/monitor/internal/authz"
	"github.com/42roma/monitor/internal/config"
	"github.com/42roma/monitor/internal/entity"
	"github.com/42roma/monitor/internal/port/cache"
	httpPort "github.com/42roma/monitor/internal/port/http"
	"github.com/42roma/monitor/internal/port/repository"
	"github.com/42roma/monitor/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	configPath := "config.yaml"
	if cp := os.Getenv("CONFIG_PATH"); cp != "" {
		configPath = cp
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapConfig := zap.NewProductionConfig()
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	if cfg.HTTP.SessionSecret == "" {
		logger.Fatal("http.session_secret must be set (MONITOR_HTTP_SESSION_SECRET)")
	}

	logger.Info("Configuration loaded successfully!",
		zap.String("http_port", cfg.HTTP.Port),
		zap.String("storage_backend", cfg.Storage.Backend),
		zap.Int("authorized_users", len(cfg.AuthorizedUsers)),
	)

	actionLog := actionlogAdapter.NewFileLogger(cfg.Storage.ActionLogFile, logger)

	var announcementRepo repository.AnnouncementRepository
	switch cfg.Storage.Backend {
	case "mongo":
		mongoClient, err := mongoAdapter.NewMongoDBConnection(&cfg.Mongo)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			if err := mongoClient.Disconnect(context.TODO()); err != nil {
				logger.Error("Failed to disconnect MongoDB", zap.Error(err))
			} else {
				logger.Info("MongoDB connection closed.")
			}
		}()
		logger.Info("Successfully connected to MongoDB!")
		announcementRepo = mongoAdapter.NewAnnouncementMongoRepository(mongoClient, cfg.Mongo.Database)
	default:
		announcementRepo = fileAdapter.NewAnnouncementFileRepository(cfg.Storage.AnnouncementsDir, logger)
	}
	logger.Info("Announcement repository initialized", zap.String("backend", cfg.Storage.Backend))

	bannerRepo := fileAdapter.NewBannerFileRepository(cfg.Storage.BannerFile, entity.Banner{
		Visible: cfg.Banner.DefaultVisible,
		Text:    cfg.Banner.DefaultText,
	})
	maintenanceRepo := fileAdapter.NewMaintenanceFileRepository(cfg.Storage.MaintenanceFile)

	var cacheRepo cache.CacheRepository
	if cfg.Redis.Address != "" {
		redisClient, err := redisAdapter.NewRedisClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			cacheRepo = redisAdapter.NewRedisCacheRepository(redisClient, logger)
		}
	}

	var publisher usecase.EventPublisherInterface
	if cfg.NATS.URL != "" {
		natsPublisher, err := natsAdapter.NewNATSPublisher(&cfg.NATS, logger)
		if err != nil {
			logger.Warn("NATS unavailable, announcement events disabled", zap.Error(err))
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
		}
	}

	policy := authz.NewPolicy(cfg.AuthorizedUsers, actionLog, logger)

	announcementUC := usecase.NewAnnouncementUseCase(announcementRepo, policy, cacheRepo, publisher, actionLog, logger)
	bannerUC := usecase.NewBannerUseCase(bannerRepo, actionLog, logger)
	maintenanceUC := usecase.NewMaintenanceUseCase(maintenanceRepo, actionLog, logger)

	oauthClient := oauth.NewClient(&cfg.OAuth, logger)
	feedsClient := feeds.NewClient(&cfg.Feeds, logger)

	sessions := httpPort.NewSessionManager(cfg.HTTP.SessionSecret, cfg.HTTP.SessionTTL, logger)
	router := httpPort.NewRouter(
		sessions,
		httpPort.NewAuthHandler(oauthClient, sessions, logger),
		httpPort.NewDashboardHandler(announcementUC, bannerUC, maintenanceUC, feedsClient, oauthClient, cfg.OAuth.APIBaseURL, logger),
		httpPort.NewAnnouncementHandler(announcementUC, logger),
		httpPort.NewStaffHandler(bannerUC, maintenanceUC, actionLog, cfg.Feeds.NagiosURL, logger),
		logger,
	)

	server := httpPort.NewServer(&cfg.HTTP, logger, router)
	if err := server.Run(); err != nil {
		logger.Fatal("HTTP server stopped", zap.Error(err))
	}
}
