package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avinash-a11y/insta-clone/internal/cache"
	"github.com/avinash-a11y/insta-clone/internal/config"
	"github.com/avinash-a11y/insta-clone/internal/domain"
	"github.com/avinash-a11y/insta-clone/internal/events"
	"github.com/avinash-a11y/insta-clone/internal/handler"
	"github.com/avinash-a11y/insta-clone/internal/reconciler"
	"github.com/avinash-a11y/insta-clone/internal/repository"
	"github.com/avinash-a11y/insta-clone/internal/service"
	"github.com/avinash-a11y/insta-clone/internal/store"
	"github.com/avinash-a11y/insta-clone/pkg/database"
	pkglog "github.com/avinash-a11y/insta-clone/pkg/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		ServiceName: "insta-clone",
	})
	l := pkglog.L()

	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.AutoMigrate(db,
		&domain.UserModel{},
		&domain.FollowModel{},
		&domain.PostModel{},
		&domain.LikeModel{},
		&domain.CommentModel{},
		&domain.StoryModel{},
		&domain.NotificationModel{},
	); err != nil {
		l.Fatal().Err(err).Msg("failed to run database migrations")
	}

	followStore, err := store.NewRedisFollowStore(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to redis follow store")
	}
	defer followStore.Close()

	searchCache, err := cache.NewRedisSearchCache(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, "insta")
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to redis search cache")
	}
	defer searchCache.Close()

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Brokers != "" {
		kp, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			l.Fatal().Err(err).Msg("failed to create kafka publisher")
		}
		publisher = kp
		l.Info().Str("topic", cfg.Kafka.Topic).Msg("engagement event publishing enabled")
	} else {
		l.Info().Msg("no kafka brokers configured, engagement events disabled")
	}

	userRepo := repository.NewGormUserRepository(db)
	followRepo := repository.NewGormFollowRepository(db)
	postRepo := repository.NewGormPostRepository(db)
	storyRepo := repository.NewGormStoryRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)

	userService := service.NewUserService(userRepo, followRepo)
	graphService := service.NewSocialGraphService(userRepo, followRepo, notificationRepo, followStore, publisher)
	contentService := service.NewContentService(userRepo, postRepo, storyRepo)
	feedService := service.NewFeedService(followRepo, postRepo, storyRepo)
	engagementService := service.NewEngagementService(postRepo, userRepo, notificationRepo, publisher)
	searchService := service.NewSearchService(userRepo, postRepo, searchCache, cfg.Search.CacheTTL)
	notificationService := service.NewNotificationService(notificationRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := reconciler.New(followStore, followRepo, cfg.Reconciler)
	rec.Start(ctx)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(pkglog.GinMiddleware(l))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := handler.NewHandler(
		userService,
		graphService,
		contentService,
		feedService,
		engagementService,
		searchService,
		notificationService,
	)
	h.RegisterRoutes(engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		l.Info().Str("addr", srv.Addr).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("http server shutdown error")
	}

	rec.Stop()
	select {
	case <-rec.Done():
	case <-shutdownCtx.Done():
		l.Warn().Msg("timed out waiting for reconciler to stop")
	}

	if err := publisher.Close(); err != nil {
		l.Error().Err(err).Msg("event publisher close error")
	}

	l.Info().Msg("shutdown complete")
}
