package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"tribune/internal/auth"
	"tribune/internal/cache"
	"tribune/internal/config"
	"tribune/internal/db"
	"tribune/internal/feed"
	"tribune/internal/handlers"
	"tribune/internal/media"
	"tribune/internal/middleware"
	"tribune/internal/observability"
	"tribune/internal/repositories"
	"tribune/internal/telemetry"
	"tribune/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	shutdownTracer := telemetry.InitTracer(context.Background(), cfg.App.Name, cfg.App.Environment, cfg.Telemetry.OTLPEndpoint)
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("tracer shutdown: %v", err)
		}
	}()

	publisher := observability.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	defer publisher.Close()
	audit := telemetry.NewAuditEmitter(publisher, cfg.AMQP.AuditRoutingKey, cfg.App.Name, cfg.App.Environment)

	pages := newPageCache(cfg)

	userRepo := repositories.NewUserRepo(database)
	groupRepo := repositories.NewGroupRepo(database)
	postRepo := repositories.NewPostRepo(database)
	commentRepo := repositories.NewCommentRepo(database)
	followRepo := repositories.NewFollowRepo(database)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	feeds := feed.NewService(postRepo, groupRepo, userRepo, cfg.Feed.PostsPerPage)
	mediaStore := media.NewStore(cfg.Media.Dir)
	hub := ws.NewHub()

	feedHandler := handlers.NewFeedHandler(feeds, followRepo)
	postHandler := handlers.NewPostHandler(postRepo, groupRepo, commentRepo, mediaStore, pages, hub, audit)
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, audit)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, audit)
	groupHandler := handlers.NewGroupHandler(groupRepo, audit)
	authHandler := handlers.NewAuthHandler(userRepo, tokens, audit)
	timelineWS := ws.NewTimelineWebSocketHandler(hub, groupRepo)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.App.Name))
	router.Use(observability.HTTPMetricsMiddleware())

	authRequired := middleware.AuthRequired(tokens)
	authOptional := middleware.AuthOptional(tokens)

	router.GET("/", handlers.PageCacheMiddleware(pages, cfg.Feed.IndexCacheTTL), feedHandler.Index)
	router.GET("/group/:slug", feedHandler.GroupTimeline)
	router.GET("/profile/:handle", authOptional, feedHandler.Profile)
	router.GET("/posts/:id", postHandler.Detail)

	router.GET("/create", authRequired, postHandler.CreateForm)
	router.POST("/create", authRequired, postHandler.Create)
	router.GET("/posts/:id/edit", authRequired, postHandler.EditForm)
	router.POST("/posts/:id/edit", authRequired, postHandler.Edit)
	router.POST("/posts/:id/comment", authRequired, commentHandler.Create)

	router.GET("/follow", authRequired, feedHandler.FollowingTimeline)
	router.POST("/profile/:handle/follow", authRequired, followHandler.Follow)
	router.POST("/profile/:handle/unfollow", authRequired, followHandler.Unfollow)

	router.GET("/groups", groupHandler.List)
	router.POST("/groups", authRequired, groupHandler.Create)

	router.POST("/auth/signup", authHandler.Signup)
	router.GET("/auth/login", authHandler.LoginPrompt)
	router.POST("/auth/login", authHandler.Login)

	router.GET("/ws/timeline", timelineWS.HandleGlobal)
	router.GET("/ws/group/:slug", timelineWS.HandleGroup)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static("/media", cfg.Media.Dir)
	handlers.RegisterDebugRoutes(router, audit, cfg.App.DebugRoutes)

	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func newPageCache(cfg *config.Config) cache.PageCache {
	if cfg.Redis.Addr == "" {
		log.Printf("redis not configured, page cache held in process")
		return cache.NewMemoryCache()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return cache.NewRedisCache(client)
}
