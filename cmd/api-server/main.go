package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"musicbrainz/database"
	"musicbrainz/internal/cache"
	"musicbrainz/internal/config"
	"musicbrainz/internal/http-api/handler"
	"musicbrainz/internal/http-api/middleware"
	"musicbrainz/internal/http-api/repository"
	"musicbrainz/internal/http-api/service"
	"musicbrainz/internal/webservice"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := cfg.Logger()

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	redisCache, err := cache.New(cfg.RedisURL, cfg.RedisPassword, time.Duration(cfg.CacheTTL)*time.Second)
	if err != nil {
		logger.Warn("redis unavailable, catalog caching disabled", "error", err)
		redisCache = cache.Noop()
	}
	defer redisCache.Close()

	// Repositories
	editorRepo := repository.NewEditorRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	releaseRepo := repository.NewReleaseRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	tagRepo := repository.NewTagRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	authService := service.NewAuthService(editorRepo, refreshTokenRepo, cfg)
	catalogService := service.NewCatalogService(artistRepo, releaseRepo, labelRepo, redisCache)
	collectionService := service.NewCollectionService(collectionRepo, artistRepo, releaseRepo)
	tagService := service.NewTagService(tagRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	collectionHandler := handler.NewCollectionHandler(collectionService)
	tagHandler := handler.NewTagHandler(tagService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	wsHandler := handler.NewWSHandler(catalogService)

	// The public web service speaks XML by default; JSON on request.
	negotiator, err := webservice.NewNegotiator(
		webservice.XMLSerializer{},
		webservice.JSONSerializer{},
	)
	if err != nil {
		log.Fatalf("could not build format negotiator: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		authHandler.RegisterRoutes(api.Group("/auth"))

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(authService))
		{
			collectionHandler.RegisterRoutes(authed.Group("/collections"))
			tagHandler.RegisterRoutes(authed.Group("/tags"))
			notificationHandler.RegisterRoutes(authed.Group("/notifications"))
			catalogHandler.RegisterRoutes(authed.Group("/catalog"))
		}
	}

	limiter := middleware.NewKeyedRateLimiter(float64(cfg.RateLimitRPS), cfg.RateLimitBurst)
	ws := r.Group("/ws/1")
	ws.Use(middleware.RateLimit(limiter), negotiator.Middleware())
	wsHandler.RegisterRoutes(ws)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
