package container

import (
	"fmt"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/config"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/delivery/http"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/delivery/http/handler"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/delivery/http/middleware"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/infrastructure/database"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/infrastructure/gemini"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/infrastructure/logger"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/infrastructure/places"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/infrastructure/server"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/repository/postgres"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/usecase/discovery"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/usecase/recommend"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/usecase/session"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log, err := logger.New(cfg.Logging.Level, cfg.Server.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis is an optional response cache; a missing host disables it.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = database.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("failed to initialize redis, continuing without query cache", zap.Error(err))
			redisClient = nil
		}
	}

	// Gemini is optional; without it blurbs are simply absent.
	var geminiClient *gemini.Client
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = gemini.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Warn("failed to initialize gemini client, continuing without blurbs", zap.Error(err))
			geminiClient = nil
		}
	}

	// The places client is always constructed; with an empty key the
	// discovery usecase short-circuits to cache-only serving.
	placesClient := places.NewClient(cfg.GoogleAPIKey)
	if !placesClient.Available() {
		log.Warn("google places api key missing, serving cached records only")
	}

	// Initialize repositories
	placeRepo := postgres.NewPlaceRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)

	// Initialize use cases
	discoveryUseCase := discovery.NewUseCase(placeRepo, photoRepo, placesClient, redisClient, log)
	recommendUseCase := recommend.NewUseCase(discoveryUseCase, geminiClient, log)
	sessionUseCase := session.NewUseCase(cfg.Session.Secret, cfg.Session.ExpiryDay)

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(sessionUseCase)
	placesHandler := handler.NewPlacesHandler(discoveryUseCase)
	recommendHandler := handler.NewRecommendHandler(recommendUseCase)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(sessionUseCase)

	// Initialize router
	router := http.NewRouter(
		sessionHandler,
		placesHandler,
		recommendHandler,
		sessionMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	_ = c.Log.Sync()
	return nil
}
