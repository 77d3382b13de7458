// infrastructure/container.go
package infrastructure

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/finishlineauto/quoteserver/config"
	"github.com/finishlineauto/quoteserver/infrastructure/redis"
	"github.com/finishlineauto/quoteserver/internal/auth"
	"github.com/finishlineauto/quoteserver/internal/photo"
	"github.com/finishlineauto/quoteserver/internal/quote"
	"github.com/finishlineauto/quoteserver/internal/xero"
)

// Container provides application dependencies
type Container struct {
	// Services
	AuthService  *auth.Service
	QuoteService *quote.Service
	PhotoService *photo.Service
	XeroClient   *xero.Client

	// Handlers
	AuthHandler  *auth.Handler
	QuoteHandler *quote.Handler
	PhotoHandler *photo.Handler
	XeroHandler  *xero.Handler

	// Infrastructure
	DB          *sql.DB
	RedisClient goredis.UniversalClient
	TokenStore  auth.TokenStore
}

// NewContainer creates and initializes the dependency container
func NewContainer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{}

	db, err := OpenPostgres(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	container.DB = db

	// Token store: file by default, Redis when configured
	switch cfg.TokenStore {
	case "redis":
		redisClient := redis.NewClient(cfg.Redis)
		redisHealth := redis.NewHealthChecker(redisClient, 30*time.Second)
		container.RedisClient = redisClient
		container.TokenStore = auth.NewRedisTokenStore(
			redisClient, cfg.Redis.KeyPrefix, cfg.Xero.TenantID, redisHealth.IsHealthy)
	default:
		container.TokenStore = auth.NewFileTokenStore(cfg.TokenFile, cfg.Xero.TenantID)
	}

	auth.InitSessionStore([]byte(cfg.SessionSecret))

	container.AuthService = auth.NewService(auth.OAuthConfig{
		ClientID:        cfg.Xero.ClientID,
		ClientSecret:    cfg.Xero.ClientSecret,
		RedirectURI:     cfg.Xero.RedirectURI,
		Scopes:          cfg.Xero.Scopes,
		AuthURL:         cfg.Xero.AuthURL,
		TokenURL:        cfg.Xero.TokenURL,
		DefaultTenantID: cfg.Xero.TenantID,
	}, container.TokenStore, logger)

	container.QuoteService = quote.NewService(quote.NewRepository(db))

	container.PhotoService, err = photo.NewService(ctx, cfg.Storage)
	if err != nil {
		db.Close()
		return nil, err
	}

	container.XeroClient = xero.NewClient(
		cfg.Xero.APIBaseURL,
		cfg.Xero.ContactID,
		container.AuthService,
		logger,
	)

	container.AuthHandler = auth.NewHandler(container.AuthService, logger)
	container.QuoteHandler = quote.NewHandler(container.QuoteService, logger)
	container.PhotoHandler = photo.NewHandler(container.PhotoService, logger)
	container.XeroHandler = xero.NewHandler(container.XeroClient, container.QuoteService, logger)

	return container, nil
}

// Shutdown gracefully closes connections
func (c *Container) Shutdown(logger *slog.Logger) {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Error("error closing redis connection", "error", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("error closing database connection", "error", err)
		}
	}
}
