package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/budyapp/storefront/handler"
	"github.com/budyapp/storefront/pkg/budyapi"
	"github.com/budyapp/storefront/pkg/config"
	"github.com/budyapp/storefront/pkg/httpserver"
	"github.com/budyapp/storefront/pkg/identity"
	"github.com/budyapp/storefront/pkg/logger"
	"github.com/budyapp/storefront/pkg/mongo"
	"github.com/budyapp/storefront/pkg/redis"
	"github.com/budyapp/storefront/pkg/session"
	"github.com/budyapp/storefront/pkg/tenant"
)

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

type appConfig struct {
	Logger  logger.Config
	Server  httpserver.Config
	Session session.Config
	API     budyapi.Config
	Tenant  tenant.Config
	Mongo   mongo.Config
	Redis   redis.Config
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg appConfig
	config.MustLoad(&cfg.Logger)
	config.MustLoad(&cfg.Server)
	config.MustLoad(&cfg.Session)
	config.MustLoad(&cfg.API)
	config.MustLoad(&cfg.Tenant)
	config.MustLoad(&cfg.Redis)

	log := logger.New(cfg.Logger,
		logger.WithAttr(
			slog.String("service", "storefront"),
			slog.String("version", version),
			slog.String("instance_id", uuid.NewString()),
		),
		logger.WithContextExtractors(
			tenant.LoggerExtractor(),
			identity.LoggerExtractor(),
		),
	)
	slog.SetDefault(log)

	sessions, err := session.NewManager(cfg.Session)
	if err != nil {
		return fmt.Errorf("session manager: %w", err)
	}

	api := budyapi.New(cfg.API, budyapi.WithLogger(log))

	var healthChecks []func(context.Context) error

	var provider tenant.Provider
	switch cfg.Tenant.Lookup {
	case "mongo":
		config.MustLoad(&cfg.Mongo)
		db, err := mongo.ConnectDatabase(ctx, cfg.Mongo)
		if err != nil {
			return fmt.Errorf("mongo: %w", err)
		}
		defer db.Client().Disconnect(context.Background())
		provider = tenant.NewMongoProvider(db.Collection("tenants"))
		healthChecks = append(healthChecks, mongo.Healthcheck(db.Client()))
	default:
		provider = tenant.NewHTTPProvider(cfg.API.BaseURL, nil)
	}

	var cache tenant.Cache
	if cfg.Tenant.CacheBackend == "redis" {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer client.Close()
		cache = tenant.NewRedisCache(client)
		healthChecks = append(healthChecks, redis.Healthcheck(client))
	} else {
		cache = tenant.NewInMemoryCache()
	}
	defer cache.Close()
	provider = tenant.NewCachedProvider(provider, cache, cfg.Tenant.CacheTTL)

	identityMW := identity.Middleware(provider, sessions, api, cfg.Tenant.RootDomain,
		identity.WithFallbackTenant(cfg.Tenant.Fallback()),
		identity.WithLogger(log),
	)

	router := handler.Router(handler.RouterOptions{
		Auth:     handler.NewAuth(sessions, api, log),
		Profile:  handler.NewProfile(sessions, log),
		Identity: identityMW,
		Health:   handler.Health(version, commit, healthChecks...),
	})

	srv := httpserver.New(cfg.Server, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}
