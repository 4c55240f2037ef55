package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"optionlab/internal/auth"
	"optionlab/internal/config"
	"optionlab/internal/database"
	"optionlab/internal/events"
	"optionlab/internal/logger"
	"optionlab/internal/metrics"
	"optionlab/internal/middleware"
	"optionlab/internal/quote"
	"optionlab/internal/server"
	"optionlab/internal/services"
	"optionlab/internal/session"
	"optionlab/internal/validator"
)

// @title           OptionLab API
// @version         1.0
// @description     Options strategy planner: identity-provider login, stored strategies, payoff analysis and stock quotes.

// @host      localhost:5000
// @BasePath  /api

// @securityDefinitions.apikey SessionCookie
// @in header
// @name Cookie
// @description Signed session cookie set by the login callback.

const (
	shutdownTimeout    = 30 * time.Second
	sessionPurgePeriod = time.Hour
	redisPingTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	db := dbManager.DB()

	// Redis backs the redis session store and the quote cache.
	var redisClient *redis.Client
	if appConfig.RedisURL != "" {
		redisClient, err = connectRedis(ctx, appConfig.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	store, err := newSessionStore(ctx, appConfig, db, redisClient)
	if err != nil {
		return err
	}
	sessions := session.NewManager(store, session.Options{
		Secret: appConfig.SessionSecret,
		TTL:    appConfig.SessionTTL,
		Secure: appConfig.SessionCookieSecure,
	})

	m := metrics.New("optionlab")

	// Market data
	var quoteCache quote.Cache
	if redisClient != nil && appConfig.QuoteCacheTTL > 0 {
		quoteCache = quote.NewRedisCache(redisClient, appConfig.QuoteCacheTTL)
	}
	if appConfig.FinnhubAPIKey == "" {
		log.Warn("FINNHUB_API_KEY is not set; quote requests will be rejected upstream")
	}
	finnhub := quote.NewFinnhubProvider(quote.FinnhubConfig{
		BaseURL: appConfig.FinnhubBaseURL,
		APIKey:  appConfig.FinnhubAPIKey,
		Timeout: appConfig.QuoteTimeout,
		Retries: appConfig.QuoteRetries,
	}, logger.Named("finnhub"))

	// Initialize services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)

	limiter := middleware.NewRateLimiter(appConfig.RateLimitRPS, appConfig.RateLimitBurst)
	defer limiter.Stop()

	router := server.NewRouter(server.Deps{
		DB:       db,
		Sessions: sessions,
		Provider: auth.NewOIDCProvider(auth.OIDCConfig{
			ClientID:     appConfig.OAuthClientID,
			ClientSecret: appConfig.OAuthClientSecret,
			MetaURL:      appConfig.OAuthMetaURL,
			RedirectURL:  appConfig.OAuthRedirectURI,
		}),
		States:      auth.NewStateSigner(appConfig.SessionSecret),
		Users:       userService,
		Strategies:  services.NewStrategyService(db, userService),
		Quotes:      services.NewQuoteService(finnhub, quoteCache, m),
		Alerts:      services.NewAlertService(),
		Audit:       auditService,
		Metrics:     m,
		RateLimiter: limiter,
		Events:      events.NewServer(appConfig.CORSOrigins, sessions, m),
		CORSOrigins: appConfig.CORSOrigins,
		FrontendURL: appConfig.FrontendURL,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting OptionLab backend server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// newSessionStore builds the store selected by SESSION_STORE. The database
// store gets a background purge of expired rows that ends with ctx.
func newSessionStore(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (session.Store, error) {
	log := logger.Get()

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("SESSION_STORE=redis requires REDIS_URL")
		}
		log.Info("Using redis session store")
		return session.NewRedisStore(redisClient), nil

	case config.SessionStoreDatabase:
		log.Info("Using database session store")
		store := session.NewDBStore(db)
		go purgeSessions(ctx, store)
		return store, nil

	default:
		log.Info("Using in-memory session store")
		return session.NewMemoryStore(), nil
	}
}

func purgeSessions(ctx context.Context, store *session.DBStore) {
	ticker := time.NewTicker(sessionPurgePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				logger.Get().Warnw("session purge failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Get().Infow("purged expired sessions", "count", n)
			}
		}
	}
}
