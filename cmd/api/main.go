package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/salat-sync-engine/internal/adapters/broker"
	adapterHTTP "github.com/comitanigiacomo/salat-sync-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/salat-sync-engine/internal/adapters/kvstore"
	"github.com/comitanigiacomo/salat-sync-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/salat-sync-engine/internal/adapters/timings"
	"github.com/comitanigiacomo/salat-sync-engine/internal/config"
	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/salat-sync-engine/internal/core/services"
	"github.com/comitanigiacomo/salat-sync-engine/internal/core/workers"
)

// @title           Salat Sync Engine API
// @version         1.0
// @description     Daily prayer tracking: per-day records, statistics and prayer times.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Critical: invalid configuration")
	}
	cfg.SetupLogger()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("Critical: failed to open store")
	}
	defer backend.Close()

	rdb := backend.redis
	if rdb == nil && cfg.RedisHost != "" {
		rdb, err = kvstore.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, running without cache and rate limiting")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	var publisher domain.EventPublisher = broker.LogPublisher{}
	if cfg.MQTTBrokerURL != "" {
		client, err := broker.NewMQTTClient(cfg.MQTTBrokerURL, cfg.MQTTClientID, 10*time.Second)
		if err != nil {
			log.Warn().Err(err).Msg("MQTT broker unavailable, change notifications are logged only")
		} else {
			mqttPublisher := broker.NewMQTTPublisher(client)
			defer mqttPublisher.Close()
			publisher = mqttPublisher
		}
	}

	router := buildRouter(ctx, cfg, backend, rdb, publisher, startTime)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.StoreBackend).Msg("Salat Sync Engine running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Critical server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Stop signal received. Shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}

	log.Info().Msg("Server stopped gracefully.")
}

// buildRouter wires services, the change notifier and the HTTP handlers on
// top of an opened backend. The notifier runs until ctx is cancelled.
func buildRouter(ctx context.Context, cfg *config.Config, backend *backendHandle, rdb *redis.Client, publisher domain.EventPublisher, startTime time.Time) *gin.Engine {
	notifier := workers.NewChangeNotifier(services.NewPrayerService(backend.kv, nil), publisher)
	notifier.Start(ctx)

	prayerService := services.NewPrayerService(backend.kv, notifier)
	statsService := services.NewStatsService(prayerService, cfg.Timezone)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, backend.users)
	authService := services.NewAuthService(backend.users, tokenService)

	var provider domain.TimingsProvider = timings.NewClient(
		&http.Client{Timeout: cfg.ProviderTimeout},
		cfg.NominatimURL,
		cfg.AladhanURL,
	)
	if rdb != nil {
		provider = timings.NewCachedProvider(provider, rdb, cfg.TimingsCacheTTL)
	}
	timingsService := services.NewTimingsService(provider, cfg.ProviderTimeout)

	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(authService),
		PrayerHandler:  adapterHTTP.NewPrayerHandler(prayerService),
		StatsHandler:   adapterHTTP.NewStatsHandler(statsService),
		TimingsHandler: adapterHTTP.NewTimingsHandler(timingsService, cfg.Timezone),
		Tokens:         tokenService,
		AllowAnonymous: cfg.AllowAnonymous,
		Store:          backend.kv,
		StoreBackend:   cfg.StoreBackend,
		Redis:          rdb,
		RateLimit:      cfg.RateLimit,
		StartTime:      startTime,
	})
}

type storeKV interface {
	domain.KeyValueStore
	adapterHTTP.Pinger
}

type backendHandle struct {
	kv      storeKV
	users   domain.UserRepository
	redis   *redis.Client
	closers []func() error
}

func (b *backendHandle) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			log.Warn().Err(err).Msg("error closing store")
		}
	}
}

// openBackend builds the key-value store selected by STORE_BACKEND and the
// user repository that goes with it.
func openBackend(ctx context.Context, cfg *config.Config) (*backendHandle, error) {
	b := &backendHandle{}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Warn().Msg("Using the in-memory store, data is lost on restart")
		b.kv = kvstore.NewMemoryStore()

	case config.BackendRedis:
		rdb, err := kvstore.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		b.redis = rdb
		b.closers = append(b.closers, rdb.Close)
		b.kv = kvstore.NewRedisStore(rdb, cfg.RedisNamespace)

	case config.BackendPostgres:
		db, err := connectPostgres(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, db.Close)

		store := kvstore.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		users := repository.NewPostgresUserRepository(db)
		if err := users.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		b.kv = store
		b.users = users

	case config.BackendSQLite:
		store, err := kvstore.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, store.Close)
		b.kv = store

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	if b.users == nil {
		b.users = repository.NewKVUserRepository(b.kv)
	}
	return b, nil
}

func connectPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	log.Info().Msg("Connecting to database...")

	var db *sqlx.DB
	var err error
	for attempt := 1; attempt <= 5; attempt++ {
		db, err = sqlx.ConnectContext(ctx, "pgx", dsn)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("database not ready, retrying")
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Info().Msg("Database connected successfully.")
	return db, nil
}
