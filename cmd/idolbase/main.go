package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/idolbase/internal/application/ports"
	"github.com/amirhosseinghanipour/idolbase/internal/config"
	httprouter "github.com/amirhosseinghanipour/idolbase/internal/infrastructure/http"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/lockout"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/persistence/memory"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/persistence/postgres"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = newLogger(cfg.Log)

	ctx := context.Background()
	var (
		repos handlers.Repositories
		db    handlers.Pinger
	)
	if cfg.Database.URL != "" {
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse DATABASE_URL")
		}
		poolCfg.MaxConns = cfg.Database.MaxConns
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to database")
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("ping database")
		}
		repos = handlers.Repositories{
			Groups:        postgres.NewGroupRepository(pool),
			Members:       postgres.NewMemberRepository(pool),
			Songs:         postgres.NewSongRepository(pool),
			Formations:    postgres.NewFormationRepository(pool),
			Setlists:      postgres.NewSetlistRepository(pool),
			Conversations: postgres.NewConversationRepository(pool),
			Snapshots:     postgres.NewSnapshotStore(pool),
		}
		db = pool
	} else {
		log.Warn().Msg("DATABASE_URL not set; using in-memory store, data is lost on restart")
		store := memory.NewStore()
		repos = handlers.Repositories{
			Groups:        store.Groups(),
			Members:       store.Members(),
			Songs:         store.Songs(),
			Formations:    store.Formations(),
			Setlists:      store.Setlists(),
			Conversations: store.Conversations(),
			Snapshots:     store,
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	var emitter ports.WebhookEmitter = webhook.NewNoopEmitter()
	if cfg.Webhook.URL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL, webhook.WithSecret(cfg.Webhook.Secret))
	}

	if cfg.Admin.Secret == "" {
		log.Warn().Msg("ADMIN_SECRET not set; write endpoints will reject every request")
	}
	adminLock := lockout.NewMemoryStore(cfg.Admin.LockoutAttempts, cfg.Admin.LockoutCooldown)
	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP, redisClient, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}

	router := httprouter.NewRouter(httprouter.RouterConfig{
		Content:       handlers.NewContent(repos, emitter, log),
		HealthHandler: handlers.NewHealthHandler(db, redisClient),
		RequireAdmin:  middleware.RequireAdminKey(cfg.Admin.Secret, adminLock),
		CORS:          middleware.CORS(cfg.CORS.AllowedOrigins),
		Log:           log,
		Secure:        middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment)),
		IPRateLimit:   ipLimit,
		Metrics:       cfg.Metrics.Enabled,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Bool("postgres", db != nil).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

// newLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if cfg.Format == "json" {
		log = zerolog.New(os.Stderr)
	} else {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return log.Level(level).With().Timestamp().Logger()
}
