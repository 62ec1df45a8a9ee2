package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/noah-isme/storefront-core/internal/config"
	"github.com/noah-isme/storefront-core/internal/db"
	"github.com/noah-isme/storefront-core/internal/events"
	"github.com/noah-isme/storefront-core/internal/obs"
	"github.com/noah-isme/storefront-core/internal/ratelimit"
)

// Dependencies holds the process-wide connections the API is built on.
type Dependencies struct {
	DB      *pgxpool.Pool
	Store   *db.Store
	Redis   *redis.Client
	Limiter ratelimit.Limiter
	Kafka   *kafka.Writer
}

// Connect opens Postgres, Redis and the optional Kafka writer described by cfg.
func Connect(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Dependencies, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "storefront-core"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if cfg.Obs.MetricsEnabled {
		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	limiter, err := NewLimiter(cfg, redisClient)
	if err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, err
	}

	deps := &Dependencies{
		DB:      pool,
		Store:   db.NewStore(pool),
		Redis:   redisClient,
		Limiter: limiter,
		Kafka:   events.NewKafkaWriter(cfg.KafkaBrokers),
	}
	if deps.Kafka == nil {
		logger.Info().Msg("kafka brokers not configured; domain events stay in postgres only")
	} else {
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Strs("topics", events.Topics(cfg.KafkaTopicPrefix)).Msg("kafka publisher enabled")
	}
	return deps, nil
}

// NewLimiter picks the rate limit strategy named in cfg.
func NewLimiter(cfg *config.Config, client *redis.Client) (ratelimit.Limiter, error) {
	switch cfg.RateLimitStrategy {
	case config.RateLimitFixed:
		return ratelimit.NewFixedWindow(client, "storefront:ratelimit")
	default:
		return ratelimit.SlidingWindow{Client: client, Prefix: "storefront:ratelimit:"}, nil
	}
}

// Notifiers returns the post-commit event sinks available to the bus.
func (d *Dependencies) Notifiers(cfg *config.Config) []events.Notifier {
	if d == nil || d.Kafka == nil {
		return nil
	}
	return []events.Notifier{events.NewKafkaNotifier(d.Kafka, cfg.KafkaTopicPrefix)}
}

// Close releases every connection. Errors are joined.
func (d *Dependencies) Close() error {
	if d == nil {
		return nil
	}
	var errs []error
	if d.Kafka != nil {
		errs = append(errs, d.Kafka.Close())
	}
	if d.Redis != nil {
		errs = append(errs, d.Redis.Close())
	}
	if d.DB != nil {
		d.DB.Close()
	}
	return errors.Join(errs...)
}
