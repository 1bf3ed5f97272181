package container

import (
	"context"
	"fmt"

	"moviedeck/internal/config"
	"moviedeck/internal/gateway"
	"moviedeck/internal/logger"
	"moviedeck/internal/session"
	"moviedeck/internal/state"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Container struct {
	Redis      *redis.Client
	Logger     *logrus.Logger
	Session    *session.Store
	Store      *state.Store
	Dispatcher *state.Dispatcher
}

func New(ctx context.Context) (*Container, error) {
	// Initialize logger first
	log := logger.Get()

	// Redis is the durable client storage behind the session
	redisClient, err := newRedis(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	authClient := gateway.NewAuthClient(gateway.Config{
		BaseURL: config.AuthServiceURL(),
		Logger:  log,
	})
	sess := session.NewStore(authClient, session.NewRedisTokenStore(redisClient), log)

	catalogClient := gateway.NewCatalogClient(gateway.Config{
		BaseURL: config.CatalogServiceURL(),
		Logger:  log,
		Tokens:  sess,
	})
	reviewClient := gateway.NewReviewClient(gateway.Config{
		BaseURL: config.ReviewServiceURL(),
		Logger:  log,
		Tokens:  sess,
	})
	recommendationClient := gateway.NewRecommendationClient(gateway.Config{
		BaseURL: config.RecommendationServiceURL(),
		Logger:  log,
		Tokens:  sess,
	})
	watchlistClient := gateway.NewWatchlistClient(gateway.Config{
		BaseURL: config.WatchlistServiceURL(),
		Logger:  log,
		Tokens:  sess,
	})

	store := state.NewStore(state.Config{
		Logger: log,
		Epochs: sess,
	})
	// Session teardown evicts every entity slice
	sess.OnTeardown(store.Reset)

	dispatcher := state.NewDispatcher(state.DispatcherConfig{
		Store:           store,
		Session:         sess,
		Catalog:         catalogClient,
		Reviews:         reviewClient,
		Recommendations: recommendationClient,
		Watchlist:       watchlistClient,
		Logger:          log,
	})

	if err := sess.Restore(ctx); err != nil {
		log.WithError(err).Warn("Failed to restore persisted session")
	}

	return &Container{
		Redis:      redisClient,
		Logger:     log,
		Session:    sess,
		Store:      store,
		Dispatcher: dispatcher,
	}, nil
}

func (c *Container) Close() {
	if c.Redis != nil {
		c.Redis.Close()
		c.Logger.Info("Redis connection closed")
	}
}

func newRedis(ctx context.Context) (*redis.Client, error) {
	host, port, password := config.RedisConfig()

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Get().Info("Redis connection successful")
	return client, nil
}
