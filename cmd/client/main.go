package main

import (
	"context"

	"moviedeck/internal/container"
	"moviedeck/internal/logger"
	"moviedeck/internal/state"

	"github.com/joho/godotenv"
)

func main() {
	logger.Init()
	log := logger.Get()

	err := godotenv.Load(".env.local")
	if err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	ctx := context.Background()

	c, err := container.New(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize client")
	}
	defer c.Close()

	if err := c.Dispatcher.Dispatch(ctx, state.FetchCatalog{}); err != nil {
		log.WithError(err).Fatal("Failed to fetch catalog")
	}
	log.WithField("movies", len(c.Store.Movies())).Info("Catalog loaded")

	if c.Session.IsAuthenticated() {
		if err := c.Dispatcher.Dispatch(ctx, state.FetchWatchlist{}); err != nil {
			log.WithError(err).Warn("Failed to fetch watchlist")
		} else {
			log.WithField("entries", len(c.Store.WatchlistIDs())).Info("Watchlist loaded")
		}
	}
}
