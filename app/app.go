// Package app wires configuration, logging and store connections for the
// command line tools.
package app

import (
	"context"

	"recipestore/config"
	"recipestore/db"
	"recipestore/logging"
	"recipestore/rdx"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type App struct {
	Config  config.Config
	Log     *zap.Logger
	RunID   string
	Recipes *db.RecipeStore
	// Redis is nil unless REDIS_URL is set.
	Redis   *redis.Client

	mongo *mongo.Client
}

// Open loads configuration and connects to MongoDB, and to redis when one
// is configured.
func Open(ctx context.Context, tool string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	log = log.With(zap.String("tool", tool), zap.String("run_id", runID))
	if !cfg.EnvFileLoaded {
		log.Debug("no .env file found; using system environment")
	}

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("database unavailable", zap.Error(err))
		_ = log.Sync()
		return nil, err
	}
	coll := client.Database(cfg.ProjectID).Collection(cfg.Collection)
	log.Info("connected",
		zap.String("database", cfg.ProjectID),
		zap.String("collection", cfg.Collection),
	)

	a := &App{
		Config:  cfg,
		Log:     log,
		RunID:   runID,
		Recipes: db.NewRecipeStore(coll),
		mongo:   client,
	}

	a.Redis, err = rdx.Connect(ctx, cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	return a, nil
}

func (a *App) Close(ctx context.Context) {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if err := a.mongo.Disconnect(ctx); err != nil {
		a.Log.Warn("disconnect from MongoDB", zap.Error(err))
	}
	_ = a.Log.Sync()
}
