package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"recipestore/models"
	"recipestore/rdx"

	"github.com/redis/go-redis/v9"
)

// IndexingChannel is the pub/sub channel the search indexer listens on.
const IndexingChannel = "indexing-events"

// Conn is the slice of the redis client the emitter uses.
type Conn interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Emitter tells the rest of the platform that a recipe document changed
// underneath it: the indexer gets an event and the cached copy is dropped.
type Emitter struct {
	conn Conn
}

func NewEmitter(conn Conn) *Emitter {
	return &Emitter{conn: conn}
}

func (e *Emitter) Emit(ctx context.Context, content models.Index) error {
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := e.conn.Publish(ctx, IndexingChannel, data).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", IndexingChannel, err)
	}
	return nil
}

// RecipeMigrated publishes a PUT for the recipe and invalidates its cache
// entry.
func (e *Emitter) RecipeMigrated(ctx context.Context, id string) error {
	if err := e.Emit(ctx, models.Index{EntityType: "recipe", Method: "PUT", EntityId: id}); err != nil {
		return err
	}
	if err := e.conn.Del(ctx, rdx.RecipeKey(id)).Err(); err != nil {
		return fmt.Errorf("drop cached recipe %s: %w", id, err)
	}
	return nil
}
