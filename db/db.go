package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipestore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Connect opens a MongoDB client and checks the server is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, nil
}

// RecipeStore reads and patches documents of the recipes collection without
// assuming any schema.
type RecipeStore struct {
	coll *mongo.Collection
}

func NewRecipeStore(coll *mongo.Collection) *RecipeStore {
	return &RecipeStore{coll: coll}
}

// All returns a snapshot of every document in the collection.
func (s *RecipeStore) All(ctx context.Context) ([]models.Document, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find recipes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	for cursor.Next(ctx) {
		doc, err := models.NewDocument(cursor.Current)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	return docs, nil
}

// First returns the first document in natural order.
func (s *RecipeStore) First(ctx context.Context) (models.Document, error) {
	raw, err := s.coll.FindOne(ctx, bson.M{}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Document{}, models.ErrNotFound
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("find recipe: %w", err)
	}
	return models.NewDocument(raw)
}

// Patch merges set into the document with the given _id.
func (s *RecipeStore) Patch(ctx context.Context, id interface{}, set bson.M) error {
	res, err := s.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("recipe %v: %w", id, models.ErrNotFound)
	}
	return nil
}
