// Package memstore is an in-memory recipes collection with the same
// read-all / patch-one behaviour as db.RecipeStore. Tests use it in place of
// MongoDB.
package memstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"recipestore/models"

	"go.mongodb.org/mongo-driver/bson"
)

type Store struct {
	mu   sync.Mutex
	docs []bson.D

	// AllErr, when set, fails every All call.
	AllErr   error
	// PatchErr fails Patch for the listed ids.
	PatchErr map[interface{}]error
	// Writes counts successful patches.
	Writes   int
}

// New seeds the store. Every document needs an _id.
func New(docs ...bson.D) *Store {
	return &Store{docs: docs}
}

func (s *Store) All(ctx context.Context) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.AllErr != nil {
		return nil, s.AllErr
	}
	out := make([]models.Document, 0, len(s.docs))
	for _, d := range s.docs {
		doc, err := toDocument(d)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *Store) First(ctx context.Context) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.docs) == 0 {
		return models.Document{}, models.ErrNotFound
	}
	return toDocument(s.docs[0])
}

// Patch applies set with $set semantics, including dotted paths into
// sub-documents.
func (s *Store) Patch(ctx context.Context, id interface{}, set bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.PatchErr[id]; ok {
		return err
	}
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("recipe %v: %w", id, models.ErrNotFound)
	}
	for path, v := range set {
		s.docs[i] = setPath(s.docs[i], strings.Split(path, "."), v)
	}
	s.Writes++
	return nil
}

// Get returns the stored document as a map.
func (s *Store) Get(id interface{}) bson.M {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return nil
	}
	raw, err := bson.Marshal(s.docs[i])
	if err != nil {
		return nil
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func (s *Store) index(id interface{}) int {
	for i, d := range s.docs {
		for _, e := range d {
			if e.Key == "_id" && e.Value == id {
				return i
			}
		}
	}
	return -1
}

func setPath(d bson.D, path []string, v interface{}) bson.D {
	for i, e := range d {
		if e.Key != path[0] {
			continue
		}
		if len(path) == 1 {
			d[i].Value = v
			return d
		}
		sub, _ := e.Value.(bson.D)
		d[i].Value = setPath(sub, path[1:], v)
		return d
	}
	if len(path) == 1 {
		return append(d, bson.E{Key: path[0], Value: v})
	}
	return append(d, bson.E{Key: path[0], Value: setPath(nil, path[1:], v)})
}

func toDocument(d bson.D) (models.Document, error) {
	raw, err := bson.Marshal(d)
	if err != nil {
		return models.Document{}, err
	}
	return models.NewDocument(raw)
}
