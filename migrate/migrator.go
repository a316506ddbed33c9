package migrate

import (
	"context"
	"fmt"
	"time"

	"recipestore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Store is what the migrator needs from the recipes collection: read
// everything once, then merge-update single documents.
type Store interface {
	All(ctx context.Context) ([]models.Document, error)
	Patch(ctx context.Context, id interface{}, set bson.M) error
}

// Notifier hears about every recipe the migration rewrote.
type Notifier interface {
	RecipeMigrated(ctx context.Context, id string) error
}

type Outcome int

const (
	Skipped Outcome = iota
	Updated
	Errored
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case Errored:
		return "errored"
	default:
		return "skipped"
	}
}

type Migrator struct {
	store    Store
	log      *zap.Logger
	notifier Notifier
	limiter  *rate.Limiter
	now      func() time.Time
}

type Option func(*Migrator)

func WithNotifier(n Notifier) Option {
	return func(m *Migrator) { m.notifier = n }
}

// WithWriteLimiter throttles patch writes.
func WithWriteLimiter(l *rate.Limiter) Option {
	return func(m *Migrator) { m.limiter = l }
}

func WithClock(now func() time.Time) Option {
	return func(m *Migrator) { m.now = now }
}

func New(store Store, log *zap.Logger, opts ...Option) *Migrator {
	m := &Migrator{store: store, log: log, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	return m
}

// Run migrates every recipe in the collection, one document at a time. Only
// a failure to read the collection is returned; per-document failures are
// logged and counted in the summary.
func (m *Migrator) Run(ctx context.Context) (Summary, error) {
	m.log.Info("starting recipe data migration")

	docs, err := m.store.All(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch recipes: %w", err)
	}
	m.log.Info("recipes to process", zap.Int("count", len(docs)))

	sum := Summary{Total: len(docs)}
	for _, doc := range docs {
		switch m.Migrate(ctx, doc) {
		case Updated:
			sum.Updated++
		case Skipped:
			sum.Skipped++
		case Errored:
			sum.Errors++
		}
	}
	return sum, nil
}

// Migrate brings one document to the current schema.
func (m *Migrator) Migrate(ctx context.Context, doc models.Document) Outcome {
	id := doc.IDString()
	log := m.log.With(zap.String("recipe_id", id))
	log.Info("processing recipe", zap.String("name", doc.Name()))

	patch, err := m.plan(doc)
	if err == nil && !patch.IsEmpty() {
		err = m.apply(ctx, doc, patch)
	}
	if err != nil {
		log.Error("recipe migration failed",
			zap.Error(err),
			zap.String("data", doc.ExtJSON()),
		)
		return Errored
	}
	if patch.IsEmpty() {
		log.Info("no migration needed")
		return Skipped
	}

	log.Info("recipe updated", zap.Strings("fields", patch.Fields()))
	if m.notifier != nil {
		if err := m.notifier.RecipeMigrated(ctx, id); err != nil {
			log.Warn("migration event not delivered", zap.Error(err))
		}
	}
	return Updated
}

func (m *Migrator) plan(doc models.Document) (models.Patch, error) {
	recipe, err := models.DecodeRecipe(doc.Raw)
	if err != nil {
		return models.Patch{}, err
	}
	return Plan(recipe, m.now())
}

func (m *Migrator) apply(ctx context.Context, doc models.Document, patch models.Patch) error {
	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for write slot: %w", err)
		}
	}
	if err := m.store.Patch(ctx, doc.ID, patch.SetFields()); err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}
