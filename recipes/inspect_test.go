package recipes

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"recipestore/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFirst(t *testing.T) {
	id := primitive.NewObjectID()
	store := memstore.New(
		bson.D{{Key: "_id", Value: id}, {Key: "title", Value: "Old Recipe"}, {Key: "prepTime", Value: 15}},
		bson.D{{Key: "_id", Value: "second"}, {Key: "recipeName", Value: "Later"}},
	)

	var out bytes.Buffer
	require.NoError(t, NewInspector(store, nil).First(context.Background(), &out))

	got := out.String()
	assert.Contains(t, got, "Recipe ID: "+id.Hex())
	assert.Contains(t, got, "Recipe Name: Old Recipe")
	assert.Contains(t, got, "Full document structure:")
	assert.Contains(t, got, `"prepTime": 15`)
	assert.NotContains(t, got, "Later")
}

func TestFirstEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewInspector(memstore.New(), nil).First(context.Background(), &out))
	assert.Equal(t, "No recipes found\n", out.String())
}

func TestArrayTips(t *testing.T) {
	store := memstore.New(
		bson.D{{Key: "_id", Value: "a"}, {Key: "recipeName", Value: "Slaw"}, {Key: "tips", Value: bson.D{
			{Key: "makeAhead", Value: "Dress just before serving."},
			{Key: "storage", Value: bson.A{"Keep cold.", "Use within 3 days."}},
		}}},
		bson.D{{Key: "_id", Value: "b"}, {Key: "recipeName", Value: "Soup"}, {Key: "tips", Value: bson.D{
			{Key: "storage", Value: "Freezes well."},
		}}},
		bson.D{{Key: "_id", Value: "c"}, {Key: "title", Value: "Stew"}, {Key: "tips", Value: bson.D{
			{Key: "reheating", Value: bson.A{"Low heat."}},
		}}},
		bson.D{{Key: "_id", Value: "d"}, {Key: "tips", Value: "not a map"}},
		bson.D{{Key: "_id", Value: "e"}},
	)

	var out bytes.Buffer
	report, err := NewInspector(store, nil).ArrayTips(context.Background(), &out)
	require.NoError(t, err)
	assert.Equal(t, ArrayTipsReport{Checked: 5, Flagged: []string{"a", "c"}}, report)

	got := out.String()
	assert.Contains(t, got, "📋 Recipe: Slaw (ID: a)\n   makeAhead: STRING\n   storage: ARRAY\n   reheating: STRING\n")
	assert.Contains(t, got, `Value: ["Keep cold.","Use within 3 days."]`)
	assert.Contains(t, got, "📋 Recipe: Stew (ID: c)")
	assert.NotContains(t, got, "Soup")
	assert.NotContains(t, got, "All recipes have tips in string format")
}

func TestArrayTipsAllClear(t *testing.T) {
	store := memstore.New(
		bson.D{{Key: "_id", Value: "a"}, {Key: "tips", Value: bson.D{{Key: "storage", Value: "Freezes well."}}}},
		bson.D{{Key: "_id", Value: "b"}},
	)

	var out bytes.Buffer
	report, err := NewInspector(store, nil).ArrayTips(context.Background(), &out)
	require.NoError(t, err)
	assert.Empty(t, report.Flagged)
	assert.Contains(t, out.String(), "✅ All recipes have tips in string format (not arrays)")
	assert.Contains(t, out.String(), "Total recipes checked: 2")
}

func TestArrayTipsEmptyAndFailure(t *testing.T) {
	var out bytes.Buffer
	report, err := NewInspector(memstore.New(), nil).ArrayTips(context.Background(), &out)
	require.NoError(t, err)
	assert.Zero(t, report.Checked)
	assert.Contains(t, out.String(), "No recipes found")

	store := memstore.New()
	store.AllErr = errors.New("unavailable")
	_, err = NewInspector(store, nil).ArrayTips(context.Background(), &out)
	assert.EqualError(t, err, "unavailable")
}
