package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPatchSetFields(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	prep, prepMin := "15 minutes", int64(15)
	storage, name := "Keep cold.", "Old Recipe"

	p := Patch{
		PrepTime:        &prep,
		PrepTimeMinutes: &prepMin,
		Tips: &TipsPatch{
			Storage:       &storage,
			Substitutions: []string{"Kale."},
		},
		RecipeName: &name,
		UpdatedAt:  &now,
	}

	assert.False(t, p.IsEmpty())
	assert.Equal(t, bson.M{
		"prepTime":           "15 minutes",
		"prepTimeMinutes":    int64(15),
		"tips.storage":       "Keep cold.",
		"tips.substitutions": []string{"Kale."},
		"recipeName":         "Old Recipe",
		"updatedAt":          now,
	}, p.SetFields())
	assert.Equal(t, []string{"prepTime", "prepTimeMinutes", "tips", "recipeName", "updatedAt"}, p.Fields())
}

func TestEmptyPatch(t *testing.T) {
	var p Patch
	assert.True(t, p.IsEmpty())
	assert.Empty(t, p.SetFields())
	assert.Empty(t, p.Fields())
}
