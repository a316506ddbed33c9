// Package recipes holds the read-only tools that look at stored recipe
// documents without changing them.
package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"recipestore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.uber.org/zap"
)

// Source is the read side of the recipes collection.
type Source interface {
	First(ctx context.Context) (models.Document, error)
	All(ctx context.Context) ([]models.Document, error)
}

type Inspector struct {
	src Source
	log *zap.Logger
}

func NewInspector(src Source, log *zap.Logger) *Inspector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Inspector{src: src, log: log}
}

// First prints the id, display name and full body of the first recipe.
func (in *Inspector) First(ctx context.Context, w io.Writer) error {
	doc, err := in.src.First(ctx)
	if errors.Is(err, models.ErrNotFound) {
		fmt.Fprintln(w, "No recipes found")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Recipe ID:", doc.IDString())
	fmt.Fprintln(w, "Recipe Name:", doc.Name())
	fmt.Fprintln(w, "\nFull document structure:")
	fmt.Fprintln(w, doc.ExtJSON())
	return nil
}

// tipFields are the tip paragraphs that the current schema stores as plain
// strings.
var tipFields = []string{"makeAhead", "storage", "reheating"}

type ArrayTipsReport struct {
	Checked int
	// Flagged holds the ids of recipes with at least one list-shaped tip.
	Flagged []string
}

// ArrayTips lists every recipe whose tips still hold a paragraph as a list.
func (in *Inspector) ArrayTips(ctx context.Context, w io.Writer) (ArrayTipsReport, error) {
	fmt.Fprintln(w, "🔍 Scanning all recipes for array-type tips...")
	fmt.Fprintln(w)

	docs, err := in.src.All(ctx)
	if err != nil {
		return ArrayTipsReport{}, err
	}
	if len(docs) == 0 {
		fmt.Fprintln(w, "No recipes found")
		return ArrayTipsReport{}, nil
	}

	report := ArrayTipsReport{Checked: len(docs)}
	for _, doc := range docs {
		tips, ok := doc.Raw.Lookup("tips").DocumentOK()
		if !ok {
			continue
		}

		shapes := make(map[string]bool, len(tipFields))
		hasArray := false
		for _, field := range tipFields {
			isArray := tips.Lookup(field).Type == bsontype.Array
			shapes[field] = isArray
			hasArray = hasArray || isArray
		}
		if !hasArray {
			continue
		}

		report.Flagged = append(report.Flagged, doc.IDString())
		in.log.Debug("array tips found", zap.String("recipe_id", doc.IDString()))

		fmt.Fprintf(w, "📋 Recipe: %s (ID: %s)\n", doc.Name(), doc.IDString())
		for _, field := range tipFields {
			shape := "STRING"
			if shapes[field] {
				shape = "ARRAY"
			}
			fmt.Fprintf(w, "   %s: %s\n", field, shape)
		}
		for _, field := range tipFields {
			if shapes[field] {
				fmt.Fprintf(w, "      Value: %s\n", plainJSON(tips.Lookup(field)))
			}
		}
		fmt.Fprintln(w)
	}

	if len(report.Flagged) == 0 {
		fmt.Fprintln(w, "✅ All recipes have tips in string format (not arrays)")
		fmt.Fprintln(w, "   Total recipes checked:", report.Checked)
	}
	return report, nil
}

// plainJSON renders a value as ordinary JSON, falling back to extended JSON
// for types plain JSON cannot hold.
func plainJSON(rv bson.RawValue) string {
	var v interface{}
	if err := rv.Unmarshal(&v); err == nil {
		if out, err := json.Marshal(v); err == nil {
			return string(out)
		}
	}
	return rv.String()
}
