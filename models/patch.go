package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// TipsPatch is the rewritten tips sub-document. It is only produced when at
// least one tip paragraph was converted from a list.
type TipsPatch struct {
	MakeAhead     *string
	Storage       *string
	Reheating     *string
	Substitutions []string
	Variations    []string
}

// Patch is the partial update computed for one recipe. Nil fields are left
// alone in the store.
type Patch struct {
	PrepTime         *string
	PrepTimeMinutes  *int64
	CookTime         *string
	CookTimeMinutes  *int64
	TotalTime        *string
	TotalTimeMinutes *int64
	Tips             *TipsPatch
	RecipeName       *string
	UpdatedAt        *time.Time
}

func (p Patch) IsEmpty() bool {
	return len(p.SetFields()) == 0
}

// SetFields flattens the patch into a $set document. Tips are written as
// dotted paths so that tip keys the patch does not name survive the update.
func (p Patch) SetFields() bson.M {
	set := bson.M{}
	putString(set, "prepTime", p.PrepTime)
	putInt(set, "prepTimeMinutes", p.PrepTimeMinutes)
	putString(set, "cookTime", p.CookTime)
	putInt(set, "cookTimeMinutes", p.CookTimeMinutes)
	putString(set, "totalTime", p.TotalTime)
	putInt(set, "totalTimeMinutes", p.TotalTimeMinutes)
	if t := p.Tips; t != nil {
		putString(set, "tips.makeAhead", t.MakeAhead)
		putString(set, "tips.storage", t.Storage)
		putString(set, "tips.reheating", t.Reheating)
		if t.Substitutions != nil {
			set["tips.substitutions"] = t.Substitutions
		}
		if t.Variations != nil {
			set["tips.variations"] = t.Variations
		}
	}
	putString(set, "recipeName", p.RecipeName)
	if p.UpdatedAt != nil {
		set["updatedAt"] = *p.UpdatedAt
	}
	return set
}

// Fields lists the top-level field names the patch writes, in schema order.
func (p Patch) Fields() []string {
	var names []string
	add := func(name string, set bool) {
		if set {
			names = append(names, name)
		}
	}
	add("prepTime", p.PrepTime != nil)
	add("prepTimeMinutes", p.PrepTimeMinutes != nil)
	add("cookTime", p.CookTime != nil)
	add("cookTimeMinutes", p.CookTimeMinutes != nil)
	add("totalTime", p.TotalTime != nil)
	add("totalTimeMinutes", p.TotalTimeMinutes != nil)
	add("tips", p.Tips != nil)
	add("recipeName", p.RecipeName != nil)
	add("updatedAt", p.UpdatedAt != nil)
	return names
}

func putString(m bson.M, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func putInt(m bson.M, key string, v *int64) {
	if v != nil {
		m[key] = *v
	}
}
