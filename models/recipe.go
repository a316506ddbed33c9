package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ErrMalformed marks a document field whose stored shape is not one the
// recipe schema knows how to read.
var ErrMalformed = errors.New("malformed recipe field")

// DurationKind tells which side of the number-or-string union is set.
type DurationKind int

const (
	DurationNumber DurationKind = iota + 1
	DurationText
)

// Duration is a prepTime/cookTime/totalTime value. Legacy documents store a
// bare number of minutes, current ones a display string like "15 minutes".
type Duration struct {
	Kind    DurationKind
	Minutes int64
	Text    string
}

func Minutes(n int64) *Duration { return &Duration{Kind: DurationNumber, Minutes: n} }
func Text(s string) *Duration { return &Duration{Kind: DurationText, Text: s} }
func (d *Duration) IsNumber() bool { return d != nil && d.Kind == DurationNumber }
func (d *Duration) IsText() bool { return d != nil && d.Kind == DurationText }

// UnmarshalBSONValue accepts int32, int64, double, decimal128 and string.
// Fractional minutes are rounded to the nearest whole minute.
func (d *Duration) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Int32:
		*d = Duration{Kind: DurationNumber, Minutes: int64(rv.Int32())}
	case bsontype.Int64:
		*d = Duration{Kind: DurationNumber, Minutes: rv.Int64()}
	case bsontype.Double:
		n, err := roundMinutes(rv.Double())
		if err != nil {
			return err
		}
		*d = Duration{Kind: DurationNumber, Minutes: n}
	case bsontype.Decimal128:
		dec := rv.Decimal128()
		f, err := strconv.ParseFloat(dec.String(), 64)
		if err != nil {
			return fmt.Errorf("%w: duration %s: %v", ErrMalformed, dec, err)
		}
		n, err := roundMinutes(f)
		if err != nil {
			return err
		}
		*d = Duration{Kind: DurationNumber, Minutes: n}
	case bsontype.String:
		*d = Duration{Kind: DurationText, Text: rv.StringValue()}
	default:
		return fmt.Errorf("%w: duration stored as %s", ErrMalformed, t)
	}
	return nil
}

// roundMinutes rejects values that have no int64 minute count.
// float64(math.MaxInt64) is 2^63, so the upper bound is exclusive.
func roundMinutes(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: duration %v is not a finite number", ErrMalformed, f)
	}
	r := math.Round(f)
	if r >= math.MaxInt64 || r < math.MinInt64 {
		return 0, fmt.Errorf("%w: duration %v out of range", ErrMalformed, f)
	}
	return int64(r), nil
}

// TipText is a tip paragraph stored either as one string or, in the legacy
// schema, as a list of sentences.
type TipText struct {
	List  []string
	Value string
	isSeq bool
}

func TipString(s string) *TipText { return &TipText{Value: s} }
func TipList(items ...string) *TipText { return &TipText{List: items, isSeq: true} }
func (t *TipText) IsList() bool { return t != nil && t.isSeq }

func (t *TipText) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: bt, Value: data}
	switch bt {
	case bsontype.String:
		*t = TipText{Value: rv.StringValue()}
	case bsontype.Array:
		values, err := rv.Array().Values()
		if err != nil {
			return fmt.Errorf("%w: tip list: %v", ErrMalformed, err)
		}
		items := make([]string, 0, len(values))
		for i, v := range values {
			s, ok := v.StringValueOK()
			if !ok {
				return fmt.Errorf("%w: tip list element %d is %s", ErrMalformed, i, v.Type)
			}
			items = append(items, s)
		}
		*t = TipText{List: items, isSeq: true}
	default:
		return fmt.Errorf("%w: tip stored as %s", ErrMalformed, bt)
	}
	return nil
}

type Tips struct {
	MakeAhead     *TipText `bson:"makeAhead"`
	Storage       *TipText `bson:"storage"`
	Reheating     *TipText `bson:"reheating"`
	Substitutions []string `bson:"substitutions"`
	Variations    []string `bson:"variations"`
}

// Recipe is the part of a stored recipe document the schema migration reads.
// Absent and null fields decode to nil.
type Recipe struct {
	PrepTime         *Duration `bson:"prepTime"`
	PrepTimeMinutes  *int64    `bson:"prepTimeMinutes"`
	CookTime         *Duration `bson:"cookTime"`
	CookTimeMinutes  *int64    `bson:"cookTimeMinutes"`
	TotalTime        *Duration `bson:"totalTime"`
	TotalTimeMinutes *int64    `bson:"totalTimeMinutes"`
	Tips             *Tips     `bson:"tips"`
	Title            *string   `bson:"title"`
	RecipeName       *string   `bson:"recipeName"`
}

// DecodeRecipe reads the migration view of a raw document.
func DecodeRecipe(raw bson.Raw) (Recipe, error) {
	var r Recipe
	if err := bson.Unmarshal(raw, &r); err != nil {
		if errors.Is(err, ErrMalformed) {
			return Recipe{}, err
		}
		return Recipe{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return r, nil
}
