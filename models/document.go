package models

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by stores when no document matches.
var ErrNotFound = errors.New("recipe not found")

// Document is one stored recipe as read from the collection: its _id and
// the untouched raw bytes.
type Document struct {
	ID  interface{}
	Raw bson.Raw
}

// NewDocument copies raw and lifts its _id.
func NewDocument(raw bson.Raw) (Document, error) {
	owned := make(bson.Raw, len(raw))
	copy(owned, raw)

	idVal, err := owned.LookupErr("_id")
	if err != nil {
		return Document{}, fmt.Errorf("document has no _id: %w", err)
	}
	var id interface{}
	if err := idVal.Unmarshal(&id); err != nil {
		return Document{}, fmt.Errorf("decode _id: %w", err)
	}
	return Document{ID: id, Raw: owned}, nil
}

func (d Document) IDString() string {
	switch id := d.ID.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

// Name is the display name of the recipe: recipeName, then the legacy
// title, then "Untitled".
func (d Document) Name() string {
	for _, key := range []string{"recipeName", "title"} {
		if s, ok := d.Raw.Lookup(key).StringValueOK(); ok && s != "" {
			return s
		}
	}
	return "Untitled"
}

// ExtJSON renders the document as indented relaxed extended JSON.
func (d Document) ExtJSON() string {
	out, err := bson.MarshalExtJSONIndent(d.Raw, false, false, "", "  ")
	if err != nil {
		return d.Raw.String()
	}
	return string(out)
}
