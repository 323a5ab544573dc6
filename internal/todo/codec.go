package todo

import (
	"encoding/json"
	"fmt"

	"github.com/idilsaglam/todo/internal/model"
)

// Storage keys. The same KeyTodos blob is written to the local and the
// shared location.
const (
	KeyTodos           = "todos"
	KeyBackgroundColor = "backgroundColorName"
	KeyCardColor       = "cardBackgroundColorName"
)

// Encode serialises a collection as one JSON array.
func Encode(items []model.Item) ([]byte, error) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses a blob written by Encode. There is no schema version: any
// shape mismatch is an error and callers treat it as no data.
func Decode(b []byte) ([]model.Item, error) {
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}
