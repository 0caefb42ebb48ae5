package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Makepad-fr/todolist/internal/model"
)

// JSON array of {"title","done"} objects, human-readable.

type jsonCodec struct{}

func (jsonCodec) decode(r io.Reader) ([]model.Item, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	items := []model.Item{}
	if len(b) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("json unmarshal: %w", err)}
	}
	if items == nil { // "null"
		items = []model.Item{}
	}
	for i, it := range items {
		if err := Validate(it.Title); err != nil {
			return nil, &ParseError{Err: fmt.Errorf("item %d: %w", i+1, err)}
		}
	}
	return items, nil
}

func (jsonCodec) encode(w io.Writer, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = w.Write(b)
	return err
}
