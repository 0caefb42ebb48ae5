// Package store persists the ordered todo list to a single flat file.
// No locking: the process is the file's only reader and writer.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Makepad-fr/todolist/internal/model"
)

// DefaultFileName is used when no item file is configured.
const DefaultFileName = "todo_list.csv"

type codec interface {
	decode(r io.Reader) ([]model.Item, error)
	encode(w io.Writer, items []model.Item) error
}

// Store owns the item file at Path.
type Store struct {
	path  string
	codec codec
}

// New returns a Store for path; ".json" selects the JSON layout, anything
// else the two-column CSV layout.
func New(path string) *Store {
	if path == "" {
		path = DefaultFileName
	}
	var c codec = csvCodec{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		c = jsonCodec{}
	}
	return &Store{path: path, codec: c}
}

// Path returns the item file path.
func (s *Store) Path() string { return s.path }

// Validate rejects titles that are empty after trimming.
func Validate(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Load reads every item in file order. A missing file is an empty list.
func (s *Store) Load() ([]model.Item, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Item{}, nil
		}
		return nil, &LoadError{Path: s.path, Err: err}
	}
	items, err := s.codec.decode(bytes.NewReader(b))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = s.path
			return nil, pe
		}
		return nil, &LoadError{Path: s.path, Err: err}
	}
	return items, nil
}

// Save rewrites the whole file. The new content goes to a temp file in the
// same directory first and is renamed over the target.
func (s *Store) Save(items []model.Item) error {
	for i, it := range items {
		if err := Validate(it.Title); err != nil {
			return &WriteError{Path: s.path, Err: fmt.Errorf("item %d: %w", i+1, err)}
		}
	}
	var buf bytes.Buffer
	if err := s.codec.encode(&buf, items); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	if err := writeFile(s.path, buf.Bytes()); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}

func writeFile(path string, b []byte) error {
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name) // no-op once renamed

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(name, perm); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// commit saves items and reads them back, so the returned list is always
// what the file holds.
func (s *Store) commit(items []model.Item) ([]model.Item, error) {
	if err := s.Save(items); err != nil {
		return nil, err
	}
	return s.Load()
}

// Add appends a pending item. A blank title leaves items untouched and
// returns no error. CRLF line breaks in title become LF.
func (s *Store) Add(items []model.Item, title string) ([]model.Item, error) {
	title = strings.TrimSpace(strings.ReplaceAll(title, "\r\n", "\n"))
	if Validate(title) != nil {
		return items, nil
	}
	next := make([]model.Item, 0, len(items)+1)
	next = append(next, items...)
	next = append(next, model.Item{Title: title})
	return s.commit(next)
}

// Toggle flips the item at index. Out-of-range indexes, including -1 for
// "nothing selected", are a no-op.
func (s *Store) Toggle(items []model.Item, index int) ([]model.Item, error) {
	if index < 0 || index >= len(items) {
		return items, nil
	}
	next := make([]model.Item, len(items))
	copy(next, items)
	next[index].Toggle()
	return s.commit(next)
}

// Remove deletes the item at index. Out-of-range indexes are a no-op.
func (s *Store) Remove(items []model.Item, index int) ([]model.Item, error) {
	if index < 0 || index >= len(items) {
		return items, nil
	}
	next := make([]model.Item, 0, len(items)-1)
	next = append(next, items[:index]...)
	next = append(next, items[index+1:]...)
	return s.commit(next)
}
