// Package app holds the presentation controller: it owns the item store and
// the catalog, applies user intents and derives the full view after each one.
package app

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/todolist/internal/catalog"
	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/store"
)

// NoSelection is the selected index when nothing is selected.
const NoSelection = -1

// DoneMarker prefixes completed rows.
const DoneMarker = "✓"

// ErrUnknownLocale is returned by SwitchLocale for codes the catalog lacks.
var ErrUnknownLocale = errors.New("unknown locale")

// Row is one rendered list entry.
type Row struct {
	Index  int
	Marker string
	Title  string
	Done   bool
}

// String renders the row the way the list shows it: "<marker> <title>".
func (r Row) String() string { return r.Marker + " " + r.Title }

// Labels are the static, localized texts of the screen.
type Labels struct {
	Title, Add, Complete, Delete, Languages string
	Placeholder, Empty, WriteError, Quit    string
}

// MenuEntry is one locale in the language menu.
type MenuEntry struct {
	Code   string
	Name   string
	Active bool
}

// Controller is the application state. It is not safe for concurrent use;
// every intent runs to completion on the caller's goroutine.
type Controller struct {
	store    *store.Store
	catalog  *catalog.Catalog
	log      *log.Logger
	locale   string
	selected int
	items    []model.Item
}

// New loads the item file and returns a controller showing locale. An
// unknown locale falls back to the first one in the catalog.
func New(st *store.Store, cat *catalog.Catalog, locale string, logger *log.Logger) (*Controller, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := &Controller{
		store:    st,
		catalog:  cat,
		log:      logger,
		selected: NoSelection,
	}
	c.locale = cat.Canonical(locale)
	if c.locale == "" {
		if locs := cat.Locales(); len(locs) > 0 {
			c.locale = locs[0]
		}
		logger.Warn("unknown locale, using default", "requested", locale, "locale", c.locale)
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Locale is the active locale code.
func (c *Controller) Locale() string { return c.locale }

// Selected is the selected index, or NoSelection.
func (c *Controller) Selected() int { return c.selected }

// Select marks index as selected; out-of-range clears the selection.
func (c *Controller) Select(index int) {
	if index < 0 || index >= len(c.items) {
		c.selected = NoSelection
		return
	}
	c.selected = index
}

// Items returns a copy of the current list.
func (c *Controller) Items() []model.Item {
	out := make([]model.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Reload re-reads the item file and clears the selection.
func (c *Controller) Reload() error {
	items, err := c.store.Load()
	if err != nil {
		c.log.Error("load items", "path", c.store.Path(), "err", err)
		return err
	}
	c.items = items
	c.selected = NoSelection
	c.log.Debug("items loaded", "path", c.store.Path(), "count", len(items))
	return nil
}

// Add appends a new pending item. Blank titles are ignored.
func (c *Controller) Add(title string) error {
	return c.apply("add", func(items []model.Item) ([]model.Item, error) {
		return c.store.Add(items, title)
	})
}

// ToggleSelected flips the completion flag of the item at index.
func (c *Controller) ToggleSelected(index int) error {
	return c.apply("toggle", func(items []model.Item) ([]model.Item, error) {
		return c.store.Toggle(items, index)
	})
}

// DeleteSelected removes the item at index.
func (c *Controller) DeleteSelected(index int) error {
	return c.apply("delete", func(items []model.Item) ([]model.Item, error) {
		return c.store.Remove(items, index)
	})
}

func (c *Controller) apply(op string, fn func([]model.Item) ([]model.Item, error)) error {
	items, err := fn(c.items)
	if err != nil {
		c.log.Error(op+" failed", "path", c.store.Path(), "err", err)
		// The write may or may not have landed; show what the file holds.
		if rerr := c.Reload(); rerr != nil {
			return errors.Join(err, rerr)
		}
		return err
	}
	c.items = items
	c.selected = NoSelection
	c.log.Debug(op, "count", len(items))
	return nil
}

// SwitchLocale changes the display locale and reloads the list.
func (c *Controller) SwitchLocale(code string) error {
	canon := c.catalog.Canonical(code)
	if canon == "" {
		return fmt.Errorf("%w: %q", ErrUnknownLocale, code)
	}
	c.locale = canon
	c.log.Info("locale switched", "locale", canon)
	return c.Reload()
}

// Label looks key up in the active locale; unknown keys render empty.
func (c *Controller) Label(key string) string {
	return c.catalog.Lookup(c.locale, key)
}

// Labels returns every static label for the active locale.
func (c *Controller) Labels() Labels {
	return Labels{
		Title:       c.Label(catalog.KeyTitle),
		Add:         c.Label(catalog.KeyAdd),
		Complete:    c.Label(catalog.KeyComplete),
		Delete:      c.Label(catalog.KeyDelete),
		Languages:   c.Label(catalog.KeyLanguageMenu),
		Placeholder: c.Label(catalog.KeyInputPlaceholder),
		Empty:       c.Label(catalog.KeyEmptyList),
		WriteError:  c.Label(catalog.KeyWriteError),
		Quit:        c.Label(catalog.KeyQuit),
	}
}

// Rows derives the whole list view from the current items.
func (c *Controller) Rows() []Row {
	rows := make([]Row, len(c.items))
	for i, it := range c.items {
		marker := ""
		if it.Done {
			marker = DoneMarker
		}
		rows[i] = Row{Index: i, Marker: marker, Title: it.Title, Done: it.Done}
	}
	return rows
}

// LocaleMenu lists every catalog locale, marking the active one.
func (c *Controller) LocaleMenu() []MenuEntry {
	locs := c.catalog.Locales()
	menu := make([]MenuEntry, len(locs))
	for i, code := range locs {
		menu[i] = MenuEntry{
			Code:   code,
			Name:   catalog.DisplayName(code),
			Active: code == c.locale,
		}
	}
	return menu
}
