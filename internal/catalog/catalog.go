// Package catalog loads the locale definition file and answers
// (locale, key) -> text lookups for the UI labels.
package catalog

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Format names a locale definition file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatXML  Format = "xml"
)

// Message keys rendered by the UI.
const (
	KeyTitle            = "title_label"
	KeyAdd              = "add_button"
	KeyComplete         = "complete_button"
	KeyDelete           = "delete_button"
	KeyLanguageMenu     = "language_menu"
	KeyInputPlaceholder = "input_placeholder"
	KeyEmptyList        = "empty_list"
	KeyWriteError       = "write_error"
	KeyQuit             = "quit_button"
)

// LoadError reports a missing or corrupt locale definition file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Catalog maps locale -> key -> text. It is immutable once built.
type Catalog struct {
	order []string
	texts map[string]map[string]string
}

// document mirrors both file layouts:
//
//	<translations><translation lang="zh"><text id="k">v</text></translation></translations>
//
//	[[translation]]
//	lang = "zh"
//	[[translation.text]]
//	id = "k"
//	value = "v"
type document struct {
	Translations []localeBlock `toml:"translation" xml:"translation"`
}

type localeBlock struct {
	Lang  string      `toml:"lang" xml:"lang,attr"`
	Texts []textEntry `toml:"text" xml:"text"`
}

type textEntry struct {
	ID    string `toml:"id" xml:"id,attr"`
	Value string `toml:"value" xml:",chardata"`
}

// FormatFor picks the file format from the path extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".xml":
		return FormatXML, nil
	}
	return "", fmt.Errorf("unsupported catalog extension %q", filepath.Ext(path))
}

// Load reads the locale definition file at path. Any failure is a *LoadError.
func Load(path string) (*Catalog, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	c, err := Parse(bytes.NewReader(b), f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return c, nil
}

// Parse decodes a locale definition document from r.
func Parse(r io.Reader, f Format) (*Catalog, error) {
	var doc document
	switch f {
	case FormatTOML:
		if err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, &LoadError{Err: fmt.Errorf("toml decode: %w", err)}
		}
	case FormatXML:
		if err := xml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, &LoadError{Err: fmt.Errorf("xml decode: %w", err)}
		}
	default:
		return nil, &LoadError{Err: fmt.Errorf("unknown format %q", f)}
	}
	return build(doc, f)
}

func build(doc document, f Format) (*Catalog, error) {
	c := &Catalog{texts: map[string]map[string]string{}}
	for i, blk := range doc.Translations {
		code, err := canonical(blk.Lang)
		if err != nil {
			return nil, &LoadError{Err: fmt.Errorf("translation block %d: %w", i+1, err)}
		}
		texts, seen := c.texts[code]
		if !seen {
			texts = map[string]string{}
			c.texts[code] = texts
			c.order = append(c.order, code)
		}
		for _, t := range blk.Texts {
			if t.ID == "" {
				return nil, &LoadError{Err: fmt.Errorf("locale %s: text without id", code)}
			}
			v := t.Value
			if f == FormatXML {
				// chardata carries the document's indentation
				v = strings.TrimSpace(v)
			}
			texts[t.ID] = v
		}
	}
	if len(c.order) == 0 {
		return nil, &LoadError{Err: errors.New("no locales defined")}
	}
	return c, nil
}

func canonical(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", errors.New("missing locale code")
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("locale %q: %w", code, err)
	}
	return tag.String(), nil
}

// Lookup returns the text for (locale, key), or "" when either is unknown.
func (c *Catalog) Lookup(locale, key string) string {
	if c == nil {
		return ""
	}
	texts, ok := c.texts[locale]
	if !ok {
		code, err := canonical(locale)
		if err != nil {
			return ""
		}
		texts = c.texts[code]
	}
	return texts[key]
}

// Has reports whether the catalog defines locale.
func (c *Catalog) Has(locale string) bool {
	if c == nil {
		return false
	}
	if _, ok := c.texts[locale]; ok {
		return true
	}
	code, err := canonical(locale)
	if err != nil {
		return false
	}
	_, ok := c.texts[code]
	return ok
}

// Canonical returns the catalog's code for locale, or "" if unknown.
func (c *Catalog) Canonical(locale string) string {
	if c == nil {
		return ""
	}
	if _, ok := c.texts[locale]; ok {
		return locale
	}
	code, err := canonical(locale)
	if err != nil {
		return ""
	}
	if _, ok := c.texts[code]; ok {
		return code
	}
	return ""
}

// Locales lists locale codes in file order.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// DisplayName is the language's own name ("中文", "English"), or the code
// when x/text has no name for it.
func DisplayName(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return locale
}
