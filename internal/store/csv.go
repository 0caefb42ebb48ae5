package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Makepad-fr/todolist/internal/model"
)

// Two columns, no header: title, then the literal True or False.
// Titles holding commas, quotes or newlines are quoted per RFC 4180.

const (
	flagTrue  = "True"
	flagFalse = "False"
)

type csvCodec struct{}

func (csvCodec) decode(r io.Reader) ([]model.Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	items := []model.Item{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return items, nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{Line: pe.StartLine, Err: pe.Err}
			}
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		done, err := parseFlag(rec[1])
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		if err := Validate(rec[0]); err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		items = append(items, model.Item{Title: rec[0], Done: done})
	}
}

func (csvCodec) encode(w io.Writer, items []model.Item) error {
	cw := csv.NewWriter(w)
	for i, it := range items {
		// The reader folds CRLF inside quoted fields to LF.
		if strings.Contains(it.Title, "\r\n") {
			return fmt.Errorf("item %d: %w", i+1, ErrCRLFTitle)
		}
		flag := flagFalse
		if it.Done {
			flag = flagTrue
		}
		if err := cw.Write([]string{it.Title, flag}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseFlag(s string) (bool, error) {
	switch s {
	case flagTrue:
		return true, nil
	case flagFalse:
		return false, nil
	}
	return false, fmt.Errorf("completion flag %q: want %s or %s", s, flagTrue, flagFalse)
}
