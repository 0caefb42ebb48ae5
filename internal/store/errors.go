package store

import (
	"errors"
	"fmt"
)

// ErrEmptyTitle is returned by Validate for blank titles. Add treats it
// as a silent no-op.
var ErrEmptyTitle = errors.New("empty title")

// ErrCRLFTitle rejects titles the CSV layout cannot store unchanged.
var ErrCRLFTitle = errors.New("title contains CRLF line break")

// LoadError reports an item file that exists but cannot be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports a corrupt record. Line is 1-based; 0 when unknown.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteError reports a failed save. Callers must surface it.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }
