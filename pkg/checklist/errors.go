package checklist

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownItem is returned for an ItemID that is not rendered.
	ErrUnknownItem = errors.New("checklist: unknown quest id")
	// ErrUnknownCategory is returned for a category that is not rendered.
	ErrUnknownCategory = errors.New("checklist: unknown category")
)

// PersistedStateParseError reports a corrupt persisted record. It is logged
// and the record is treated as absent.
type PersistedStateParseError struct {
	Key string
	Err error
}

func (e *PersistedStateParseError) Error() string {
	return fmt.Sprintf("checklist: persisted state %s: %v", e.Key, e.Err)
}

func (e *PersistedStateParseError) Unwrap() error { return e.Err }

// ImportParseError reports an import document that is not valid JSON. No
// state is changed when it is returned.
type ImportParseError struct {
	Err error
}

func (e *ImportParseError) Error() string {
	return fmt.Sprintf("Invalid JSON file: %v", e.Err)
}

func (e *ImportParseError) Unwrap() error { return e.Err }
