package tabopt

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is neither an extraction result nor a workbook.
var ErrInvalidFormat = errors.New("invalid input format")

// ErrSuggestionNotFound indicates no suggestion of the current analysis has the given ID.
var ErrSuggestionNotFound = errors.New("suggestion not found")

// LoadError represents an error while loading tables from a file.
type LoadError struct {
	Path      string
	Component string // "json", "xlsx"
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error in %q (%s): %v", e.Path, e.Component, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(path, component string, err error) *LoadError {
	return &LoadError{
		Path:      path,
		Component: component,
		Err:       err,
	}
}
