package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCatalogue  = errors.New("unknown catalogue")
	ErrNotFound          = errors.New("not found")
	ErrArity             = errors.New("wrong number of positions")
	ErrStoreFailure      = errors.New("store failure")
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingCoordinate = errors.New("position has no J2000 coordinates")
)

// UnknownCatalogueError is returned when no descriptor exists for a catalogue key
type UnknownCatalogueError struct {
	Catalogue string
}

func (e *UnknownCatalogueError) Error() string {
	return fmt.Sprintf("unknown catalogue %q", e.Catalogue)
}

func (e *UnknownCatalogueError) Is(target error) bool {
	return target == ErrUnknownCatalogue
}

// NotFoundError is returned when a lookup matches no row
type NotFoundError struct {
	Catalogue  string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no star %q in catalogue %q", e.Identifier, e.Catalogue)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ArityError is returned when a distance is requested on other than two positions
type ArityError struct {
	Got int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("distance needs exactly 2 positions, got %d", e.Got)
}

func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}

// InvalidInputError is returned when an identifier does not fit its catalogue
type InvalidInputError struct {
	Catalogue  string
	Identifier string
	Reason     string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid identifier %q for catalogue %q: %s", e.Identifier, e.Catalogue, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// StoreFailure wraps a backend error of the catalogue store
type StoreFailure struct {
	Op         string
	Catalogue  string
	Identifier string
	Err        error
}

func (e *StoreFailure) Error() string {
	if e.Catalogue == "" && e.Identifier == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s (catalogue %q, identifier %q): %v", e.Op, e.Catalogue, e.Identifier, e.Err)
}

func (e *StoreFailure) Is(target error) bool {
	return target == ErrStoreFailure
}

func (e *StoreFailure) Unwrap() error {
	return e.Err
}
