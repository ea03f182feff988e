package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Contract violations: caller bugs or upstream data defects. These must
	// surface during data validation, never degrade a report silently.
	ErrInvalidInput         = errors.New("input outside valid domain")
	ErrEmptyPopulation      = errors.New("empty reference population")
	ErrTopologyInconsistent = errors.New("inconsistent polygon topology")

	// Boundary errors
	ErrSchemaInvalid  = errors.New("reference table row failed validation")
	ErrDuplicateRow   = errors.New("duplicate reference table row")
	ErrHorizonInvalid = errors.New("invalid historical horizon")
)

// Error constructors with context
func NewInvalidInputError(field string, value float64) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidInput, field, value)
}

func NewEmptyPopulationError(context string) error {
	return fmt.Errorf("%w: %s", ErrEmptyPopulation, context)
}

func NewTopologyError(gridID string, detail string) error {
	return fmt.Errorf("%w: unit %s: %s", ErrTopologyInconsistent, gridID, detail)
}

func NewSchemaError(table string, row int, reason string) error {
	return fmt.Errorf("%w: %s row %d: %s", ErrSchemaInvalid, table, row, reason)
}

// Error checking helpers
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsEmptyPopulation(err error) bool {
	return errors.Is(err, ErrEmptyPopulation)
}

func IsTopologyError(err error) bool {
	return errors.Is(err, ErrTopologyInconsistent)
}

func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchemaInvalid) || errors.Is(err, ErrDuplicateRow)
}
