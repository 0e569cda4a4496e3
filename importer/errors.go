package importer

import (
	"errors"
	"fmt"
)

// MissingColumnError is an error used to encode when the input file header
// lacks a column that rows need
type MissingColumnError struct {
	Column string
}

// NewMissingColumnError constructs a new MissingColumnError
func NewMissingColumnError(column string) *MissingColumnError {
	return &MissingColumnError{
		Column: column,
	}
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column '%s' not found in the header row",
		e.Column)
}

// MissingFieldError is an error used to encode when a row is too short
// to contain a required field
type MissingFieldError struct {
	Column string
}

// NewMissingFieldError constructs a new MissingFieldError
func NewMissingFieldError(column string) *MissingFieldError {
	return &MissingFieldError{
		Column: column,
	}
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("row has no value for the '%s' column",
		e.Column)
}

// InvalidAmountError is an error used to encode when the amount field
// does not parse as a number
type InvalidAmountError struct {
	Value string
}

// NewInvalidAmountError constructs a new InvalidAmountError
func NewInvalidAmountError(value string) *InvalidAmountError {
	return &InvalidAmountError{
		Value: value,
	}
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("amount '%s' is not numeric",
		e.Value)
}

// Reports whether an error is scoped to a single input row,
// in which case the run logs it and moves on to the next row
func isRowScoped(err error) bool {
	var missingColumn *MissingColumnError
	var missingField *MissingFieldError
	var invalidAmount *InvalidAmountError

	return errors.As(err, &missingColumn) ||
		errors.As(err, &missingField) ||
		errors.As(err, &invalidAmount)
}
