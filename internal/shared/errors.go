package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrInvalidInput   = fmt.Errorf("invalid input")
	ErrEmptyInput     = fmt.Errorf("input cannot be empty")
	ErrInputTooLong   = fmt.Errorf("input exceeds maximum length")
	ErrForbiddenChars = fmt.Errorf("input contains forbidden characters")
	ErrControlChars   = fmt.Errorf("input contains control characters")
	ErrNotANumber     = fmt.Errorf("input must be a whole number")
	ErrNotPositive    = fmt.Errorf("value must be greater than zero")
	ErrOutOfRange     = fmt.Errorf("value out of range")

	// Prompt flow errors
	ErrCancelled            = fmt.Errorf("operation cancelled")
	ErrRetriesExhausted     = fmt.Errorf("maximum retry attempts reached")
	ErrConfirmationRequired = fmt.Errorf("explicit confirmation required")

	// Store errors
	ErrNotFound      = fmt.Errorf("record not found")
	ErrUnknownTable  = fmt.Errorf("unknown table")
	ErrUnknownColumn = fmt.Errorf("unknown column")
	ErrNoPrimaryKey  = fmt.Errorf("table has no single-column primary key")
	ErrQueryFailed   = fmt.Errorf("query failed")

	// CLI argument errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
