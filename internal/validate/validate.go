// Package validate checks raw user input before it reaches a SQL statement.
//
// Every function returns the cleaned value alongside an error wrapping one of
// the sentinel errors in [shared], so callers can match with [errors.Is]
// while showing the formatted message to the user. Apostrophes are legal
// text (O'Brien, 90's Music): parameterized queries make them harmless, so
// only characters with no business in free text are rejected.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/desertthunder/chinook/internal/models"
	"github.com/desertthunder/chinook/internal/shared"
)

// DefaultMaxLength caps free-text input when the caller has no configured limit.
const DefaultMaxLength = 200

// forbidden are characters rejected in free text. They are never needed in
// Chinook data and their only plausible use in input is breaking out of a
// statement.
const forbidden = `;"\`

// String trims value and rejects empty input, input longer than maxLength
// runes, and input containing forbidden or control characters. field names
// the input in error messages.
func String(value, field string, maxLength int) (string, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrEmptyInput, field)
	}
	if utf8.RuneCountInString(trimmed) > maxLength {
		return "", fmt.Errorf("%w: %s exceeds %d characters", shared.ErrInputTooLong, field, maxLength)
	}
	if i := strings.IndexAny(trimmed, forbidden); i >= 0 {
		return "", fmt.Errorf("%w: %s may not contain %q", shared.ErrForbiddenChars, field, trimmed[i])
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: %s", shared.ErrControlChars, field)
		}
	}
	return trimmed, nil
}

// PositiveInt parses value as a base-10 integer greater than zero. Signs are
// not accepted: the IDs and limits this validates are plain digit strings.
func PositiveInt(value, field string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: %s", shared.ErrEmptyInput, field)
	}
	for _, r := range trimmed {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("%w: %s must be a positive whole number", shared.ErrNotANumber, field)
		}
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is too large", shared.ErrOutOfRange, field)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s", shared.ErrNotPositive, field)
	}
	return n, nil
}

// MenuChoice parses value as a menu selection between min and max inclusive.
func MenuChoice(value string, min, max int) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: choice", shared.ErrEmptyInput)
	}
	for _, r := range trimmed {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("%w: enter a number between %d and %d", shared.ErrNotANumber, min, max)
		}
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < min || n > max {
		return 0, fmt.Errorf("%w: enter a number between %d and %d", shared.ErrOutOfRange, min, max)
	}
	return n, nil
}

// Confirmation interprets value as a yes/no answer. Only explicit agreement
// ("yes" or "y", any case) confirms.
func Confirmation(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("%w: answer yes or no", shared.ErrConfirmationRequired)
	}
}

// TableName checks that value names a known Chinook table and returns the
// canonical name. Table names cannot be bound as SQL parameters, so this
// allowlist is the gate before one is interpolated into a statement.
func TableName(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: table name", shared.ErrEmptyInput)
	}
	if !models.IsTable(trimmed) {
		return "", fmt.Errorf("%w: %q", shared.ErrUnknownTable, trimmed)
	}
	return trimmed, nil
}

// ColumnName checks that value names one of cols, as reported by the schema,
// and returns the matching column. Matching is exact: the caller displays
// the real column names before asking.
func ColumnName(value string, cols []models.Column) (models.Column, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return models.Column{}, fmt.Errorf("%w: column name", shared.ErrEmptyInput)
	}
	for _, col := range cols {
		if col.Name == trimmed {
			return col, nil
		}
	}
	return models.Column{}, fmt.Errorf("%w: %q", shared.ErrUnknownColumn, trimmed)
}
