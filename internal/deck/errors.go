package deck

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeHandSize  = errors.New("hand size must not be negative")
	ErrHandExceedsDeck   = errors.New("hand size exceeds deck size")
	ErrNegativeCount     = errors.New("category count must not be negative")
	ErrInvalidRange      = errors.New("category range must satisfy 0 <= min <= max")
	ErrCountExceedsDeck  = errors.New("category count exceeds deck size")
	ErrCountsExceedDeck  = errors.New("category counts exceed deck size")
	ErrDuplicateCategory = errors.New("duplicate category name")
	ErrEmptyCategoryName = errors.New("category name must not be empty")
	ErrNoSamples         = errors.New("sample count must be positive")
)

// ConfigError reports an invalid deck specification. Category is empty when
// the problem concerns the deck as a whole.
type ConfigError struct {
	Category string
	Err      error
	Detail   string
}

func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Category != "" {
		return fmt.Sprintf("invalid deck configuration: category %q: %s", e.Category, msg)
	}
	return "invalid deck configuration: " + msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is, or wraps, a *ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

func configErr(category string, err error, format string, args ...any) *ConfigError {
	return &ConfigError{Category: category, Err: err, Detail: fmt.Sprintf(format, args...)}
}
