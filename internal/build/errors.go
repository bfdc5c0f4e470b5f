package build

import (
	"errors"
	"fmt"

	"github.com/roach88/termfixture/internal/scenario"
)

// Sentinel causes wrapped by FieldError.
var (
	ErrUnknownKind  = errors.New("unknown scenario kind")
	ErrMissingField = errors.New("missing required field")
	ErrInvalidField = errors.New("invalid field")
)

// FieldError reports a scenario input that could not be built.
type FieldError struct {
	Kind scenario.Kind
	// Field is the dotted path of the offending input field, empty for
	// unknown kinds.
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: input.%s: %s", e.Kind, e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// IsMissingField reports whether err is a missing required field.
func IsMissingField(err error) bool {
	return errors.Is(err, ErrMissingField)
}

// IsUnknownKind reports whether err names a kind with no builder.
func IsUnknownKind(err error) bool {
	return errors.Is(err, ErrUnknownKind)
}
