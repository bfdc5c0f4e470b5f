package harness

import (
	"errors"
	"fmt"

	"github.com/roach88/termfixture/internal/scenario"
)

// ErrorCode categorizes generation failures.
type ErrorCode string

const (
	// ErrCodeUnknownKind indicates a scenario kind with no builder.
	ErrCodeUnknownKind ErrorCode = "UNKNOWN_SCENARIO_KIND"

	// ErrCodeMissingField indicates a required input field is absent.
	ErrCodeMissingField ErrorCode = "MISSING_REQUIRED_FIELD"

	// ErrCodeInvalidInput indicates an input, option, env or theme value of
	// the wrong shape.
	ErrCodeInvalidInput ErrorCode = "INVALID_SCENARIO_INPUT"

	// ErrCodeRenderFailure indicates the console failed or panicked.
	ErrCodeRenderFailure ErrorCode = "UPSTREAM_RENDER_FAILURE"

	// ErrCodeSerialization indicates the document could not be encoded or
	// failed its schema.
	ErrCodeSerialization ErrorCode = "SERIALIZATION_FAILURE"

	// ErrCodeOutputWrite indicates the document could not be written.
	ErrCodeOutputWrite ErrorCode = "OUTPUT_WRITE_FAILURE"

	// ErrCodeDuplicateID indicates two scenarios share an id.
	ErrCodeDuplicateID ErrorCode = ErrorCode(scenario.ErrCodeDuplicateID)

	// ErrCodeInvalidCatalog indicates the catalog could not be loaded.
	ErrCodeInvalidCatalog ErrorCode = ErrorCode(scenario.ErrCodeInvalidCatalog)
)

// Error is a generation failure. ScenarioID is empty for run-level failures.
type Error struct {
	Code       ErrorCode
	ScenarioID string
	Message    string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.ScenarioID != "" {
		return fmt.Sprintf("%s: scenario %s: %s", e.Code, e.ScenarioID, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the code carried by err, or "" when err is neither an
// *Error nor a catalog *scenario.LoadError.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var he *Error
	if errors.As(err, &he) {
		return he.Code
	}
	var le *scenario.LoadError
	if errors.As(err, &le) {
		return ErrorCode(le.Code)
	}
	return ""
}

// IsCode reports whether err carries code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
