package scenario

import "fmt"

// Load error codes.
const (
	ErrCodeInvalidCatalog = "INVALID_CATALOG"
	ErrCodeDuplicateID    = "DUPLICATE_SCENARIO_ID"
	ErrCodeInvalidID      = "INVALID_SCENARIO_ID"
	ErrCodeUnknownKind    = "UNKNOWN_SCENARIO_KIND"
)

// LoadError reports why a catalog was rejected.
type LoadError struct {
	Code       string
	ScenarioID string
	Message    string
	Err        error
}

func (e *LoadError) Error() string {
	if e.ScenarioID != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.ScenarioID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
