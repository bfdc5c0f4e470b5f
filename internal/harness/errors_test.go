package harness

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/termfixture/internal/scenario"
)

func TestError_Message(t *testing.T) {
	err := &Error{Code: ErrCodeMissingField, ScenarioID: "rule/basic", Message: "build", Err: errors.New("input.title: missing")}
	assert.Equal(t, "MISSING_REQUIRED_FIELD: scenario rule/basic: build: input.title: missing", err.Error())

	err = &Error{Code: ErrCodeOutputWrite, Message: "out.json"}
	assert.Equal(t, "OUTPUT_WRITE_FAILURE: out.json", err.Error())
}

func TestIsCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("generate: %w", &Error{Code: ErrCodeRenderFailure, ScenarioID: "x"})
	assert.True(t, IsCode(err, ErrCodeRenderFailure))
	assert.False(t, IsCode(err, ErrCodeSerialization))
}

func TestIsCode_CatalogErrors(t *testing.T) {
	err := fmt.Errorf("load: %w", &scenario.LoadError{Code: scenario.ErrCodeDuplicateID, ScenarioID: "a"})
	assert.True(t, IsCode(err, ErrCodeDuplicateID))
	assert.Equal(t, ErrCodeDuplicateID, CodeOf(err))
}

func TestIsCode_Plain(t *testing.T) {
	assert.False(t, IsCode(errors.New("boom"), ErrCodeRenderFailure))
	assert.False(t, IsCode(nil, ""))
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("boom")))
}
