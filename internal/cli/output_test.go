package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/termfixture/internal/harness"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(map[string]string{"result": "success"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	require.NoError(t, formatter.Error("SERIALIZATION_FAILURE", "document schema", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SERIALIZATION_FAILURE", resp.Error.Code)
	assert.Equal(t, "document schema", resp.Error.Message)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Success(GenerateResult{Path: "out.json", Cases: 3, SourceVersion: "v1"}))
	assert.Equal(t, "\u2713 Wrote 3 cases to out.json (v1)\n", buf.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	require.NoError(t, formatter.Error("COMMAND_ERROR", "boom", map[string]string{"file": "x"}))
	assert.Contains(t, buf.String(), "Error [COMMAND_ERROR]: boom")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_FailKeepsGenerationCode(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	cause := fmt.Errorf("run: %w", &harness.Error{Code: harness.ErrCodeMissingField, ScenarioID: "rule/basic", Message: "build"})
	err := formatter.Fail(ExitCommandError, "generate", cause)

	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, cause)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_REQUIRED_FIELD", resp.Error.Code)
	assert.Equal(t, "rule/basic", resp.Error.ScenarioID)
}

func TestOutputFormatter_FailPlainError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Fail(ExitFailure, "verify", errors.New("nope"))
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error [COMMAND_ERROR]: verify: nope\n", buf.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, diag := &bytes.Buffer{}, &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    out,
				ErrWriter: diag,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("Processing %s", "catalog.yaml")

			assert.Empty(t, out.String(), "diagnostics never reach stdout")
			if tt.wantLog {
				assert.Contains(t, diag.String(), "Processing catalog.yaml")
			} else {
				assert.Empty(t, diag.String())
			}
		})
	}
}

func TestOutputFormatter_LoggerLevel(t *testing.T) {
	diag := &bytes.Buffer{}
	quiet := &OutputFormatter{ErrWriter: diag}
	quiet.Logger().Debug("hidden")
	quiet.Logger().Info("shown")
	assert.NotContains(t, diag.String(), "hidden")
	assert.Contains(t, diag.String(), "shown")

	diag.Reset()
	loud := &OutputFormatter{ErrWriter: diag, Verbose: true}
	loud.Logger().Debug("detail")
	assert.Contains(t, diag.String(), "detail")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "x")))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", WrapExitError(ExitCommandError, "x", errors.New("y")))))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.New("plain")))
}
