package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"schema":        {category: Schema, want: "Schema Error"},
		"data":          {category: Data, want: "Data Integrity Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"unknown":       {category: ErrorCategory(99), want: "Error"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestCLIError_Error(t *testing.T) {
	t.Parallel()

	bare := NewSchemaError("schema is inconsistent")
	assert.Equal(t, "schema is inconsistent", bare.Error())

	wrapped := &CLIError{
		Category: Runtime,
		Message:  "scan aborted",
		Err:      stderrors.New("cursor closed"),
	}
	assert.Equal(t, "scan aborted: cursor closed", wrapped.Error())
}

func TestCLIError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("connection refused")
	err := ConnectionError("mongodb://localhost:27017", cause)

	assert.True(t, stderrors.Is(err, cause))

	var cliErr *CLIError
	require.True(t, stderrors.As(fmt.Errorf("outer: %w", err), &cliErr))
	assert.Equal(t, Configuration, cliErr.Category)
}

func TestConstructors_CarryRemediation(t *testing.T) {
	t.Parallel()

	err := NewArgumentError("unknown subject", "use collection or class")
	assert.Equal(t, Argument, err.Category)
	assert.Equal(t, []string{"use collection or class"}, err.Remediation)

	assert.Equal(t, Configuration, NewConfigError("x").Category)
	assert.Equal(t, Schema, NewSchemaError("x").Category)
	assert.Equal(t, Data, NewDataError("x").Category)
	assert.Equal(t, Runtime, NewRuntimeError("x").Category)
}

func TestWrappingHelpers(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("boom")

	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantInMsg    string
	}{
		"config parse": {
			err:          ConfigParseError("/etc/refscan.yml", cause),
			wantCategory: Configuration,
			wantInMsg:    "/etc/refscan.yml",
		},
		"schema load": {
			err:          SchemaLoadError("nmdc.yaml", cause),
			wantCategory: Schema,
			wantInMsg:    "nmdc.yaml",
		},
		"connection": {
			err:          ConnectionError("mongodb://db:27017", cause),
			wantCategory: Configuration,
			wantInMsg:    "mongodb://db:27017",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.Contains(t, tt.err.Message, tt.wantInMsg)
			assert.NotEmpty(t, tt.err.Remediation)
			assert.True(t, stderrors.Is(tt.err, cause))
		})
	}
}
