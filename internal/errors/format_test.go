package errors

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestFprintError_CLIError(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	FprintError(&buf, &CLIError{
		Category:    Schema,
		Message:     "failed to load schema from nmdc.yaml",
		Remediation: []string{"check the path", "check the YAML"},
		Err:         stderrors.New("no such file"),
	})

	out := buf.String()
	assert.Contains(t, out, "Schema Error: failed to load schema from nmdc.yaml")
	assert.Contains(t, out, "cause: no such file")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "  - check the path")
	assert.Contains(t, out, "  - check the YAML")
}

func TestFprintError_PlainError(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	FprintError(&buf, stderrors.New("something broke"))
	assert.Equal(t, "Error: something broke\n", buf.String())
}

func TestFprintError_NoRemediation(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	FprintError(&buf, NewRuntimeError("scan aborted"))
	assert.Equal(t, "Runtime Error: scan aborted\n", buf.String())
}
