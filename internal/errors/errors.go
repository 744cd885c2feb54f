// Package errors defines the CLI error taxonomy: categorized errors with
// remediation hints, printed in a consistent format before exit.
package errors

import "fmt"

// ErrorCategory classifies an error for reporting and exit behavior.
type ErrorCategory int

const (
	// Argument errors are invalid command-line arguments or flags.
	Argument ErrorCategory = iota
	// Configuration errors are bad config values or unreachable/absent
	// databases: fatal before scanning begins.
	Configuration
	// Schema errors are inconsistencies in the schema itself, fatal at
	// catalog-build time.
	Schema
	// Data errors are integrity emergencies found mid-scan, such as a
	// document whose type tag maps to no schema class.
	Data
	// Runtime errors are everything else that aborts a scan.
	Runtime
)

// String returns the human-readable category name.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Schema:
		return "Schema Error"
	case Data:
		return "Data Integrity Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is an error carrying a category and remediation steps.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Remediation []string
	Err         error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *CLIError) Unwrap() error { return e.Err }

// NewArgumentError returns an Argument-category error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewConfigError returns a Configuration-category error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// NewSchemaError returns a Schema-category error.
func NewSchemaError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Schema, Message: message, Remediation: remediation}
}

// NewDataError returns a Data-category error.
func NewDataError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Data, Message: message, Remediation: remediation}
}

// NewRuntimeError returns a Runtime-category error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Runtime, Message: message, Remediation: remediation}
}

// ConfigParseError wraps a failure to load or validate configuration.
func ConfigParseError(path string, err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("failed to load configuration from %s", path),
		Remediation: []string{
			"check that the file is valid YAML",
			"run with --help to see the expected settings",
		},
		Err: err,
	}
}

// SchemaLoadError wraps a failure to read or index the schema file.
func SchemaLoadError(path string, err error) *CLIError {
	return &CLIError{
		Category: Schema,
		Message:  fmt.Sprintf("failed to load schema from %s", path),
		Remediation: []string{
			"check that the path points at the schema YAML file",
			"check that every is_a parent and slot range the schema names is defined",
		},
		Err: err,
	}
}

// ConnectionError wraps a failure to reach the database server.
func ConnectionError(uri string, err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("cannot connect to MongoDB at %s", uri),
		Remediation: []string{
			"check that the server is running and the URI is correct",
			"set REFSCAN_MONGO_URI or pass --mongo-uri",
		},
		Err: err,
	}
}
