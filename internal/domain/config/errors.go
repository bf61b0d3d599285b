package config

import "fmt"

// UserError is a user-facing configuration error with a suggestion.
type UserError struct {
	Message    string
	Context    string
	Suggestion string
	Underlying error
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s (at %s)", e.Message, e.Context)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// NewConfigNotFoundError creates an error for a missing manifest file.
func NewConfigNotFoundError(path string) *UserError {
	return &UserError{
		Message:    "configuration file not found",
		Context:    path,
		Suggestion: "Create an espshell.yaml manifest, or pass --config with its location.",
	}
}

// NewYAMLParseError creates an error for invalid manifest YAML.
func NewYAMLParseError(path string, err error) *UserError {
	return &UserError{
		Message:    "manifest is not valid YAML",
		Context:    path,
		Suggestion: "Check indentation and quoting; YAML is whitespace sensitive.",
		Underlying: err,
	}
}

// NewTOMLParseError creates an error for an invalid rust-toolchain.toml.
func NewTOMLParseError(path string, err error) *UserError {
	return &UserError{
		Message:    "toolchain pin is not valid TOML",
		Context:    path,
		Suggestion: "rust-toolchain.toml must contain a [toolchain] table with a channel string.",
		Underlying: err,
	}
}
