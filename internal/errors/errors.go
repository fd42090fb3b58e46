package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// Kind classifies where in the tool pipeline a failure happened.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindTransport         Kind = "transport"
	KindRPC               Kind = "rpc"
	KindMalformedResponse Kind = "malformed response"
	KindConfig            Kind = "config"
	KindServer            Kind = "server"
)

// MCPError represents a structured error with context
type MCPError struct {
	Kind      Kind
	Operation string
	Message   string
	Code      int // JSON-RPC error code when Kind is KindRPC
	Cause     error
	File      string
	Line      int
}

// Error implements the error interface
func (e *MCPError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s.%s] %s: %v", e.Kind, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s.%s] %s", e.Kind, e.Operation, e.Message)
}

// Unwrap returns the underlying cause
func (e *MCPError) Unwrap() error {
	return e.Cause
}

// GetLocation returns the file and line where the error occurred
func (e *MCPError) GetLocation() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	return "unknown"
}

// New creates a new MCPError
func New(kind Kind, operation, message string) *MCPError {
	file, line := getCallerInfo(2)
	return &MCPError{
		Kind:      kind,
		Operation: operation,
		Message:   message,
		File:      file,
		Line:      line,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, kind Kind, operation, message string) *MCPError {
	if err == nil {
		return nil
	}

	file, line := getCallerInfo(2)
	return &MCPError{
		Kind:      kind,
		Operation: operation,
		Message:   message,
		Cause:     err,
		File:      file,
		Line:      line,
	}
}

// getCallerInfo returns the file and line number of the caller
func getCallerInfo(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", 0
	}

	// Get just the filename, not the full path
	parts := strings.Split(file, "/")
	if len(parts) > 0 {
		file = parts[len(parts)-1]
	}

	return file, line
}

// Predefined error creators for the pipeline stages
var (
	ValidationError = func(operation, message string) *MCPError {
		return New(KindValidation, operation, message)
	}
	ValidationWrap = func(err error, operation, message string) *MCPError {
		return Wrap(err, KindValidation, operation, message)
	}

	TransportError = func(operation, message string) *MCPError {
		return New(KindTransport, operation, message)
	}
	TransportWrap = func(err error, operation, message string) *MCPError {
		return Wrap(err, KindTransport, operation, message)
	}

	MalformedError = func(operation, message string) *MCPError {
		return New(KindMalformedResponse, operation, message)
	}

	ConfigError = func(operation, message string) *MCPError {
		return New(KindConfig, operation, message)
	}
	ConfigWrap = func(err error, operation, message string) *MCPError {
		return Wrap(err, KindConfig, operation, message)
	}

	ServerError = func(operation, message string) *MCPError {
		return New(KindServer, operation, message)
	}
	ServerWrap = func(err error, operation, message string) *MCPError {
		return Wrap(err, KindServer, operation, message)
	}
)

// RPCError creates an error for a JSON-RPC error object returned by the node
func RPCError(operation string, code int, message string) *MCPError {
	file, line := getCallerInfo(1)
	return &MCPError{
		Kind:      KindRPC,
		Operation: operation,
		Message:   message,
		Code:      code,
		File:      file,
		Line:      line,
	}
}

// IsKind checks if an error belongs to a specific kind
func IsKind(err error, kind Kind) bool {
	if mcpErr, ok := err.(*MCPError); ok {
		return mcpErr.Kind == kind
	}
	return false
}

// GetKind returns the kind of an error, or an empty kind for foreign errors
func GetKind(err error) Kind {
	if mcpErr, ok := err.(*MCPError); ok {
		return mcpErr.Kind
	}
	return ""
}

// GetErrorChain returns all errors in the chain
func GetErrorChain(err error) []error {
	var chain []error
	for err != nil {
		chain = append(chain, err)
		if mcpErr, ok := err.(*MCPError); ok {
			err = mcpErr.Cause
		} else {
			break
		}
	}
	return chain
}
