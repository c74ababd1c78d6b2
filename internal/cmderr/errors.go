// Package cmderr classifies failures of operator commands so that the interactive
// shell can handle every one of them at a single command boundary.
//
// ERROR KINDS:
//   - Validation: malformed command, rejected before any request is sent
//   - Transport: the control API client returned no result at all
//   - Protocol: the control API answered with an unexpected status code
//   - Resource: the command names an unknown subgraph, file or secondary id
//
// None of the kinds terminates the shell. Message converts an error into the single
// line shown to the operator; transport failures produce no line because the
// client already logged the failure when it happened.
package cmderr

import (
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Kind represents the classification of a command failure
type Kind int

const (
	// KindValidation marks malformed operator input
	KindValidation Kind = iota
	// KindTransport marks a control API call that produced no result
	KindTransport
	// KindProtocol marks a response code outside the expected set
	KindProtocol
	// KindResource marks a reference to something that does not exist
	KindResource
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Error wraps an error with its Kind and the operator-facing message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String() + " error"
	}
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a validation error with a formatted message.
func Validation(format string, v ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, v...)}
}

// Transport wraps the failure reported by the control API client.
func Transport(err error) error {
	return &Error{Kind: KindTransport, Err: err}
}

// Protocol reports an unexpected status code for the request described by op.
func Protocol(op string, code int) error {
	return &Error{
		Kind:    KindProtocol,
		Message: "Error: unknown response.",
		Err:     fmt.Errorf("%s returned status %d", op, code),
	}
}

// Resource returns a resource error with a formatted message.
func Resource(format string, v ...any) error {
	return &Error{Kind: KindResource, Message: fmt.Sprintf(format, v...)}
}

// KindOf returns the Kind of err, and false when err carries no classification.
func KindOf(err error) (Kind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Message returns the single line to show the operator for err. Transport errors
// and nil produce an empty string. Protocol errors only show their message; the
// status code is logged by the caller.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ce *Error
	if !errors.As(err, &ce) {
		return "Error: " + err.Error()
	}
	switch ce.Kind {
	case KindTransport:
		return ""
	case KindProtocol:
		return ce.Message
	default:
		return ce.Error()
	}
}

// IsConnectionRefused checks if an error indicates "connection refused"
// using proper error type checking rather than string matching.
//
// Used by the control API client to give the operator a hint that the control
// server is not running, which is the most common transport failure.
func IsConnectionRefused(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return errors.Is(err, syscall.ECONNREFUSED)
}
