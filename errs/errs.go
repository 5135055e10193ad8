// Package errs defines the error taxonomy shared across forcegraph: a
// fixed set of kinds with constructor functions and Is* predicates, in
// the style of aistore's cmn/cos error conventions.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the propagation-policy buckets.
type Kind int

const (
	// ConfigError indicates parameters missing or out of range at startup.
	ConfigError Kind = iota
	// TopologyError indicates the graph builder rejected its input.
	TopologyError
	// DeviceError indicates compute device init or step failure; recoverable by fallback.
	DeviceError
	// ProtocolError indicates a malformed wire frame or unknown control message.
	ProtocolError
	// TransportError indicates a channel send/receive or upgrade failure.
	TransportError
	// NotFound indicates a request referenced an unknown node id.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "ConfigError"
	case TopologyError:
		return "TopologyError"
	case DeviceError:
		return "DeviceError"
	case ProtocolError:
		return "ProtocolError"
	case TransportError:
		return "TransportError"
	case NotFound:
		return "NotFound"
	default:
		return "UnknownError"
	}
}

// Error is the concrete error type carried through the system. It wraps
// an optional cause and always reports a Kind so callers can branch on
// the propagation policy in spec §7 without string matching.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newf(k Kind, format string, a ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, a...)}
}

func wrapf(k Kind, cause error, format string, a ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, a...), Cause: cause}
}

// NewConfigError builds a ConfigError.
func NewConfigError(format string, a ...any) *Error { return newf(ConfigError, format, a...) }

// NewTopologyError builds a TopologyError.
func NewTopologyError(format string, a ...any) *Error { return newf(TopologyError, format, a...) }

// NewDeviceError builds a DeviceError, optionally wrapping a lower-level cause.
func NewDeviceError(cause error, format string, a ...any) *Error {
	return wrapf(DeviceError, cause, format, a...)
}

// NewProtocolError builds a ProtocolError.
func NewProtocolError(format string, a ...any) *Error { return newf(ProtocolError, format, a...) }

// NewTransportError builds a TransportError, optionally wrapping a lower-level cause.
func NewTransportError(cause error, format string, a ...any) *Error {
	return wrapf(TransportError, cause, format, a...)
}

// NewNotFound builds a NotFound error.
func NewNotFound(format string, a ...any) *Error { return newf(NotFound, format, a...) }

// Is reports whether err is a *Error of the given Kind.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// IsConfigError reports whether err is a ConfigError.
func IsConfigError(err error) bool { return Is(err, ConfigError) }

// IsTopologyError reports whether err is a TopologyError.
func IsTopologyError(err error) bool { return Is(err, TopologyError) }

// IsDeviceError reports whether err is a DeviceError.
func IsDeviceError(err error) bool { return Is(err, DeviceError) }

// IsProtocolError reports whether err is a ProtocolError.
func IsProtocolError(err error) bool { return Is(err, ProtocolError) }

// IsTransportError reports whether err is a TransportError.
func IsTransportError(err error) bool { return Is(err, TransportError) }

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return Is(err, NotFound) }
