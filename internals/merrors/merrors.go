// Package merrors contains the error kinds every operation reports
package merrors

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a failure
type Kind int

const (
	// KindUnknown is used for errors that did not pass through this package
	KindUnknown Kind = iota
	// KindConfig is a missing environment variable or setting
	KindConfig
	// KindIO is a filesystem failure
	KindIO
	// KindNetwork is a transport failure or a non-success HTTP status
	KindNetwork
	// KindProtocol is a malformed or unexpected OAuth redirect
	KindProtocol
	// KindAuth is a rejected or malformed token exchange
	KindAuth
	// KindTimeout is a wait that ran out or got canceled
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "ConfigError"
	case KindIO:
		return "IOError"
	case KindNetwork:
		return "NetworkError"
	case KindProtocol:
		return "ProtocolError"
	case KindAuth:
		return "AuthError"
	case KindTimeout:
		return "TimeoutError"
	default:
		return "Error"
	}
}

// Error is an error that might get displayed to the user
type Error struct {
	Kind Kind
	// Op is the operation that failed, like "download"
	Op string
	// Err is the message shown to the user
	Err string
	// Help is optional text that explains how to fix the problem
	Help string
	// Cause is the underlying error, if any
	Cause error
}

func (e *Error) Error() string {
	str := e.Err
	if str == "" && e.Cause != nil {
		str = e.Cause.Error()
	}
	if e.Op != "" {
		str = e.Op + ": " + str
	}
	return str
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error { return e.Cause }

// Format prints the stack of the cause for `%+v`
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') && e.Cause != nil {
			fmt.Fprintf(s, "%s (%s)\n%+v", e.Error(), e.Kind, e.Cause)
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// New returns a new error without a cause
func New(kind Kind, op string, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Sprintf(format, a...)}
}

// Wrap classifies err. The message of err is used as the user facing text.
// Returns nil if err is nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err.Error(), Cause: pkgerrors.WithStack(err)}
}

// Wrapf is like Wrap but with a custom message
func Wrapf(kind Kind, op string, err error, format string, a ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: fmt.Sprintf(format, a...), Cause: pkgerrors.WithStack(err)}
}

// KindOf returns the kind of the first *Error in the chain of err
func KindOf(err error) Kind {
	var mErr *Error
	if errors.As(err, &mErr) {
		return mErr.Kind
	}
	return KindUnknown
}

// Is reports whether err is of the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Flatten turns err into a plain string error. This is what crosses into the front end.
func Flatten(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(err.Error())
}
