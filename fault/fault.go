// Package fault defines the error taxonomy shared by the decoder and the
// memory unit.
//
// Every invariant violation in the core is reported as a *Error carrying a
// Kind and the source location that raised it. The core only returns these
// errors; deciding how to present them and whether to stop the run is left
// to a Reporter owned by the caller.
package fault

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// Kind classifies a fault.
type Kind uint8

// Fault kinds.
const (
	KindUnknown Kind = iota
	OutOfBounds
	IllegalValue
	DivideByZero // Reserved for the execute stage
)

// String returns a human readable name for the kind.
func (k Kind) String() string {
	switch k {
	case OutOfBounds:
		return "out of bounds"
	case IllegalValue:
		return "illegal value"
	case DivideByZero:
		return "divide by zero"
	default:
		return "unknown fault"
	}
}

// Sentinels usable with errors.Is. They match any *Error of the same kind.
var (
	ErrOutOfBounds  = &Error{Kind: OutOfBounds}
	ErrIllegalValue = &Error{Kind: IllegalValue}
	ErrDivideByZero = &Error{Kind: DivideByZero}
)

// Error is a fault raised by the core.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "decode" or "memory access"
	Msg  string

	// File and Line locate the check that raised the fault.
	File string
	Line int
}

// New creates a fault of the given kind and records the caller's location.
func New(kind Kind, op, format string, args ...any) *Error {
	e := &Error{
		Kind: kind,
		Op:   op,
		Msg:  fmt.Sprintf(format, args...),
	}

	if _, file, line, ok := runtime.Caller(1); ok {
		e.File = filepath.Base(file)
		e.Line = line
	}

	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	return msg
}

// Location returns "file:line" for the check that raised the fault, or an
// empty string if it is unknown.
func (e *Error) Location() string {
	if e.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", e.File, e.Line)
}

// Is reports whether target is a fault of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindUnknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
