// Package errs defines the typed error kinds the mesh pre-processor raises
// (spec §7) and the process exit codes the CLI derives from them.
package errs

import "github.com/cpmech/gosl/chk"

// Kind enumerates the four failure categories from spec §7.
type Kind int

const (
	// InvalidInput marks a malformed mesh file, unknown element type, or
	// unsupported generator version.
	InvalidInput Kind = iota
	// OracleFailure marks a non-OK status from the partitioning or
	// reordering oracle. Always fatal; never retried.
	OracleFailure
	// ConsistencyViolation marks an internal invariant failure (a
	// sub-entity vertex not found in its parent cell, non-monotonic
	// offsets, duplicate ownership). Indicates a bug in the reader or the
	// external mesh, not a recoverable condition.
	ConsistencyViolation
	// IOError marks a failure to read or write a file.
	IOError
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case OracleFailure:
		return "OracleFailure"
	case ConsistencyViolation:
		return "ConsistencyViolation"
	case IOError:
		return "IOError"
	default:
		return "Unknown"
	}
}

// Error is a typed, wrappable error carrying a Kind, the operation that
// raised it, and an optional underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return chk.Err("[%s] %s: %v", e.Kind, e.Op, e.Err).Error()
	}
	return chk.Err("[%s] %s", e.Kind, e.Op).Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an Error with no wrapped cause.
func New(kind Kind, op string) *Error {
	return &Error{Kind: kind, Op: op}
}

// Wrap builds an Error wrapping an existing cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// ExitCode maps a Kind to the process exit code the CLI returns (spec
// §6/§7): InvalidInput -> 3, IOError -> 4. OracleFailure and
// ConsistencyViolation are fatal aborts (the CLI treats them as generic
// failures, exit code 1) since the spec gives them no dedicated code.
func (k Kind) ExitCode() int {
	switch k {
	case InvalidInput:
		return 3
	case IOError:
		return 4
	default:
		return 1
	}
}

// ExitCodeFor inspects err and returns the process exit code to use: the
// Kind-derived code for an *Error, 2 for everything else (the CLI's own
// unknown-argument/usage errors reach this path directly without going
// through errs at all, but library code that returns a plain error still
// needs a deterministic fallback).
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(*Error); ok {
		return e.ExitCode()
	}
	return 2
}
