// Package errors provides sentinel errors and error types for the
// move-script engine. It defines common error conditions and structured
// error types that preserve context while allowing error inspection with
// errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrUndefinedLabel indicates a jmp/jne referenced a label that does
	// not exist in the current chain. This is the one case the
	// interpreter treats as fatal rather than degrading silently.
	ErrUndefinedLabel = errors.New("undefined label in chain")

	// ErrOpcodeBudgetExceeded indicates a script dispatched more opcodes
	// than its configured budget during a single Execute call.
	ErrOpcodeBudgetExceeded = errors.New("opcode dispatch budget exceeded")

	// ErrUnknownPiece indicates a script lookup for a piece kind/side
	// combination that has no registered script.
	ErrUnknownPiece = errors.New("unknown piece kind")

	// ErrInvalidSnapshot indicates a board snapshot failed validation
	// (e.g. non-positive dimensions, a piece position out of bounds).
	ErrInvalidSnapshot = errors.New("invalid board snapshot")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// EvalError wraps errors with interpreter context: which chain and token
// position the failure occurred at, and which piece's script was running.
// It implements the error interface and supports unwrapping via
// errors.Is() and errors.As().
type EvalError struct {
	Err        error  // The underlying error
	PieceName  string // The effective kind of the piece whose script failed
	ChainIndex int    // Which ;-terminated chain the failure occurred in
	TokenIndex int    // Program counter at the point of failure
}

// Error returns a formatted error message including all available context.
func (e *EvalError) Error() string {
	var parts []string

	if e.PieceName != "" {
		parts = append(parts, fmt.Sprintf("piece %q", e.PieceName))
	}
	parts = append(parts, fmt.Sprintf("chain %d", e.ChainIndex))
	if e.TokenIndex > 0 {
		parts = append(parts, fmt.Sprintf("token %d", e.TokenIndex))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the EvalError wrapper.
func (e *EvalError) Unwrap() error {
	return e.Err
}

// ParseError represents a lexing/parsing error with script location
// context. The lexer itself never fails (malformed input degrades to
// zero operands or an `end` token per the language's robustness-over-
// rejection rule), and the label prepass reports no errors either, so
// neither of them returns a ParseError.
type ParseError struct {
	Err    error  // The underlying error
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
	Token  string // The offending token text, if any
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Line > 0 {
		loc := fmt.Sprintf("line %d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
		parts = append(parts, loc)
	}
	if e.Token != "" {
		parts = append(parts, fmt.Sprintf("near %q", e.Token))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ", "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
