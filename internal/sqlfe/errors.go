package sqlfe

import "github.com/pkg/errors"

// ParseError reports a statement the tokenizer or parser rejected: an
// unterminated string, an unrecognized token where a keyword/symbol was
// expected, or trailing input after a complete statement. It is the
// sqlfe-side half of the QueryError taxonomy spec.md §7 describes
// (QueryError -> ParseError | ExecutionError); the exec package supplies
// the other half as exec.ExecutionError.
type ParseError struct{ cause error }

func newParseError(cause error) *ParseError { return &ParseError{cause: errors.WithStack(cause)} }

func (e *ParseError) Error() string { return e.cause.Error() }
func (e *ParseError) Unwrap() error { return e.cause }
