package exec

import "github.com/pkg/errors"

// ExecutionError reports a statement that parsed and planned fine but
// cannot run: the executor builder returns it for an unsupported plan
// node. Unknown tables and columns are reported by the storage layer as
// storage errors, not as ExecutionError. It is the exec-side half of the
// QueryError taxonomy; sqlfe.ParseError is the other half.
type ExecutionError struct{ cause error }

func newExecutionError(format string, args ...any) *ExecutionError {
	return &ExecutionError{cause: errors.Errorf(format, args...)}
}

func (e *ExecutionError) Error() string { return e.cause.Error() }
func (e *ExecutionError) Unwrap() error { return e.cause }
