// Package storage implements the paged on-disk storage engine: a file
// manager, a buffer-cache pager, slotted row pages, a typed record codec,
// and the catalog/engine façade that ties tables to page ranges.
package storage

import (
	"fmt"

	"github.com/pkg/errors"
)

// EngineError is the base kind for every storage/catalog/execution failure
// raised by this package. Concrete failures are one of the kinds below;
// EngineError itself is returned for failures that don't warrant a more
// specific kind: catalog bookkeeping (duplicate table name, unknown table),
// an unsupported SQL type, an unknown column in an update, a row too large
// for a fresh page, and a failed in-place update.
type EngineError struct {
	msg   string
	cause error
}

func newEngineError(format string, args ...any) *EngineError {
	return &EngineError{msg: fmt.Sprintf(format, args...)}
}

func wrapEngineError(cause error, format string, args ...any) *EngineError {
	return &EngineError{msg: fmt.Sprintf(format, args...), cause: errors.WithStack(cause)}
}

func (e *EngineError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *EngineError) Unwrap() error { return e.cause }

// SchemaError reports a row whose arity, per-column type, or nullability
// disagrees with its table's schema.
type SchemaError struct{ *EngineError }

func newSchemaError(format string, args ...any) *SchemaError {
	return &SchemaError{newEngineError(format, args...)}
}

// PageError reports an out-of-bounds page access or an invalid slot index.
type PageError struct{ *EngineError }

func newPageError(format string, args ...any) *PageError {
	return &PageError{newEngineError(format, args...)}
}

// StorageError reports an I/O failure from the file manager.
type StorageError struct{ *EngineError }

func wrapStorageError(cause error, format string, args ...any) *StorageError {
	return &StorageError{wrapEngineError(cause, format, args...)}
}

// ConstraintViolation reports a PRIMARY KEY duplicate or a NOT NULL
// violation.
type ConstraintViolation struct{ *EngineError }

func newConstraintViolation(format string, args ...any) *ConstraintViolation {
	return &ConstraintViolation{newEngineError(format, args...)}
}
