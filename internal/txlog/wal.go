// Package txlog holds two standalone pieces of transaction-adjacent
// machinery — a toy write-ahead log and a reader/writer lock manager
// sketch — neither of which is ever called from internal/storage or
// internal/exec. See SPEC_FULL.md §4.11-§4.12 and spec.md §9: whether
// these are intended features awaiting integration or dead code is an
// open question the source left unresolved, so this package replicates
// that status rather than wiring them in.
package txlog

import (
	"bufio"
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Op is the kind of change one log Entry records.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Entry is one append-only log record: a transaction id, the table and
// operation it describes, and an opaque payload (the encoded row, for
// insert/update; the row's key, for delete).
type Entry struct {
	TxID      string    `json:"tx_id"`
	Table     string    `json:"table"`
	Op        Op        `json:"op"`
	Payload   []byte    `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is an append-only, newline-delimited JSON write-ahead log file. It
// has no relationship to the pager's own flush discipline; it exists as a
// standalone durability primitive that nothing currently depends on.
type Log struct {
	path string
	f    *os.File
}

// Open appends-opens (creating if absent) the log file at path.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open wal %s", path)
	}
	return &Log{path: path, f: f}, nil
}

// NewTxID generates a fresh transaction id for a caller about to record a
// sequence of Log calls.
func NewTxID() string {
	return uuid.NewString()
}

// Append writes one entry, stamping its timestamp, and flushes it to disk
// before returning.
func (l *Log) Append(e Entry) error {
	e.Timestamp = time.Now()
	line, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshal wal entry")
	}
	line = append(line, '\n')
	if _, err := l.f.Write(line); err != nil {
		return errors.Wrap(err, "append wal entry")
	}
	return l.f.Sync()
}

// Close closes the underlying file.
func (l *Log) Close() error { return l.f.Close() }

// Recover replays every entry in the log file at path, in order, handing
// each to apply. It is the log's only reader; nothing calls it during
// normal engine operation.
func Recover(path string, apply func(Entry) error) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "open wal %s for recovery", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return errors.Wrap(err, "decode wal entry")
		}
		if err := apply(e); err != nil {
			return err
		}
	}
	return scanner.Err()
}
