package txlog

import (
	"path/filepath"
	"testing"
)

func TestAppendAndRecoverReplaysInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wal.log")

	log, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	tx := NewTxID()
	entries := []Entry{
		{TxID: tx, Table: "users", Op: OpInsert, Payload: []byte("row-1")},
		{TxID: tx, Table: "users", Op: OpUpdate, Payload: []byte("row-1-updated")},
		{TxID: tx, Table: "users", Op: OpDelete, Payload: []byte("row-1")},
	}
	for _, e := range entries {
		if err := log.Append(e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := log.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var replayed []Entry
	err = Recover(path, func(e Entry) error {
		replayed = append(replayed, e)
		return nil
	})
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if len(replayed) != len(entries) {
		t.Fatalf("got %d entries, want %d", len(replayed), len(entries))
	}
	for i, e := range entries {
		if replayed[i].Op != e.Op || string(replayed[i].Payload) != string(e.Payload) {
			t.Errorf("entry %d: got %+v, want %+v", i, replayed[i], e)
		}
	}
}

func TestRecoverNonexistentFileIsNoop(t *testing.T) {
	err := Recover(filepath.Join(t.TempDir(), "missing.log"), func(Entry) error {
		t.Fatal("apply should never be called for a missing log")
		return nil
	})
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
}

func TestNewTxIDIsUnique(t *testing.T) {
	a, b := NewTxID(), NewTxID()
	if a == b {
		t.Fatal("expected two distinct transaction ids")
	}
}
