package storage

import "testing"

func TestRowSetPreservesInsertionOrder(t *testing.T) {
	r := NewRow()
	r.Set("b", int64(2))
	r.Set("a", int64(1))
	r.Set("c", int64(3))

	keys := r.Keys()
	want := []string{"b", "a", "c"}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestRowSetOverwriteKeepsOriginalPosition(t *testing.T) {
	r := NewRow()
	r.Set("a", int64(1))
	r.Set("b", int64(2))
	r.Set("a", int64(99))

	keys := r.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("keys = %v, want [a b]", keys)
	}
	v, _ := r.Get("a")
	if v != int64(99) {
		t.Errorf("a = %v, want 99", v)
	}
}

func TestRowGetMissingKey(t *testing.T) {
	r := NewRow()
	_, ok := r.Get("nope")
	if ok {
		t.Fatal("expected Get to report false for a missing key")
	}
}

func TestRowCloneIsIndependent(t *testing.T) {
	r := NewRow()
	r.Set("a", int64(1))
	clone := r.Clone()
	clone.Set("a", int64(2))

	orig, _ := r.Get("a")
	cloned, _ := clone.Get("a")
	if orig != int64(1) || cloned != int64(2) {
		t.Errorf("orig=%v cloned=%v, want 1, 2", orig, cloned)
	}
}

func TestRowKeysAreCaseFolded(t *testing.T) {
	r := NewRow()
	r.Set("NAME", "alice")
	if _, ok := r.Get("name"); !ok {
		t.Fatal("expected Get(\"name\") to find a key set as \"NAME\"")
	}
}
