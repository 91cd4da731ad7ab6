// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package tensor

// Arena is an append-only owning container for transient interior tensors
// produced by a body's per-step computation. Go pointers never relocate, so
// the "stable address" requirement the original graph representation needed
// is automatic here; Arena's job is purely lifetime bookkeeping: it keeps
// every tensor built during a corner computation reachable until the next
// Clear, so a caller that defers Backward past that point is working with
// tensors the arena already let go of.
type Arena struct {
	nodes []*Tensor
}

// NewArena returns an empty arena.
func NewArena() *Arena { return &Arena{} }

// Put records t in the arena and returns t, so construction and
// registration can be chained: x := arena.Put(tensor.Add(a, b)).
func (ar *Arena) Put(t *Tensor) *Tensor {
	ar.nodes = append(ar.nodes, t)
	return t
}

// Len reports how many tensors are currently held.
func (ar *Arena) Len() int { return len(ar.nodes) }

// Clear drops the arena's references to every held tensor. Any backward
// closure that still depends on them must have already run: this is the
// caller's responsibility, not the arena's, since Go's garbage collector
// (not this type) is what would actually reclaim memory for tensors with no
// other referrers.
func (ar *Arena) Clear() {
	ar.nodes = ar.nodes[:0]
}
