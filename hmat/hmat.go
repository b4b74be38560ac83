// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hmat implements a hierarchical-matrix (H-matrix) arithmetic
// engine: a data-sparse recursive 2×2 block representation of a dense
// matrix, with far-field blocks compressed to low rank and near-field
// blocks stored densely, together with addition, multiplication, triangular
// solve and block-LU algorithms that all recurse through the same block
// tree.
//
// An H-matrix node is never a single record with boolean variant flags: it
// is the H interface, implemented by exactly three arm types — *Dense,
// *LowRank and *Hier — so "exactly one variant is populated" is a property
// of the Go type system rather than an invariant that has to be asserted at
// every call site.
package hmat

import (
	"gonum.org/v1/gonum/mat"

	"github.com/go-hmat/hmat/cluster"
	"github.com/go-hmat/hmat/lowrank"
)

// DefaultTolerance is the truncation tolerance used whenever a caller passes
// eps <= 0 to Add or Mul. LUInPlace, Solve and TriSolve take no tolerance
// parameter and always truncate at DefaultTolerance.
const DefaultTolerance = lowrank.DefaultTolerance

// H is an H-matrix node: dense, low-rank or hierarchical. The three arm
// types below are its only implementations.
type H interface {
	// Dims returns the (m, n) shape of the block.
	Dims() (m, n int)
	// RowCluster and ColCluster return the row/column index-range nodes
	// this block was built over, or nil if the node was constructed
	// without a cluster tree.
	RowCluster() *cluster.Node
	ColCluster() *cluster.Node

	sealed()
}

// Dense is a dense H-matrix leaf. P is the row-permutation
// vector left by LUInPlace; it is nil until the node has been factorized, at
// which point C holds L strictly below the diagonal (unit diagonal implied)
// and U on and above it.
type Dense struct {
	C *mat.Dense
	P []int

	s, t *cluster.Node
}

// NewDense wraps c as a dense H-matrix leaf. s and t may be nil if the node
// is not (yet) attached to a cluster tree.
func NewDense(c *mat.Dense, s, t *cluster.Node) *Dense {
	return &Dense{C: mat.DenseCopyOf(c), s: s, t: t}
}

func (d *Dense) Dims() (int, int)          { return d.C.Dims() }
func (d *Dense) RowCluster() *cluster.Node { return d.s }
func (d *Dense) ColCluster() *cluster.Node { return d.t }
func (d *Dense) sealed()                   {}

// IsFactorized reports whether LUInPlace has factorized this leaf.
func (d *Dense) IsFactorized() bool { return d.P != nil }

// LowRank is a low-rank H-matrix leaf, representing A·Bᵀ. A has m rows, B
// has n rows; both share k columns. k == 0 is legal and represents the
// zero matrix.
type LowRank struct {
	A, B *mat.Dense

	s, t *cluster.Node
}

// NewLowRank wraps (a, b) as a low-rank H-matrix leaf representing a*bᵀ.
func NewLowRank(a, b *mat.Dense, s, t *cluster.Node) *LowRank {
	_, ak := a.Dims()
	_, bk := b.Dims()
	if ak != bk {
		panic(ErrShape)
	}
	return &LowRank{A: mat.DenseCopyOf(a), B: mat.DenseCopyOf(b), s: s, t: t}
}

func (l *LowRank) Dims() (int, int) {
	m, _ := l.A.Dims()
	n, _ := l.B.Dims()
	return m, n
}
func (l *LowRank) RowCluster() *cluster.Node { return l.s }
func (l *LowRank) ColCluster() *cluster.Node { return l.t }
func (l *LowRank) sealed()                   {}

// Rank returns the number of columns shared by A and B.
func (l *LowRank) Rank() int {
	_, k := l.A.Dims()
	return k
}

// Hier is a hierarchical H-matrix node: a 2×2 block partition whose
// children are each an H. P is populated by LUInPlace with the composed
// permutation [P11; P22+m1]; it is nil until then.
type Hier struct {
	Children [2][2]H
	P        []int

	s, t *cluster.Node
}

// NewHier builds a hierarchical node from a 2×2 array of children, checking
// the row/column split invariants: the two children in a row must agree on
// row count, the two children in a column must agree on column count.
func NewHier(children [2][2]H, s, t *cluster.Node) *Hier {
	m00, n00 := children[0][0].Dims()
	m01, n01 := children[0][1].Dims()
	m10, n10 := children[1][0].Dims()
	m11, n11 := children[1][1].Dims()

	if m00 != m01 {
		panic(ErrChildSizeSum)
	}
	if m10 != m11 {
		panic(ErrChildSizeSum)
	}
	if n00 != n10 {
		panic(ErrChildSizeSum)
	}
	if n01 != n11 {
		panic(ErrChildSizeSum)
	}
	return &Hier{Children: children, s: s, t: t}
}

func (h *Hier) Dims() (int, int) {
	m0, n0 := h.Children[0][0].Dims()
	m1, _ := h.Children[1][0].Dims()
	_, n1 := h.Children[0][1].Dims()
	return m0 + m1, n0 + n1
}
func (h *Hier) RowCluster() *cluster.Node { return h.s }
func (h *Hier) ColCluster() *cluster.Node { return h.t }
func (h *Hier) sealed()                   {}

// splitSizes returns the (m1, m2, n1, n2) row/column split of a hierarchical
// node, read off its (1,1), (2,1) and (1,2) children.
func (h *Hier) splitSizes() (m1, m2, n1, n2 int) {
	m1, n1 = h.Children[0][0].Dims()
	m2, _ = h.Children[1][0].Dims()
	_, n2 = h.Children[0][1].Dims()
	return m1, m2, n1, n2
}

// Size returns the (m, n) shape of any H node; it is the free-function form
// of H.Dims.
func Size(h H) (m, n int) { return h.Dims() }
