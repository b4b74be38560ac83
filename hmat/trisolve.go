// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmat

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/mat"

	"github.com/go-hmat/hmat/cluster"
	"github.com/go-hmat/hmat/internal/kernel"
	"github.com/go-hmat/hmat/lowrank"
)

// TriSolve overwrites b in place with the solution x of a·x = b, where a is
// triangular. a must be *Dense or *Hier; a *LowRank triangular operand is
// never well formed and panics ErrLowRankAsTri. lower selects the triangle
// (lower when true, upper when false); unitDiag treats a's diagonal as
// implicitly 1 rather than reading it from a's storage.
//
// Unlike the lower-triangular recursion, the upper-triangular case is
// implemented directly here rather than by transposing into the
// lower-triangular algorithm and transposing back: it walks a's blocks in
// the mirrored order (A22 before A11, using A12 instead of A21) so the
// straight-line solve cost is paid once instead of twice.
func TriSolve(a, b H, lower, unitDiag bool) {
	switch av := a.(type) {
	case *Dense:
		triSolveDense(av, b, lower, unitDiag)
	case *LowRank:
		panic(ErrLowRankAsTri)
	case *Hier:
		triSolveHier(av, b, lower, unitDiag)
	default:
		panic(ErrShape)
	}
}

func triSolveDense(a *Dense, b H, lower, unitDiag bool) {
	switch bv := b.(type) {
	case *Dense:
		kernel.Trtrs(blas.NoTrans, lower, unitDiag, a.C, bv.C)
	case *LowRank:
		if bv.Rank() == 0 {
			return
		}
		kernel.Trtrs(blas.NoTrans, lower, unitDiag, a.C, bv.A)
	case *Hier:
		d := ToDense(bv)
		kernel.Trtrs(blas.NoTrans, lower, unitDiag, a.C, d)
		setFromDense(bv, d)
	default:
		panic(ErrShape)
	}
}

func triSolveHier(a *Hier, b H, lower, unitDiag bool) {
	switch bv := b.(type) {
	case *Hier:
		triSolveHierHier(a, bv, lower, unitDiag)
	default:
		d := ToDense(b)
		wd := wrapDense(d, nil, nil)
		triSolveHierDense(a, wd, lower, unitDiag)
		setFromDense(b, wd.C)
	}
}

func triSolveHierHier(a, b *Hier, lower, unitDiag bool) {
	am1, am2, _, _ := a.splitSizes()
	bm1, bm2, _, _ := b.splitSizes()
	if am1 != bm1 || am2 != bm2 {
		panic(ErrSplitMismatch)
	}

	if lower {
		TriSolve(a.Children[0][0], b.Children[0][0], lower, unitDiag)
		TriSolve(a.Children[0][0], b.Children[0][1], lower, unitDiag)
		for j := 0; j < 2; j++ {
			t := Mul(a.Children[1][0], b.Children[0][j], DefaultTolerance)
			Add(b.Children[1][j], t, -1, DefaultTolerance)
		}
		TriSolve(a.Children[1][1], b.Children[1][0], lower, unitDiag)
		TriSolve(a.Children[1][1], b.Children[1][1], lower, unitDiag)
	} else {
		TriSolve(a.Children[1][1], b.Children[1][0], lower, unitDiag)
		TriSolve(a.Children[1][1], b.Children[1][1], lower, unitDiag)
		for j := 0; j < 2; j++ {
			t := Mul(a.Children[0][1], b.Children[1][j], DefaultTolerance)
			Add(b.Children[0][j], t, -1, DefaultTolerance)
		}
		TriSolve(a.Children[0][0], b.Children[0][0], lower, unitDiag)
		TriSolve(a.Children[0][0], b.Children[0][1], lower, unitDiag)
	}
}

// triSolveHierDense runs the same block algorithm as triSolveHierHier but
// against a single dense right-hand side, sliced (as true views, so writes
// land directly in b.C) at a's row split instead of being pre-partitioned
// into a 2×2 tree.
func triSolveHierDense(a *Hier, b *Dense, lower, unitDiag bool) {
	m1, m2, _, _ := a.splitSizes()
	_, p := b.Dims()
	b1 := wrapDense(b.C.Slice(0, m1, 0, p).(*mat.Dense), nil, nil)
	b2 := wrapDense(b.C.Slice(m1, m1+m2, 0, p).(*mat.Dense), nil, nil)

	if lower {
		TriSolve(a.Children[0][0], b1, lower, unitDiag)
		t := Mul(a.Children[1][0], b1, DefaultTolerance)
		Add(b2, t, -1, DefaultTolerance)
		TriSolve(a.Children[1][1], b2, lower, unitDiag)
	} else {
		TriSolve(a.Children[1][1], b2, lower, unitDiag)
		t := Mul(a.Children[0][1], b2, DefaultTolerance)
		Add(b1, t, -1, DefaultTolerance)
		TriSolve(a.Children[0][0], b1, lower, unitDiag)
	}
}

// wrapDense wraps c as a Dense leaf without copying, so in-place solves
// write straight through to c's backing array. It is an internal-only
// escape hatch from NewDense's copy-on-construct contract, used for the
// scratch row-block views inside trisolve and LU.
func wrapDense(c *mat.Dense, s, t *cluster.Node) *Dense {
	return &Dense{C: c, s: s, t: t}
}

// setFromDense overwrites h's contents so that it represents d, preserving
// h's own variant: a Dense leaf gets d copied in as C, a LowRank leaf is
// recompressed from d, and a Hier node has d re-split along its existing
// block structure and assigned recursively.
func setFromDense(h H, d *mat.Dense) {
	switch v := h.(type) {
	case *Dense:
		v.C = mat.DenseCopyOf(d)
	case *LowRank:
		v.A, v.B = lowrank.Compress(d, DefaultTolerance, -1)
	case *Hier:
		m1, m2, n1, n2 := v.splitSizes()
		for i, rows := range [2]int{m1, m2} {
			for j, cols := range [2]int{n1, n2} {
				r0, c0 := blockOrigin(i, j, m1, n1)
				sub := mat.DenseCopyOf(d.Slice(r0, r0+rows, c0, c0+cols))
				setFromDense(v.Children[i][j], sub)
			}
		}
	default:
		panic(ErrShape)
	}
}
