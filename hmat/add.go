// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmat

import (
	"gonum.org/v1/gonum/mat"

	"github.com/go-hmat/hmat/lowrank"
)

// Add computes a ← a + s*b in place, preserving the format of a. The
// dispatch table is keyed on (variant(a), variant(b)); all nine pairs are
// handled below. eps <= 0 uses DefaultTolerance.
func Add(a H, b H, s, eps float64) {
	if eps <= 0 {
		eps = DefaultTolerance
	}
	am, an := a.Dims()
	bm, bn := b.Dims()
	if am != bm || an != bn {
		panic(ErrShape)
	}

	switch av := a.(type) {
	case *Dense:
		addDense(av, b, s)
	case *LowRank:
		addLowRank(av, b, s, eps)
	case *Hier:
		addHier(av, b, s, eps)
	default:
		panic(ErrShape)
	}
}

func addDense(a *Dense, b H, s float64) {
	switch bv := b.(type) {
	case *Dense:
		a.C.Add(a.C, scale(s, bv.C))
	case *LowRank:
		if bv.Rank() == 0 {
			return
		}
		var outer mat.Dense
		outer.Mul(bv.A, bv.B.T())
		a.C.Add(a.C, scale(s, &outer))
	case *Hier:
		bd := ToDense(bv)
		a.C.Add(a.C, scale(s, bd))
	default:
		panic(ErrShape)
	}
}

func addLowRank(a *LowRank, b H, s, eps float64) {
	switch bv := b.(type) {
	case *Dense:
		var outer mat.Dense
		if a.Rank() > 0 {
			outer.Mul(a.A, a.B.T())
		} else {
			m, n := a.Dims()
			outer = *mat.NewDense(m, n, nil)
		}
		outer.Add(&outer, scale(s, bv.C))
		a.A, a.B = lowrank.Compress(&outer, eps, -1)
	case *LowRank:
		a.A, a.B = lowrank.RoundedAdd(a.A, a.B, s, bv.A, bv.B, eps)
	case *Hier:
		bd := NewDense(ToDense(bv), bv.RowCluster(), bv.ColCluster())
		addLowRank(a, bd, s, eps)
	default:
		panic(ErrShape)
	}
}

func addHier(a *Hier, b H, s, eps float64) {
	m1, m2, n1, n2 := a.splitSizes()
	switch bv := b.(type) {
	case *Dense:
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				r0, c0 := blockOrigin(i, j, m1, n1)
				rows, cols := childExtent(i, j, m1, m2, n1, n2)
				sub := mat.DenseCopyOf(bv.C.Slice(r0, r0+rows, c0, c0+cols))
				Add(a.Children[i][j], NewDense(sub, nil, nil), s, eps)
			}
		}
	case *LowRank:
		if bv.Rank() == 0 {
			return
		}
		aRows := [2]*mat.Dense{
			mat.DenseCopyOf(bv.A.Slice(0, m1, 0, bv.Rank())),
			mat.DenseCopyOf(bv.A.Slice(m1, m1+m2, 0, bv.Rank())),
		}
		bRows := [2]*mat.Dense{
			mat.DenseCopyOf(bv.B.Slice(0, n1, 0, bv.Rank())),
			mat.DenseCopyOf(bv.B.Slice(n1, n1+n2, 0, bv.Rank())),
		}
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				child := NewLowRank(aRows[i], bRows[j], nil, nil)
				Add(a.Children[i][j], child, s, eps)
			}
		}
	case *Hier:
		bm1, bm2, bn1, bn2 := bv.splitSizes()
		if m1 != bm1 || m2 != bm2 || n1 != bn1 || n2 != bn2 {
			panic(ErrSplitMismatch)
		}
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				Add(a.Children[i][j], bv.Children[i][j], s, eps)
			}
		}
	default:
		panic(ErrShape)
	}
}

// childExtent returns the (rows, cols) shape of the (i,j) child given the
// 2×2 split sizes.
func childExtent(i, j, m1, m2, n1, n2 int) (rows, cols int) {
	rows = m1
	if i == 1 {
		rows = m2
	}
	cols = n1
	if j == 1 {
		cols = n2
	}
	return rows, cols
}

// scale returns a freshly allocated s*m, used so additive updates never
// mutate their right-hand operand.
func scale(s float64, m *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.Scale(s, m)
	return &out
}
