// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmat

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// buildSample8x8 builds a two-level, 8×8 hierarchical matrix with dense
// diagonal leaves and rank-2 low-rank off-diagonal leaves, shared by the
// multiplication, addition and LU/solve tests.
func buildSample8x8(t *testing.T) *Hier {
	t.Helper()

	diag := func(base float64) *mat.Dense {
		d := mat.NewDense(4, 4, nil)
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				if i == j {
					d.Set(i, j, base+float64(i)+1)
				} else {
					d.Set(i, j, 0.1*float64(i-j))
				}
			}
		}
		return d
	}

	offRank2 := func(seed float64) H {
		a := mat.NewDense(4, 2, []float64{
			1, 0,
			0, 1,
			seed, 0.5,
			0.3, seed,
		})
		b := mat.NewDense(4, 2, []float64{
			seed, 1,
			0.2, seed,
			1, 0.1,
			0, 1,
		})
		return NewLowRank(a, b, nil, nil)
	}

	return NewHier([2][2]H{
		{NewDense(diag(1), nil, nil), offRank2(0.4)},
		{offRank2(0.7), NewDense(diag(5), nil, nil)},
	}, nil, nil)
}

// buildPivotingSample8x8 is buildSample8x8's counterpart whose diagonal
// leaves are anti-diagonal-dominant rather than diagonally dominant, so
// that kernel.Getrf's partial pivoting swaps rows when factorizing them
// (unlike buildSample8x8, whose diagonally-dominant leaves never trigger a
// row interchange).
func buildPivotingSample8x8(t *testing.T) *Hier {
	t.Helper()

	antiDiag := func(base float64) *mat.Dense {
		d := mat.NewDense(4, 4, nil)
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				if j == 3-i {
					d.Set(i, j, base+5)
				} else {
					d.Set(i, j, 0.1*float64(i-j))
				}
			}
		}
		return d
	}

	offRank2 := func(seed float64) H {
		a := mat.NewDense(4, 2, []float64{
			1, 0,
			0, 1,
			seed, 0.5,
			0.3, seed,
		})
		b := mat.NewDense(4, 2, []float64{
			seed, 1,
			0.2, seed,
			1, 0.1,
			0, 1,
		})
		return NewLowRank(a, b, nil, nil)
	}

	return NewHier([2][2]H{
		{NewDense(antiDiag(1), nil, nil), offRank2(0.4)},
		{offRank2(0.7), NewDense(antiDiag(5), nil, nil)},
	}, nil, nil)
}

// denseLU reconstructs the dense L and U factors implied by a tree that
// LUInPlace has already factorized, so a caller can check P·A = L·U
// directly: a Dense leaf's packed storage splits into L (strictly below
// the diagonal, unit diagonal implied) and U (on and above it); a Hier
// node's off-diagonal children hold L21 and U12 in full (TriSolve and
// RightTriSolve never touch the other triangle of an off-diagonal block),
// and its diagonal children recurse.
func denseLU(h H) (l, u *mat.Dense) {
	switch v := h.(type) {
	case *Dense:
		m, n := v.Dims()
		l = mat.NewDense(m, n, nil)
		u = mat.NewDense(m, n, nil)
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				switch {
				case i > j:
					l.Set(i, j, v.C.At(i, j))
				case i == j:
					l.Set(i, j, 1)
					u.Set(i, j, v.C.At(i, j))
				default:
					u.Set(i, j, v.C.At(i, j))
				}
			}
		}
		return l, u
	case *Hier:
		m1, m2, n1, n2 := v.splitSizes()
		l11, u11 := denseLU(v.Children[0][0])
		l22, u22 := denseLU(v.Children[1][1])
		u12 := ToDense(v.Children[0][1])
		l21 := ToDense(v.Children[1][0])

		l = mat.NewDense(m1+m2, n1+n2, nil)
		l.Slice(0, m1, 0, n1).(*mat.Dense).Copy(l11)
		l.Slice(m1, m1+m2, 0, n1).(*mat.Dense).Copy(l21)
		l.Slice(m1, m1+m2, n1, n1+n2).(*mat.Dense).Copy(l22)

		u = mat.NewDense(m1+m2, n1+n2, nil)
		u.Slice(0, m1, 0, n1).(*mat.Dense).Copy(u11)
		u.Slice(0, m1, n1, n1+n2).(*mat.Dense).Copy(u12)
		u.Slice(m1, m1+m2, n1, n1+n2).(*mat.Dense).Copy(u22)
		return l, u
	default:
		panic("denseLU: node was not factorized by LUInPlace")
	}
}
