// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmat

import "gonum.org/v1/gonum/mat"

// Mul returns a freshly shaped H representing a·b. It requires a.n == b.m.
// Unlike Add, Mul never mutates either operand and chooses the result's
// variant from a nine-case dispatch table keyed on (variant(a), variant(b)).
func Mul(a, b H, eps float64) H {
	if eps <= 0 {
		eps = DefaultTolerance
	}
	_, an := a.Dims()
	bm, _ := b.Dims()
	if an != bm {
		panic(ErrShape)
	}

	switch av := a.(type) {
	case *Dense:
		return mulDense(av, b, eps)
	case *LowRank:
		return mulLowRank(av, b, eps)
	case *Hier:
		return mulHier(av, b, eps)
	default:
		panic(ErrShape)
	}
}

func mulDense(a *Dense, b H, eps float64) H {
	switch bv := b.(type) {
	case *Dense:
		var c mat.Dense
		c.Mul(a.C, bv.C)
		return NewDense(&c, a.s, bv.t)
	case *LowRank:
		if bv.Rank() == 0 {
			m, _ := a.Dims()
			_, n := bv.Dims()
			return NewLowRank(mat.NewDense(m, 1, nil), mat.NewDense(n, 1, nil), a.s, bv.t)
		}
		var ca mat.Dense
		ca.Mul(a.C, bv.A)
		return NewLowRank(&ca, bv.B, a.s, bv.t)
	case *Hier:
		return mulDenseHier(a, bv, eps)
	default:
		panic(ErrShape)
	}
}

func mulLowRank(a *LowRank, b H, eps float64) H {
	switch bv := b.(type) {
	case *Dense:
		if a.Rank() == 0 {
			m, _ := a.Dims()
			_, n := bv.Dims()
			return NewLowRank(mat.NewDense(m, 1, nil), mat.NewDense(n, 1, nil), a.s, bv.t)
		}
		var bT mat.Dense
		bT.Mul(bv.C.T(), a.B)
		return NewLowRank(a.A, &bT, a.s, bv.t)
	case *LowRank:
		if a.Rank() == 0 || bv.Rank() == 0 {
			m, _ := a.Dims()
			_, n := bv.Dims()
			return NewLowRank(mat.NewDense(m, 1, nil), mat.NewDense(n, 1, nil), a.s, bv.t)
		}
		var inner mat.Dense
		inner.Mul(bv.A.T(), a.B)
		var bOut mat.Dense
		bOut.Mul(bv.B, &inner)
		return NewLowRank(a.A, &bOut, a.s, bv.t)
	case *Hier:
		return mulLowRank(a, NewDense(ToDense(bv), bv.RowCluster(), bv.ColCluster()), eps)
	default:
		panic(ErrShape)
	}
}

func mulHier(a *Hier, b H, eps float64) H {
	switch bv := b.(type) {
	case *Dense:
		return mulHierDense(a, bv, eps)
	case *LowRank:
		ad := ToDense(a)
		var ab mat.Dense
		ab.Mul(ad, bv.A)
		return NewLowRank(&ab, bv.B, a.s, bv.t)
	case *Hier:
		var children [2][2]H
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				t0 := Mul(a.Children[i][0], bv.Children[0][j], eps)
				t1 := Mul(a.Children[i][1], bv.Children[1][j], eps)
				Add(t0, t1, 1, eps)
				children[i][j] = t0
			}
		}
		return NewHier(children, a.s, bv.t)
	default:
		panic(ErrShape)
	}
}

// mulDenseHier multiplies dense a by hierarchical b. a has no row split of
// its own, so the K dimension (a's columns / b's rows) is split at b's own
// row split and the two resulting column slabs are materialized and
// concatenated: a dense left operand always terminates into dense, since
// there is no further row structure on a's side to preserve.
func mulDenseHier(a *Dense, b *Hier, eps float64) H {
	k1, k2, n1, n2 := b.splitSizes()
	m, _ := a.Dims()

	a1 := NewDense(mat.DenseCopyOf(a.C.Slice(0, m, 0, k1)), nil, nil)
	a2 := NewDense(mat.DenseCopyOf(a.C.Slice(0, m, k1, k1+k2)), nil, nil)

	result := mat.NewDense(m, n1+n2, nil)
	for j, width := range [2]int{n1, n2} {
		t0 := ToDense(Mul(a1, b.Children[0][j], eps))
		t1 := ToDense(Mul(a2, b.Children[1][j], eps))
		t0.Add(t0, t1)
		col0 := 0
		if j == 1 {
			col0 = n1
		}
		result.Slice(0, m, col0, col0+width).(*mat.Dense).Copy(t0)
	}
	return NewDense(result, a.s, b.t)
}

// mulHierDense is the symmetric counterpart of mulDenseHier: b has no
// column split of its own, so a's column split (= b's row split) is used to
// combine two row slabs.
func mulHierDense(a *Hier, b *Dense, eps float64) H {
	m1, m2, n1, n2 := a.splitSizes()
	_, n := b.Dims()

	b1 := NewDense(mat.DenseCopyOf(b.C.Slice(0, n1, 0, n)), nil, nil)
	b2 := NewDense(mat.DenseCopyOf(b.C.Slice(n1, n1+n2, 0, n)), nil, nil)

	result := mat.NewDense(m1+m2, n, nil)
	for i, height := range [2]int{m1, m2} {
		t0 := ToDense(Mul(a.Children[i][0], b1, eps))
		t1 := ToDense(Mul(a.Children[i][1], b2, eps))
		t0.Add(t0, t1)
		row0 := 0
		if i == 1 {
			row0 = m1
		}
		result.Slice(row0, row0+height, 0, n).(*mat.Dense).Copy(t0)
	}
	return NewDense(result, a.s, b.t)
}
