// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmat

import "gonum.org/v1/gonum/mat"

// MatVecTo accumulates r ← r + s*a*v in place. r and v must already have
// the correct lengths (a.m and a.n respectively); MatVecTo never resizes
// them, matching gonum's caller-allocates convention for hot-path
// arithmetic (e.g. mat.Dense.Mul).
//
// Dense and low-rank leaves bottom out in mat.VecDense.MulVec, gonum's GEMV
// entry point over the same blas64 layer internal/kernel's Gemm uses for
// matrix-shaped operands; hierarchical nodes recurse sequentially on all
// four children with the same scalar s.
func MatVecTo(r *mat.VecDense, a H, v *mat.VecDense, s float64) {
	switch h := a.(type) {
	case *Dense:
		m, n := h.Dims()
		if r.Len() != m || v.Len() != n {
			panic(ErrShape)
		}
		var t mat.VecDense
		t.MulVec(h.C, v)
		r.AddScaledVec(r, s, &t)
	case *LowRank:
		m, n := h.Dims()
		if r.Len() != m || v.Len() != n {
			panic(ErrShape)
		}
		if h.Rank() == 0 {
			return
		}
		var t mat.VecDense
		t.MulVec(h.B.T(), v)
		var u mat.VecDense
		u.MulVec(h.A, &t)
		r.AddScaledVec(r, s, &u)
	case *Hier:
		m1, m2, n1, n2 := h.splitSizes()
		if r.Len() != m1+m2 || v.Len() != n1+n2 {
			panic(ErrShape)
		}
		r1 := r.SliceVec(0, m1).(*mat.VecDense)
		r2 := r.SliceVec(m1, m1+m2).(*mat.VecDense)
		v1 := v.SliceVec(0, n1).(*mat.VecDense)
		v2 := v.SliceVec(n1, n1+n2).(*mat.VecDense)

		MatVecTo(r1, h.Children[0][0], v1, s)
		MatVecTo(r1, h.Children[0][1], v2, s)
		MatVecTo(r2, h.Children[1][0], v1, s)
		MatVecTo(r2, h.Children[1][1], v2, s)
	default:
		panic(ErrShape)
	}
}

// MatVec returns a freshly allocated r = s*a*v.
func MatVec(a H, v *mat.VecDense, s float64) *mat.VecDense {
	m, _ := a.Dims()
	r := mat.NewVecDense(m, nil)
	MatVecTo(r, a, v, s)
	return r
}
