// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmat

import "gonum.org/v1/gonum/mat"

// PermuteRows reorders h's rows in place by applying P as a sequence of row
// interchanges (row i swapped with row P[i], for i in order; see
// permuteRows). len(P) must equal h's row count. Recursing into a
// Hier node requires P to respect the node's own row split — every entry of
// P covering the (1,1)/(1,2) children must stay within [0, m1) and every
// entry covering (2,1)/(2,2) must stay within [m1, m1+m2) — since a
// permutation produced by LUInPlace is itself built by concatenating child
// permutations (P = [P11; P22+m1]) and never mixes rows across that
// boundary; PermuteRows panics ErrPermCrossesNode if that invariant is
// violated.
func PermuteRows(h H, P []int) {
	m, _ := h.Dims()
	if len(P) != m {
		panic(ErrShape)
	}
	switch v := h.(type) {
	case *Dense:
		permuteRows(v.C, P)
	case *LowRank:
		if v.Rank() == 0 {
			return
		}
		permuteRows(v.A, P)
	case *Hier:
		m1, m2, _, _ := v.splitSizes()
		p1, p2 := P[:m1], P[m1:]
		for _, p := range p1 {
			if p < 0 || p >= m1 {
				panic(ErrPermCrossesNode)
			}
		}
		shifted := make([]int, m2)
		for i, p := range p2 {
			if p < m1 || p >= m1+m2 {
				panic(ErrPermCrossesNode)
			}
			shifted[i] = p - m1
		}
		PermuteRows(v.Children[0][0], p1)
		PermuteRows(v.Children[0][1], p1)
		PermuteRows(v.Children[1][0], shifted)
		PermuteRows(v.Children[1][1], shifted)
	default:
		panic(ErrShape)
	}
}

// permuteRows applies P as a sequence of row interchanges, the same
// convention lapack64.Getrf documents for its ipiv output: for i in order,
// row i is swapped with row P[i]. This is what makes the concatenation
// composition P = [P11; P22+m1] valid — each half is itself a valid
// interchange sequence over its own row range, and concatenating two
// interchange sequences is just performing one after the other.
func permuteRows(c *mat.Dense, P []int) {
	for i, p := range P {
		if p == i {
			continue
		}
		tmp := append([]float64(nil), c.RawRowView(i)...)
		copy(c.RawRowView(i), c.RawRowView(p))
		copy(c.RawRowView(p), tmp)
	}
}
