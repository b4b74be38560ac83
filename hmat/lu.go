// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmat

import (
	"gonum.org/v1/gonum/mat"

	"github.com/go-hmat/hmat/internal/kernel"
)

// LUInPlace factorizes h in place: a Dense leaf is factorized directly with
// kernel.Getrf; a Hier node is factorized by the classical 2×2 block-LU
// recursion (factor H11, propagate its pivots into H12, forward/back-solve
// H12 and H21 against H11's triangular factors, form the Schur complement
// H22 -= H21·H12, factorize H22 recursively, then propagate H22's pivots
// into H21 the same way H11's were propagated into H12). A *LowRank node is
// never square-factorizable and is reported as ErrLowRankAsTri.
//
// The pivoting scheme is block-diagonal: a row is only ever interchanged
// with another row inside the same diagonal block (H11 or H22), never
// across the m1 boundary, so the composed permutation is the plain
// concatenation P = [P11; P22+m1] documented on Hier.P.
//
// LUInPlace is one of the two entry points in this package that return an
// error rather than panic: the factorization runs inside Maybe, so any Error
// raised during it (a zero pivot, a shape mismatch, a LowRank node offered
// where a triangular factor is required) is returned to the caller. The
// other exported operations (Add, Mul, TriSolve, PermuteRows, ...) panic
// with an Error on a precondition violation.
func LUInPlace(h H) error {
	return Maybe(func() { luInPlace(h) })
}

func luInPlace(h H) {
	switch v := h.(type) {
	case *Dense:
		ipiv, ok := kernel.Getrf(v.C)
		if !ok {
			panic(ErrZeroPivot)
		}
		v.P = ipiv
	case *LowRank:
		panic(ErrLowRankAsTri)
	case *Hier:
		luHier(v)
	default:
		panic(ErrShape)
	}
}

func luHier(v *Hier) {
	m1, m2, n1, n2 := v.splitSizes()
	if m1 != n1 || m2 != n2 {
		panic(ErrShape)
	}

	luInPlace(v.Children[0][0])
	p11 := factorPermutation(v.Children[0][0])
	PermuteRows(v.Children[0][1], p11)

	TriSolve(v.Children[0][0], v.Children[0][1], true, true)
	RightTriSolve(v.Children[0][0], v.Children[1][0], false, false)

	schur := Mul(v.Children[1][0], v.Children[0][1], DefaultTolerance)
	Add(v.Children[1][1], schur, -1, DefaultTolerance)

	luInPlace(v.Children[1][1])
	p22 := factorPermutation(v.Children[1][1])
	PermuteRows(v.Children[1][0], p22)

	v.P = make([]int, 0, m1+m2)
	v.P = append(v.P, p11...)
	for _, p := range p22 {
		v.P = append(v.P, p+m1)
	}
}

func factorPermutation(h H) []int {
	switch v := h.(type) {
	case *Dense:
		if v.P == nil {
			panic(ErrNotFactorized)
		}
		return v.P
	case *Hier:
		if v.P == nil {
			panic(ErrNotFactorized)
		}
		return v.P
	default:
		panic(ErrNotFactorized)
	}
}

// RightTriSolve overwrites b in place with the solution X of X·a = b, the
// mirror image of TriSolve's left solve (X·A=B ⇔ Aᵀ·Xᵀ=Bᵀ). It is used by
// luHier to compute L21 = H21·U11⁻¹ without a second, duplicated block
// recursion: a and b are cloned, transposed with Transpose (which flips
// lower⇄upper the same way transposing a triangular matrix does), solved
// with the existing left-solving TriSolve, transposed back, and copied into
// b — a and the original b are left untouched until the final copy.
func RightTriSolve(a, b H, lower, unitDiag bool) {
	ac := Copy(a)
	Transpose(ac)
	bc := Copy(b)
	Transpose(bc)
	TriSolve(ac, bc, !lower, unitDiag)
	Transpose(bc)
	assignInto(b, bc)
}

// assignInto overwrites dst's leaf storage with src's. It requires dst and
// src to share the same concrete variant at every node, which holds for
// RightTriSolve's use since Copy followed by two Transpose calls never
// changes a node's variant.
func assignInto(dst, src H) {
	switch d := dst.(type) {
	case *Dense:
		s := src.(*Dense)
		d.C, d.P = s.C, s.P
	case *LowRank:
		s := src.(*LowRank)
		d.A, d.B = s.A, s.B
	case *Hier:
		s := src.(*Hier)
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				assignInto(d.Children[i][j], s.Children[i][j])
			}
		}
		d.P = s.P
	default:
		panic(ErrShape)
	}
}

// Solve returns x solving h·x = y against an already-factorized h: y's
// permutation is applied, then forward substitution against L and back
// substitution against U run by calling TriSolve twice against the same
// factorized storage, since LUInPlace leaves L (strictly below the
// diagonal, unit diagonal implied) and U (on and above it) packed into the
// same blocks.
//
// Solve is the other entry point that returns an error rather than panics:
// calling it against an h that was never passed to LUInPlace reports
// ErrNotFactorized this way, since that failure is a property of the call
// sequence a caller controls rather than of h's shape.
func Solve(h H, y *mat.VecDense) (*mat.VecDense, error) {
	var x *mat.VecDense
	err := Maybe(func() { x = solve(h, y) })
	return x, err
}

func solve(h H, y *mat.VecDense) *mat.VecDense {
	n := y.Len()
	rhs := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		rhs.Set(i, 0, y.AtVec(i))
	}

	applyFactorPermutation(h, rhs)
	b := wrapDense(rhs, nil, nil)
	TriSolve(h, b, true, true)
	TriSolve(h, b, false, false)

	x := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.SetVec(i, b.C.At(i, 0))
	}
	return x
}

// applyFactorPermutation applies h's pivoting to rhs in place, recursing
// only into the diagonal children of each Hier node: the block-diagonal
// pivoting scheme luHier uses never interchanges rows across a node's m1
// boundary, so there is nothing for the off-diagonal children to apply.
func applyFactorPermutation(h H, rhs *mat.Dense) {
	switch v := h.(type) {
	case *Dense:
		if v.P == nil {
			panic(ErrNotFactorized)
		}
		permuteRows(rhs, v.P)
	case *Hier:
		if v.P == nil {
			panic(ErrNotFactorized)
		}
		m1, m2, _, _ := v.splitSizes()
		_, p := rhs.Dims()
		r1 := rhs.Slice(0, m1, 0, p).(*mat.Dense)
		r2 := rhs.Slice(m1, m1+m2, 0, p).(*mat.Dense)
		applyFactorPermutation(v.Children[0][0], r1)
		applyFactorPermutation(v.Children[1][1], r2)
	default:
		panic(ErrNotFactorized)
	}
}
