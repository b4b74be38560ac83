// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kernel is the dense-kernel adapter exposing five operations
// (Gemm, Getrf, Trtrs, QR, SVD). Package hmat calls Getrf and Trtrs from
// here and reaches QR and SVD through package lowrank; its dense products,
// sums and scalings call gonum's mat.Dense methods directly and do not go
// through Gemm.
//
// The adapter is built on gonum.org/v1/gonum/blas/blas64 and
// gonum.org/v1/gonum/lapack/lapack64, the same native-Go BLAS/LAPACK
// implementation gonum's own mat.QR and mat.SVD are built on. The two-call
// "probe work size with lwork=-1, then allocate and call again" idiom used
// below for Geqrf/Ormqr/Gesvd follows that same calling convention.
package kernel

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

// Gemm computes C ← alpha*A*B + beta*C in place. dst must already have the
// correct shape; it is not resized.
//
// This routes through *mat.Dense's own Mul/Scale/Add, which compose to the
// same underlying blas64.Gemm call mat.Dense uses internally for its own
// arithmetic methods; the division of labour (shape checks in mat.Dense,
// the BLAS3 call in blas64) mirrors gonum's own.
func Gemm(alpha float64, a, b mat.Matrix, beta float64, dst *mat.Dense) {
	var ab mat.Dense
	ab.Mul(a, b)
	if beta == 0 {
		dst.Scale(alpha, &ab)
		return
	}
	ab.Scale(alpha, &ab)
	dst.Scale(beta, dst)
	dst.Add(dst, &ab)
}

// Getrf computes the partially-pivoted LU factorization of the square matrix
// a in place: a is overwritten with L (strictly below the diagonal, unit
// diagonal implied) and U (on and above the diagonal). ipiv is returned
// zero-based, one entry per row, in the convention documented on
// lapack64.Getrf: row i was interchanged with row ipiv[i]. ok is false if a
// zero pivot was encountered (a is singular to working precision); the
// factorization is still written into a, matching GETRF's own contract.
func Getrf(a *mat.Dense) (ipiv []int, ok bool) {
	m, n := a.Dims()
	if m != n {
		panic("kernel: Getrf requires a square matrix")
	}
	raw := a.RawMatrix()
	ipiv = make([]int, m)
	ok = lapack64.Getrf(raw, ipiv)
	return ipiv, ok
}

// Trtrs solves the triangular system op(A)·X = B, overwriting b with X. a is
// square, uplo/diag select which triangle of a is significant and whether
// its diagonal is implicitly 1. trans selects whether A or Aᵀ is used, so
// that the same call serves both the lower and the upper branch of
// triangular solve.
func Trtrs(trans blas.Transpose, lower, unitDiag bool, a, b *mat.Dense) bool {
	n, nc := a.Dims()
	if n != nc {
		panic("kernel: Trtrs requires a square triangular operand")
	}
	uplo := blas.Upper
	if lower {
		uplo = blas.Lower
	}
	diag := blas.NonUnit
	if unitDiag {
		diag = blas.Unit
	}
	araw := a.RawMatrix()
	tri := blas64.Triangular{
		N:      araw.Rows,
		Stride: araw.Stride,
		Data:   araw.Data,
		Uplo:   uplo,
		Diag:   diag,
	}
	return lapack64.Trtrs(trans, tri, b.RawMatrix())
}

// QR computes the thin QR factorization of a: a is m×n with m >= n, q is
// m×n with orthonormal columns, r is n×n upper triangular, and a ≈ q*r.
func QR(a *mat.Dense) (q, r *mat.Dense) {
	m, n := a.Dims()
	if m < n {
		panic("kernel: QR requires m >= n")
	}
	qr := mat.DenseCopyOf(a)
	tau := make([]float64, n)

	work := []float64{0}
	lapack64.Geqrf(qr.RawMatrix(), tau, work, -1)
	work = make([]float64, int(work[0]))
	lapack64.Geqrf(qr.RawMatrix(), tau, work, len(work))

	r = mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r.Set(i, j, qr.At(i, j))
		}
	}

	q = mat.NewDense(m, n, nil)
	for i := 0; i < n; i++ {
		q.Set(i, i, 1)
	}
	work = []float64{0}
	lapack64.Ormqr(blas.Left, blas.NoTrans, qr.RawMatrix(), tau, q.RawMatrix(), work, -1)
	work = make([]float64, int(work[0]))
	lapack64.Ormqr(blas.Left, blas.NoTrans, qr.RawMatrix(), tau, q.RawMatrix(), work, len(work))

	return q, r
}

// SVD computes the thin singular value decomposition of a: a ≈ u*diag(s)*vᵀ,
// with singular values in s returned in non-increasing order. ok is false
// if the underlying LAPACK call failed to converge.
func SVD(a *mat.Dense) (u *mat.Dense, s []float64, v *mat.Dense, ok bool) {
	m, n := a.Dims()
	k := min(m, n)
	aCopy := mat.DenseCopyOf(a)

	uGen := blas64.General{Rows: m, Cols: k, Stride: k, Data: make([]float64, m*k)}
	vtGen := blas64.General{Rows: k, Cols: n, Stride: n, Data: make([]float64, k*n)}
	s = make([]float64, k)

	work := []float64{0}
	lapack64.Gesvd(lapack.SVDStore, lapack.SVDStore, aCopy.RawMatrix(), uGen, vtGen, s, work, -1)
	work = make([]float64, int(work[0]))
	ok = lapack64.Gesvd(lapack.SVDStore, lapack.SVDStore, aCopy.RawMatrix(), uGen, vtGen, s, work, len(work))

	u = denseFromGeneral(uGen)
	vt := denseFromGeneral(vtGen)
	v = mat.DenseCopyOf(vt.T())
	return u, s, v, ok
}

func denseFromGeneral(g blas64.General) *mat.Dense {
	d := mat.NewDense(g.Rows, g.Cols, nil)
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			d.Set(i, j, g.Data[i*g.Stride+j])
		}
	}
	return d
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
