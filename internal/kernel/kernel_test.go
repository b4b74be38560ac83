// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/mat"
)

func TestGemm(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(2, 2, []float64{5, 6, 7, 8})
	dst := mat.NewDense(2, 2, []float64{1, 1, 1, 1})

	Gemm(2, a, b, 1, dst)

	var want mat.Dense
	want.Mul(a, b)
	want.Scale(2, &want)
	want.Add(&want, mat.NewDense(2, 2, []float64{1, 1, 1, 1}))

	require.True(t, mat.EqualApprox(dst, &want, 1e-12))
}

func TestGetrfIdentity(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	ipiv, ok := Getrf(a)
	require.True(t, ok)
	for i, p := range ipiv {
		require.Equal(t, i, p)
	}
	require.True(t, mat.Equal(a, mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})))
}

func TestTrtrsLower(t *testing.T) {
	// L = [[2,0],[1,3]], solve L x = b.
	l := mat.NewDense(2, 2, []float64{2, 0, 1, 3})
	b := mat.NewDense(2, 1, []float64{4, 5})
	ok := Trtrs(blas.NoTrans, true, false, l, b)
	require.True(t, ok)
	require.InDelta(t, 2.0, b.At(0, 0), 1e-12)
	require.InDelta(t, 1.0, b.At(1, 0), 1e-12)
}

func TestQRReconstructs(t *testing.T) {
	a := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 7})
	q, r := QR(a)
	var got mat.Dense
	got.Mul(q, r)
	require.True(t, mat.EqualApprox(&got, a, 1e-10))
}

func TestSVDReconstructsAndOrders(t *testing.T) {
	a := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 7})
	u, s, v, ok := SVD(a)
	require.True(t, ok)
	for i := 1; i < len(s); i++ {
		require.LessOrEqual(t, s[i], s[i-1])
	}
	sigma := mat.NewDense(len(s), len(s), diag(s))

	var got mat.Dense
	got.Mul(u, sigma)
	got.Mul(&got, v.T())
	require.True(t, mat.EqualApprox(&got, a, 1e-10), "got=%v want=%v", mat.Formatted(&got), mat.Formatted(a))
}

func diag(s []float64) []float64 {
	n := len(s)
	d := make([]float64, n*n)
	for i, v := range s {
		d[i*n+i] = v
	}
	return d
}

func TestMinHelper(t *testing.T) {
	require.Equal(t, 2, min(2, 3))
	require.Equal(t, int(math.Min(2, 3)), min(2, 3))
}
