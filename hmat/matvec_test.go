// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmat

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMatVecVsDenseBound(t *testing.T) {
	h := buildSample8x8(t)
	d := ToDense(h)

	x := mat.NewVecDense(8, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	got := MatVec(h, x, 1)

	want := mat.NewVecDense(8, nil)
	want.MulVec(d, x)

	var diff mat.VecDense
	diff.SubVec(got, want)
	ratio := mat.Norm(&diff, 2) / mat.Norm(want, 2)
	require.LessOrEqual(t, ratio, 1e-6)
}

func TestMatVecToAccumulates(t *testing.T) {
	h := NewDense(mat.NewDense(2, 2, []float64{1, 0, 0, 1}), nil, nil)
	v := mat.NewVecDense(2, []float64{3, 4})
	r := mat.NewVecDense(2, []float64{10, 10})

	MatVecTo(r, h, v, 1)
	require.InDeltaSlice(t, []float64{13, 14}, r.RawVector().Data, 1e-12)
}

func TestMatVecShapeMismatchPanics(t *testing.T) {
	h := NewDense(mat.NewDense(2, 2, nil), nil, nil)
	v := mat.NewVecDense(3, nil)
	require.Panics(t, func() {
		MatVec(h, v, 1)
	})
}
