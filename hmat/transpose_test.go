// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmat

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTransposeSymmetryDense(t *testing.T) {
	d := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	h := NewDense(d, nil, nil)
	want := mat.DenseCopyOf(d.T())

	Transpose(h)
	require.True(t, mat.Equal(ToDense(h), want))
}

func TestTransposeSymmetryLowRank(t *testing.T) {
	a := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	b := mat.NewDense(4, 2, []float64{1, 0, 0, 1, 1, 1, 2, 2})
	h := NewLowRank(a, b, nil, nil)
	before := ToDense(h)

	Transpose(h)
	require.True(t, mat.EqualApprox(ToDense(h), mat.DenseCopyOf(before.T()), 1e-12))
}

func TestTransposeSymmetryHier(t *testing.T) {
	h := buildSample8x8(t)
	before := ToDense(h)

	Transpose(h)
	require.True(t, mat.EqualApprox(ToDense(h), mat.DenseCopyOf(before.T()), 1e-10))
}
