// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmat

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPermuteRowsSequentialSwap(t *testing.T) {
	d := mat.NewDense(3, 1, []float64{10, 20, 30})
	h := NewDense(d, nil, nil)

	// swap row 0 with row 2, then leave row 1 in place.
	PermuteRows(h, []int{2, 1, 2})
	require.InDeltaSlice(t, []float64{30, 20, 10}, h.C.RawMatrix().Data, 1e-12)
}

func TestPermuteRowsCrossingBoundaryPanics(t *testing.T) {
	h := NewHier([2][2]H{
		{NewDense(identity(2), nil, nil), NewLowRank(mat.NewDense(2, 1, nil), mat.NewDense(2, 1, nil), nil, nil)},
		{NewLowRank(mat.NewDense(2, 1, nil), mat.NewDense(2, 1, nil), nil, nil), NewDense(identity(2), nil, nil)},
	}, nil, nil)

	require.Panics(t, func() {
		PermuteRows(h, []int{2, 1, 2, 3})
	})
}

func TestPermuteRowsLengthMismatchPanics(t *testing.T) {
	h := NewDense(identity(3), nil, nil)
	require.Panics(t, func() {
		PermuteRows(h, []int{0, 1})
	})
}
