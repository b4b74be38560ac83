// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmat

import "gonum.org/v1/gonum/mat"

// Transpose replaces h's contents with hᵀ in place. The upper-triangular
// solve in trisolve.go is implemented directly rather than by transposing
// into the lower-triangular case, but LUInPlace's RightTriSolve and callers
// that need to flip an operand's orientation still need a real in-place
// transpose. Dims swap (m,n) -> (n,m); a factorized Dense or Hier node
// loses its permutation, since P was computed for the untransposed block.
func Transpose(h H) {
	switch v := h.(type) {
	case *Dense:
		m, n := v.C.Dims()
		ct := mat.NewDense(n, m, nil)
		ct.Copy(v.C.T())
		v.C = ct
		v.s, v.t = v.t, v.s
		v.P = nil
	case *LowRank:
		v.A, v.B = v.B, v.A
		v.s, v.t = v.t, v.s
	case *Hier:
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				Transpose(v.Children[i][j])
			}
		}
		v.Children[0][1], v.Children[1][0] = v.Children[1][0], v.Children[0][1]
		v.s, v.t = v.t, v.s
		v.P = nil
	default:
		panic(ErrShape)
	}
}
