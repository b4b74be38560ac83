// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmat

import "gonum.org/v1/gonum/mat"

// ToDense materializes h into a dense *mat.Dense, recursing through
// hierarchical children and reconstructing low-rank leaves as A·Bᵀ. h is
// not modified.
func ToDense(h H) *mat.Dense {
	switch v := h.(type) {
	case *Dense:
		return mat.DenseCopyOf(v.C)
	case *LowRank:
		m, n := v.Dims()
		dst := mat.NewDense(m, n, nil)
		if v.Rank() == 0 {
			return dst
		}
		dst.Mul(v.A, v.B.T())
		return dst
	case *Hier:
		m1, m2, n1, n2 := v.splitSizes()
		dst := mat.NewDense(m1+m2, n1+n2, nil)
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				sub := ToDense(v.Children[i][j])
				ri0, ci0 := blockOrigin(i, j, m1, n1)
				r, c := sub.Dims()
				dst.Slice(ri0, ri0+r, ci0, ci0+c).(*mat.Dense).Copy(sub)
			}
		}
		return dst
	default:
		panic(ErrShape)
	}
}

// blockOrigin returns the (row, col) origin of the (i,j) child of a
// hierarchical node whose (1,1) child has shape m1×n1.
func blockOrigin(i, j, m1, n1 int) (row, col int) {
	row, col = 0, 0
	if i == 1 {
		row = m1
	}
	if j == 1 {
		col = n1
	}
	return row, col
}

// Copy produces an independently owned deep clone of h: the clone shares no
// mutable storage with h, so mutating one after Copy never affects the
// other. Cluster references are shared (the cluster tree is immutable and
// read-only), never copied.
func Copy(h H) H {
	switch v := h.(type) {
	case *Dense:
		c := &Dense{C: mat.DenseCopyOf(v.C), s: v.s, t: v.t}
		if v.P != nil {
			c.P = append([]int(nil), v.P...)
		}
		return c
	case *LowRank:
		return &LowRank{A: mat.DenseCopyOf(v.A), B: mat.DenseCopyOf(v.B), s: v.s, t: v.t}
	case *Hier:
		c := &Hier{s: v.s, t: v.t}
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				c.Children[i][j] = Copy(v.Children[i][j])
			}
		}
		if v.P != nil {
			c.P = append([]int(nil), v.P...)
		}
		return c
	default:
		panic(ErrShape)
	}
}

// Info summarizes the block-tree structure of h: the number of dense and
// low-rank leaves, the recursion depth, and the compression ratio (stored
// floats divided by the m*n entries the equivalent dense matrix would
// need).
type Info struct {
	DenseCount   int
	LowRankCount int
	Depth        int
	Compression  float64
}

// Inspect walks h and returns its Info.
func Inspect(h H) Info {
	var info Info
	info.Depth = inspect(h, &info)
	m, n := h.Dims()
	stored := storedFloats(h)
	if m*n == 0 {
		info.Compression = 1
	} else {
		info.Compression = stored / float64(m*n)
	}
	return info
}

func inspect(h H, info *Info) int {
	switch v := h.(type) {
	case *Dense:
		info.DenseCount++
		return 1
	case *LowRank:
		info.LowRankCount++
		return 1
	case *Hier:
		best := 0
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				d := inspect(v.Children[i][j], info)
				if d > best {
					best = d
				}
			}
		}
		return best + 1
	default:
		panic(ErrShape)
	}
}

func storedFloats(h H) float64 {
	switch v := h.(type) {
	case *Dense:
		m, n := v.Dims()
		return float64(m * n)
	case *LowRank:
		m, n := v.Dims()
		k := v.Rank()
		return float64(k * (m + n))
	case *Hier:
		total := 0.0
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				total += storedFloats(v.Children[i][j])
			}
		}
		return total
	default:
		panic(ErrShape)
	}
}
