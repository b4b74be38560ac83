// Copyright ©2026 The hmat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmat

// Error represents an hmat package error. Every recursive algorithm in this
// package panics with a value of this type on a shape mismatch, a variant
// precondition violation, a broken tree invariant, or numerical
// degeneracy; none is ever recovered internally. Callers that want a plain
// error rather than a panic can recover one with Maybe, mirroring
// mat64.Error/mat64.Maybe.
type Error string

func (e Error) Error() string { return string(e) }

// Error kinds: one sentinel per failure category, plus the specific
// conditions each recursive algorithm can raise.
const (
	ErrShape           = Error("hmat: dimension mismatch")
	ErrSplitMismatch   = Error("hmat: incompatible block split")
	ErrLowRankAsTri    = Error("hmat: triangular operand must not be low-rank")
	ErrEmptyOperand    = Error("hmat: empty operand")
	ErrPermCrossesNode = Error("hmat: permutation crosses block boundary")
	ErrChildSizeSum    = Error("hmat: child dimensions do not sum to parent")
	ErrZeroPivot       = Error("hmat: zero pivot in dense LU factorization")
	ErrNotFactorized   = Error("hmat: node has not been LU-factorized")
)

// Panicker is a function that may panic with an Error.
type Panicker func()

// Maybe runs fn and converts any panic carrying an Error into a returned
// error; panics of any other type propagate unchanged. This is the one
// place a caller can turn this package's fatal-panic error model into an
// ordinary Go error at an API boundary, following mat64.Maybe's pattern
// exactly.
func Maybe(fn Panicker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(Error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	fn()
	return
}
