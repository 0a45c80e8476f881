// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package shape implements the dimension algebra of scalar, vector and matrix values.
//
// A shape has a number of dimensions (0 for scalars, 1 for vectors, 2 for matrices)
// and two lengths. Scalars are 1x1, vectors have at least one length equal to 1.
// Shapes are values: operations always return a new shape.
package shape

import (
	"fmt"

	"github.com/gx-org/backend/dtype"
	bshape "github.com/gx-org/backend/shape"
	"github.com/sevoigt/pymbs-sub001/fmterr"
)

// Shape of a value.
// The zero value is not a valid shape: use Scalar() instead.
type Shape struct {
	ndim       int
	dim1, dim2 int
}

var scalar = Shape{ndim: 0, dim1: 1, dim2: 1}

// Scalar returns the shape of a scalar.
func Scalar() Shape {
	return scalar
}

// Vector returns the shape of a row vector of n elements (1xn).
func Vector(n int) (Shape, error) {
	if n <= 0 {
		return Shape{}, fmterr.Shapef("invalid vector length %d: must be > 0", n)
	}
	return Shape{ndim: 1, dim1: 1, dim2: n}, nil
}

// Column returns the shape of a column vector of n elements (nx1).
func Column(n int) (Shape, error) {
	if n <= 0 {
		return Shape{}, fmterr.Shapef("invalid vector length %d: must be > 0", n)
	}
	return Shape{ndim: 1, dim1: n, dim2: 1}, nil
}

// Matrix returns the shape of a rxc matrix.
func Matrix(r, c int) (Shape, error) {
	return Custom(2, r, c)
}

// New returns a shape given its two lengths.
// The number of dimensions is inferred: 1x1 is a scalar,
// a shape with one length equal to 1 is a vector, anything else is a matrix.
func New(r, c int) (Shape, error) {
	switch {
	case r == 1 && c == 1:
		return Custom(0, r, c)
	case r == 1 || c == 1:
		return Custom(1, r, c)
	}
	return Custom(2, r, c)
}

// Custom returns a shape given all its fields.
func Custom(ndim, r, c int) (Shape, error) {
	s := Shape{ndim: ndim, dim1: r, dim2: c}
	if err := s.validate(); err != nil {
		return Shape{}, err
	}
	return s, nil
}

func (s Shape) validate() error {
	switch s.ndim {
	case 0:
		if s.dim1 != 1 || s.dim2 != 1 {
			return fmterr.Shapef("invalid scalar shape %dx%d: both lengths must be 1", s.dim1, s.dim2)
		}
	case 1:
		if s.dim1 <= 0 || s.dim2 <= 0 {
			return fmterr.Shapef("invalid vector shape %dx%d: lengths must be > 0", s.dim1, s.dim2)
		}
		if s.dim1 != 1 && s.dim2 != 1 {
			return fmterr.Shapef("invalid vector shape %dx%d: one length must be 1", s.dim1, s.dim2)
		}
	case 2:
		if s.dim1 <= 0 || s.dim2 <= 0 {
			return fmterr.Shapef("invalid matrix shape %dx%d: lengths must be > 0", s.dim1, s.dim2)
		}
	default:
		return fmterr.Shapef("invalid number of dimensions %d: must be 0, 1 or 2", s.ndim)
	}
	return nil
}

// NDim returns the number of dimensions: 0, 1 or 2.
func (s Shape) NDim() int { return s.ndim }

// Dim1 returns the number of rows.
func (s Shape) Dim1() int { return s.dim1 }

// Dim2 returns the number of columns.
func (s Shape) Dim2() int { return s.dim2 }

// Numel returns the number of elements.
func (s Shape) Numel() int { return s.dim1 * s.dim2 }

// IsValid returns true if the shape has been built by one of the constructors.
func (s Shape) IsValid() bool { return s.validate() == nil }

// IsScalar returns true if the shape is a scalar shape.
func (s Shape) IsScalar() bool { return s.ndim == 0 }

// IsVector returns true if the shape is a vector shape.
func (s Shape) IsVector() bool { return s.ndim == 1 }

// IsRow returns true if the shape is a row vector.
func (s Shape) IsRow() bool { return s.ndim == 1 && s.dim1 == 1 }

// IsMatrix returns true if the shape is a matrix shape.
func (s Shape) IsMatrix() bool { return s.ndim == 2 }

// IsSquare returns true if the shape has the same number of rows and columns.
// Scalars are square.
func (s Shape) IsSquare() bool { return s.dim1 == s.dim2 }

// Add returns the shape of a+b.
// Scalars broadcast; other shapes have to be equal.
func (s Shape) Add(o Shape) (Shape, error) {
	if s.IsScalar() {
		return o, nil
	}
	if o.IsScalar() {
		return s, nil
	}
	if s != o {
		return Shape{}, fmterr.Shapef("cannot add shapes %s and %s: shapes must be equal", s, o)
	}
	return s, nil
}

// Mul returns the shape of a*b.
//
// A scalar operand is absorbed. The product of two vectors is a scalar when
// a is a row vector (inner product) and a matrix otherwise (outer product);
// the lengths of vectors are not checked against each other.
// Otherwise, the number of columns of a must be equal to the number of rows of b.
func (s Shape) Mul(o Shape) (Shape, error) {
	if s.IsScalar() {
		return o, nil
	}
	if o.IsScalar() {
		return s, nil
	}
	if s.IsVector() && o.IsVector() {
		if s.dim1 == 1 {
			return scalar, nil
		}
		return Custom(2, s.dim1, o.dim2)
	}
	if s.dim2 != o.dim1 {
		return Shape{}, fmterr.Shapef("cannot multiply shapes %s and %s: inner dimensions must be equal (%d != %d)", s, o, s.dim2, o.dim1)
	}
	ndim := min(s.ndim, o.ndim)
	if ndim == 1 && s.dim1 != 1 && o.dim2 != 1 {
		ndim = 2
	}
	return Custom(ndim, s.dim1, o.dim2)
}

// Transpose returns the shape with both lengths swapped.
func (s Shape) Transpose() Shape {
	return Shape{ndim: s.ndim, dim1: s.dim2, dim2: s.dim1}
}

// Compare returns -1 if s < o, 0 if s == o and +1 if s > o.
// Shapes are ordered by number of dimensions, then number of rows, then number of columns.
func (s Shape) Compare(o Shape) int {
	if c := compareInt(s.ndim, o.ndim); c != 0 {
		return c
	}
	if c := compareInt(s.dim1, o.dim1); c != 0 {
		return c
	}
	return compareInt(s.dim2, o.dim2)
}

// Less returns true if s < o.
func (s Shape) Less(o Shape) bool {
	return s.Compare(o) < 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Backend returns the shape of a float64 array holding a value of this shape
// in a numerical backend. Scalars are atomic, vectors have one axis.
func (s Shape) Backend() *bshape.Shape {
	var axes []int
	switch s.ndim {
	case 1:
		axes = []int{s.Numel()}
	case 2:
		axes = []int{s.dim1, s.dim2}
	}
	return &bshape.Shape{
		DType:       dtype.Float64,
		AxisLengths: axes,
	}
}

// String representation of the shape.
func (s Shape) String() string {
	if !s.IsValid() {
		return "invalid"
	}
	if s.ndim == 0 {
		return "scalar"
	}
	return fmt.Sprintf("%dx%d", s.dim1, s.dim2)
}
