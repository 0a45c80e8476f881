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

package shape_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"
	"github.com/sevoigt/pymbs-sub001/fmterr"
	"github.com/sevoigt/pymbs-sub001/shape"
)

// must returns a shape built by a constructor or an operation known to succeed.
func must(s shape.Shape, err error) shape.Shape {
	if err != nil {
		panic(fmt.Sprintf("cannot build shape: %+v", err))
	}
	return s
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name             string
		build            func() (shape.Shape, error)
		ndim, dim1, dim2 int
		err              bool
	}{
		{name: "vector", build: func() (shape.Shape, error) { return shape.Vector(3) }, ndim: 1, dim1: 1, dim2: 3},
		{name: "column", build: func() (shape.Shape, error) { return shape.Column(3) }, ndim: 1, dim1: 3, dim2: 1},
		{name: "matrix", build: func() (shape.Shape, error) { return shape.Matrix(2, 3) }, ndim: 2, dim1: 2, dim2: 3},
		{name: "new scalar", build: func() (shape.Shape, error) { return shape.New(1, 1) }, ndim: 0, dim1: 1, dim2: 1},
		{name: "new vector", build: func() (shape.Shape, error) { return shape.New(3, 1) }, ndim: 1, dim1: 3, dim2: 1},
		{name: "new matrix", build: func() (shape.Shape, error) { return shape.New(3, 3) }, ndim: 2, dim1: 3, dim2: 3},
		{name: "custom 1x1 matrix", build: func() (shape.Shape, error) { return shape.Custom(2, 1, 1) }, ndim: 2, dim1: 1, dim2: 1},
		{name: "empty vector", build: func() (shape.Shape, error) { return shape.Vector(0) }, err: true},
		{name: "empty column", build: func() (shape.Shape, error) { return shape.Column(-1) }, err: true},
		{name: "empty matrix", build: func() (shape.Shape, error) { return shape.Matrix(0, 3) }, err: true},
		{name: "ndim 3", build: func() (shape.Shape, error) { return shape.Custom(3, 2, 2) }, err: true},
		{name: "scalar 2x1", build: func() (shape.Shape, error) { return shape.Custom(0, 2, 1) }, err: true},
		{name: "vector 2x2", build: func() (shape.Shape, error) { return shape.Custom(1, 2, 2) }, err: true},
	}
	for _, test := range tests {
		got, err := test.build()
		if test.err {
			if !fmterr.IsShape(err) {
				t.Errorf("%s: got error %v but want a shape error", test.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if got.NDim() != test.ndim || got.Dim1() != test.dim1 || got.Dim2() != test.dim2 {
			t.Errorf("%s: got (%d,%d,%d) but want (%d,%d,%d)", test.name, got.NDim(), got.Dim1(), got.Dim2(), test.ndim, test.dim1, test.dim2)
		}
		if got.Numel() != test.dim1*test.dim2 {
			t.Errorf("%s: got %d elements but want %d", test.name, got.Numel(), test.dim1*test.dim2)
		}
	}
}

func TestScalarAbsorption(t *testing.T) {
	s := shape.Scalar()
	for _, x := range []shape.Shape{
		shape.Scalar(),
		must(shape.Vector(4)),
		must(shape.Column(2)),
		must(shape.Matrix(3, 5)),
	} {
		if got := must(s.Add(x)); got != x {
			t.Errorf("scalar + %s = %s but want %s", x, got, x)
		}
		if got := must(x.Add(s)); got != x {
			t.Errorf("%s + scalar = %s but want %s", x, got, x)
		}
		if got := must(s.Mul(x)); got != x {
			t.Errorf("scalar * %s = %s but want %s", x, got, x)
		}
		if got := must(x.Mul(s)); got != x {
			t.Errorf("%s * scalar = %s but want %s", x, got, x)
		}
	}
}

func TestAdd(t *testing.T) {
	m23 := must(shape.Matrix(2, 3))
	if got := must(m23.Add(m23)); got != m23 {
		t.Errorf("got %s but want %s", got, m23)
	}
	m32 := must(shape.Matrix(3, 2))
	if _, err := m23.Add(m32); !fmterr.IsShape(err) {
		t.Errorf("%s + %s: got error %v but want a shape error", m23, m32, err)
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		a, b shape.Shape
		want shape.Shape
		err  bool
	}{
		{
			// Row times column: inner product.
			a:    must(shape.Vector(3)),
			b:    must(shape.New(3, 1)),
			want: shape.Scalar(),
		},
		{
			// Column times row: outer product.
			a:    must(shape.New(3, 1)),
			b:    must(shape.New(1, 3)),
			want: must(shape.Matrix(3, 3)),
		},
		{
			a:    must(shape.Matrix(3, 3)),
			b:    must(shape.Column(3)),
			want: must(shape.Column(3)),
		},
		{
			a:    must(shape.Vector(2)),
			b:    must(shape.Matrix(2, 4)),
			want: must(shape.Vector(4)),
		},
		{
			a:    must(shape.Matrix(2, 3)),
			b:    must(shape.Matrix(3, 4)),
			want: must(shape.Matrix(2, 4)),
		},
		{
			a:   must(shape.Matrix(2, 3)),
			b:   must(shape.Matrix(4, 5)),
			err: true,
		},
		{
			// Two row vectors: inner product.
			a:    must(shape.Vector(3)),
			b:    must(shape.Vector(3)),
			want: shape.Scalar(),
		},
		{
			// Vector lengths are not checked.
			a:    must(shape.Vector(3)),
			b:    must(shape.Column(2)),
			want: shape.Scalar(),
		},
		{
			// Two column vectors: outer product.
			a:    must(shape.Column(3)),
			b:    must(shape.Column(3)),
			want: must(shape.Custom(2, 3, 1)),
		},
		{
			a:    must(shape.Column(3)),
			b:    must(shape.Matrix(1, 4)),
			want: must(shape.Matrix(3, 4)),
		},
		{
			a:   must(shape.Matrix(3, 3)),
			b:   must(shape.Vector(3)),
			err: true,
		},
	}
	for i, test := range tests {
		got, err := test.a.Mul(test.b)
		if test.err {
			if !fmterr.IsShape(err) {
				t.Errorf("test %d: %s * %s: got error %v but want a shape error", i, test.a, test.b, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d: %s * %s: unexpected error: %v", i, test.a, test.b, err)
			continue
		}
		if got != test.want {
			t.Errorf("test %d: %s * %s = %s but want %s", i, test.a, test.b, got, test.want)
		}
	}
}

func TestTranspose(t *testing.T) {
	m := must(shape.Matrix(2, 3))
	got := m.Transpose()
	if got.NDim() != 2 || got.Dim1() != 3 || got.Dim2() != 2 {
		t.Errorf("got %s but want 3x2", got)
	}
	if got.Transpose() != m {
		t.Errorf("transpose is not an involution: got %s but want %s", got.Transpose(), m)
	}
	if shape.Scalar().Transpose() != shape.Scalar() {
		t.Errorf("transpose of a scalar is not a scalar")
	}
}

func TestOrder(t *testing.T) {
	ordered := []shape.Shape{
		shape.Scalar(),
		must(shape.Vector(2)),
		must(shape.Vector(3)),
		must(shape.Column(2)),
		must(shape.Matrix(2, 2)),
		must(shape.Matrix(2, 3)),
		must(shape.Matrix(3, 1)),
	}
	for i, a := range ordered {
		for j, b := range ordered {
			if got, want := a.Less(b), i < j; got != want {
				t.Errorf("%s < %s = %v but want %v", a, b, got, want)
			}
			if got, want := a == b, !a.Less(b) && !b.Less(a); got != want {
				t.Errorf("%s == %s = %v is inconsistent with the order", a, b, got)
			}
		}
	}
}

func TestBackend(t *testing.T) {
	tests := []struct {
		s    shape.Shape
		want []int
	}{
		{s: shape.Scalar(), want: nil},
		{s: must(shape.Column(3)), want: []int{3}},
		{s: must(shape.Matrix(2, 3)), want: []int{2, 3}},
	}
	for _, test := range tests {
		got := test.s.Backend()
		if got.DType != dtype.Float64 {
			t.Errorf("%s: got data type %v but want float64", test.s, got.DType)
		}
		if diff := cmp.Diff(test.want, got.AxisLengths); diff != "" {
			t.Errorf("%s: unexpected axes (-want +got):\n%s", test.s, diff)
		}
		if got.Size() != test.s.Numel() {
			t.Errorf("%s: backend size %d but want %d", test.s, got.Size(), test.s.Numel())
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		s    shape.Shape
		want string
	}{
		{s: shape.Scalar(), want: "scalar"},
		{s: must(shape.Vector(3)), want: "1x3"},
		{s: must(shape.Column(2)), want: "2x1"},
		{s: must(shape.Matrix(2, 3)), want: "2x3"},
		{s: shape.Shape{}, want: "invalid"},
	}
	for i, test := range tests {
		if got := test.s.String(); got != test.want {
			t.Errorf("test %d: got %s but want %s", i, got, test.want)
		}
	}
}
