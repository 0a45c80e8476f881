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

package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sevoigt/pymbs-sub001/expr"
	"github.com/sevoigt/pymbs-sub001/shape"
)

// symbols used by the tests.
type symbols struct {
	// Scalar state symbols.
	x, y, z expr.Node
	// Scalar parameter.
	a expr.Node
	// 2x2 matrix parameters.
	A, B expr.Node
	// Row vector with 2 elements.
	v expr.Node
}

func newMatrixShape(t testing.TB, r, c int) shape.Shape {
	s, err := shape.Matrix(r, c)
	require.NoError(t, err)
	return s
}

func newSymbols(t testing.TB, b *expr.Builder) symbols {
	m2x2 := newMatrixShape(t, 2, 2)
	row, err := shape.Vector(2)
	require.NoError(t, err)
	s := symbols{
		x: b.Symbol("x", shape.Scalar(), expr.State),
		y: b.Symbol("y", shape.Scalar(), expr.State),
		z: b.Symbol("z", shape.Scalar(), expr.State),
		a: b.Symbol("a", shape.Scalar(), expr.Parameter),
		A: b.Symbol("A", m2x2, expr.Parameter),
		B: b.Symbol("B", m2x2, expr.Parameter),
		v: b.Symbol("v", row, expr.Input),
	}
	require.NoError(t, b.Err())
	return s
}

func newTestGraph(t testing.TB) (*expr.Builder, symbols) {
	b := expr.NewBuilder(expr.NewGraph())
	return b, newSymbols(t, b)
}
