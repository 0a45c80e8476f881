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
	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/shape"
)

func TestString(t *testing.T) {
	b, s := newTestGraph(t)
	column, err := shape.Column(2)
	require.NoError(t, err)
	tests := []struct {
		n    expr.Node
		want string
	}{
		{n: b.Zero(newMatrixShape(t, 2, 2)), want: "zeros(2x2)"},
		{n: b.Eye(newMatrixShape(t, 3, 3)), want: "eye(3x3)"},
		{n: b.Zero(shape.Scalar()), want: "0"},
		{n: b.One(), want: "1"},
		{n: b.Real(0.5), want: "0.5"},
		{n: b.Rational(-1, 2), want: "-1/2"},
		{n: b.Neg(s.x), want: "(- x)"},
		{n: b.Transpose(s.A), want: "(T A)"},
		{n: b.Atan2(s.y, s.x), want: "(atan2 y x)"},
		{n: b.Matrix(column, s.x, s.y), want: "(matrix 2x1 x y)"},
		{n: b.Element(s.A, 1, 0), want: "(element 1 0 A)"},
		{n: b.Unary(kind.Abs, b.Der(s.x)), want: "(abs (der x))"},
		{n: expr.Node{}, want: "<invalid>"},
	}
	require.NoError(t, b.Err())
	for i, test := range tests {
		if got := test.n.String(); got != test.want {
			t.Errorf("test %d: got %s but want %s", i, got, test.want)
		}
	}
}

func TestTree(t *testing.T) {
	b, s := newTestGraph(t)
	shared := b.Mul(b.Int(2), s.x)
	n := b.Add(shared, b.Unary(kind.Sin, shared))
	elem := b.Element(s.A, 1, 0)
	require.NoError(t, b.Err())

	want := "add scalar raw\n" +
		"\t@1 mul scalar raw\n" +
		"\t\t2\n" +
		"\t\tx\n" +
		"\tsin scalar raw\n" +
		"\t\t@1"
	if got := n.Tree(); got != want {
		t.Errorf("got:\n%s\nbut want:\n%s", got, want)
	}
	want = "element scalar raw [1 0]\n\tA"
	if got := elem.Tree(); got != want {
		t.Errorf("got:\n%s\nbut want:\n%s", got, want)
	}
	if got, want := s.x.Tree(), "x"; got != want {
		t.Errorf("got %s but want %s", got, want)
	}
}
