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
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/sevoigt/pymbs-sub001/expr"
	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/shape"
)

func TestEqual(t *testing.T) {
	b, s := newTestGraph(t)
	// Same name and shape but a different category.
	xParam := b.Symbol("x", shape.Scalar(), expr.Parameter)
	sum1 := b.Add(s.x, b.Mul(b.Int(2), s.y))
	sum2 := b.Add(xParam, b.Mul(b.Int(2), s.y))
	swapped := b.Add(b.Mul(b.Int(2), s.y), s.x)
	xVec := b.Symbol("x", s.v.Shape(), expr.State)
	require.NoError(t, b.Err())

	tests := []struct {
		x, y  expr.Node
		equal bool
	}{
		{x: s.x, y: xParam, equal: true},
		{x: sum1, y: sum2, equal: true},
		{x: sum1, y: swapped, equal: false},
		{x: s.x, y: xVec, equal: false},
		{x: b.Int(2), y: b.Real(2), equal: false},
	}
	for i, test := range tests {
		if got := test.x.Equal(test.y); got != test.equal {
			t.Errorf("test %d: %s.Equal(%s) = %t but want %t", i, test.x, test.y, got, test.equal)
		}
		if test.equal && test.x.Hash() != test.y.Hash() {
			t.Errorf("test %d: equal nodes %s and %s have different hashes", i, test.x, test.y)
		}
	}
}

func TestOrder(t *testing.T) {
	b, s := newTestGraph(t)
	nodes := []expr.Node{
		b.Unary(kind.Sin, s.x),
		b.Add(s.x, s.y),
		b.Add(s.x, s.y, s.z),
		b.Mul(s.y, s.x),
		s.z,
		b.Zero(shape.Scalar()),
		b.Int(3),
		b.Rational(1, 3),
		s.y,
		s.A,
		s.x,
		b.Pow(s.x, b.Int(2)),
	}
	require.NoError(t, b.Err())
	for i, x := range nodes {
		for j, y := range nodes {
			cxy, cyx := x.Compare(y), y.Compare(x)
			if cxy != -cyx {
				t.Errorf("nodes %d and %d: compare is not antisymmetric: %d and %d", i, j, cxy, cyx)
			}
			if (cxy == 0) != (i == j) {
				t.Errorf("nodes %d (%s) and %d (%s): compare returns %d", i, x, j, y, cxy)
			}
			if x.Less(y) != (cxy < 0) {
				t.Errorf("nodes %d and %d: Less is not consistent with Compare", i, j)
			}
		}
	}
	slices.SortFunc(nodes, expr.Node.Compare)
	var got []string
	for _, n := range nodes {
		got = append(got, n.String())
	}
	want := []string{
		"0",
		"3",
		"1/3",
		"x",
		"y",
		"z",
		"A",
		"(sin x)",
		"(^ x 2)",
		"(+ x y)",
		"(+ x y z)",
		"(* y x)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

// doubling returns x+x, (x+x)+(x+x), ... nested depth times.
// The result has depth+1 nodes but 2^depth paths to x.
func doubling(b *expr.Builder, x expr.Node, depth int) expr.Node {
	n := x
	for range depth {
		n = b.Add(n, n)
	}
	return n
}

func TestEqualSharedExpressions(t *testing.T) {
	const depth = 40
	b, s := newTestGraph(t)
	n1 := doubling(b, s.x, depth)
	n2 := doubling(b, s.x, depth)
	other := doubling(b, s.y, depth)
	require.NoError(t, b.Err())

	require.True(t, n1.Equal(n2))
	require.Equal(t, n1.Hash(), n2.Hash())
	require.False(t, n1.Equal(other))
	require.True(t, n1.Less(other))

	g := b.Graph()
	before := g.Len()
	substituted, err := n1.Subs(s.x, s.y)
	require.NoError(t, err)
	require.True(t, substituted.Equal(other))
	// Shared sub-expressions are rebuilt once.
	require.Equal(t, depth, g.Len()-before)
}
