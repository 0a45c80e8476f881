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
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/sevoigt/pymbs-sub001/expr"
	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/shape"
)

func TestAtomsWithCount(t *testing.T) {
	b, s := newTestGraph(t)
	shared := b.Mul(s.x, s.y)
	xParam := b.Symbol("x", shape.Scalar(), expr.Parameter)
	tests := []struct {
		n    expr.Node
		want []string
	}{
		{
			n:    b.Add(b.Mul(s.x, s.y), b.Unary(kind.Sin, s.x)),
			want: []string{"x:2", "y:1"},
		},
		{
			n:    b.Add(shared, shared, s.z),
			want: []string{"x:2", "y:2", "z:1"},
		},
		{
			n:    b.Mul(s.x, xParam),
			want: []string{"x:2"},
		},
		{
			n:    b.Add(b.Int(2), b.Der(s.A), s.A),
			want: []string{"A:2"},
		},
		{
			n: b.Int(4),
		},
	}
	require.NoError(t, b.Err())
	for i, test := range tests {
		var got []string
		for _, atom := range test.n.AtomsWithCount() {
			got = append(got, fmt.Sprintf("%s:%d", atom.Atom, atom.Count))
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("test %d: unexpected atoms of %s (-want +got):\n%s", i, test.n, diff)
		}
	}
}

func TestAtoms(t *testing.T) {
	b, s := newTestGraph(t)
	n := b.Add(b.Mul(s.a, s.x), b.Unary(kind.Cos, s.x), s.y)
	require.NoError(t, b.Err())
	atoms := n.Atoms()
	require.Equal(t, 3, atoms.Size())
	for _, sym := range []expr.Node{s.a, s.x, s.y} {
		require.True(t, atoms.Contains(sym), "%s not in %s", sym, n)
	}
	require.False(t, atoms.Contains(s.z))
}
