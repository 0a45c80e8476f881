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
	"github.com/sevoigt/pymbs-sub001/fmterr"
)

func nodeStrings(ns []expr.Node) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.String()
	}
	return out
}

func TestAt(t *testing.T) {
	b, s := newTestGraph(t)
	m := b.MatrixRows([]expr.Node{s.x, s.y}, []expr.Node{s.z, s.a})
	eye := b.Eye(newMatrixShape(t, 2, 2))
	require.NoError(t, b.Err())

	tests := []struct {
		n        expr.Node
		row, col int
		want     string
	}{
		{n: m, row: 1, col: 0, want: "z"},
		{n: eye, row: 0, col: 0, want: "1"},
		{n: eye, row: 0, col: 1, want: "0"},
		{n: s.A, row: 0, col: 1, want: "(element 0 1 A)"},
		{n: s.v, row: 0, col: 1, want: "(element 0 1 v)"},
		{n: s.x, row: 0, col: 0, want: "x"},
	}
	for i, test := range tests {
		got, err := test.n.At(test.row, test.col)
		if err != nil {
			t.Errorf("test %d: %+v", i, err)
			continue
		}
		if got.String() != test.want {
			t.Errorf("test %d: got %s but want %s", i, got, test.want)
		}
	}

	_, err := m.At(2, 0)
	require.True(t, fmterr.IsIndex(err), "got error %v", err)
	_, err = s.v.At(1, 0)
	require.True(t, fmterr.IsIndex(err), "got error %v", err)
}

func TestRowCol(t *testing.T) {
	b, s := newTestGraph(t)
	m := b.MatrixRows([]expr.Node{s.x, s.y}, []expr.Node{s.z, s.a})
	require.NoError(t, b.Err())

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []string{"z", "a"}, nodeStrings(row))
	col, err := m.Col(1)
	require.NoError(t, err)
	require.Equal(t, []string{"y", "a"}, nodeStrings(col))

	_, err = m.Row(2)
	require.True(t, fmterr.IsIndex(err), "got error %v", err)
	_, err = s.A.Col(0)
	require.True(t, fmterr.IsInternal(err), "got error %v", err)
}

func TestSetAt(t *testing.T) {
	b, s := newTestGraph(t)
	m := b.MatrixRows([]expr.Node{s.x, s.y}, []expr.Node{s.z, s.a})
	parent := b.Mul(s.x, m)
	eye := b.Eye(newMatrixShape(t, 2, 2))
	five := b.Int(5)
	require.NoError(t, b.Err())
	g := b.Graph()
	parent.Simplify()

	got, err := g.SetAt(m, 0, 1, five)
	require.NoError(t, err)
	if got != m {
		t.Errorf("dense matrix has not been modified in place: got %s", got)
	}
	require.Equal(t, "(matrix 2x2 x 5 z a)", m.String())
	require.Equal(t, 0, s.y.NumParents())
	require.Equal(t, expr.Raw, parent.State())

	got, err = g.SetAt(eye, 1, 0, s.x)
	require.NoError(t, err)
	require.Equal(t, "(matrix 2x2 1 0 x 1)", got.String())
	require.Equal(t, "eye(2x2)", eye.String())
	require.NoError(t, g.Check())
}

func TestSetAtErrors(t *testing.T) {
	b, s := newTestGraph(t)
	m := b.MatrixRows([]expr.Node{s.x, s.y}, []expr.Node{s.z, s.a})
	elem := b.Element(m, 0, 0)
	require.NoError(t, b.Err())
	g := b.Graph()

	_, err := g.SetAt(m, 0, 0, s.A)
	require.True(t, fmterr.IsShape(err), "got error %v", err)
	_, err = g.SetAt(m, 0, 2, s.x)
	require.True(t, fmterr.IsIndex(err), "got error %v", err)
	_, err = g.SetAt(s.A, 0, 0, s.x)
	require.True(t, fmterr.IsInternal(err), "got error %v", err)
	_, err = g.SetAt(m, 0, 0, elem)
	require.True(t, fmterr.IsInternal(err), "got error %v", err)
	require.NoError(t, g.Check())
}
