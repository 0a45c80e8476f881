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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/sevoigt/pymbs-sub001/expr"
	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/fmterr"
)

func TestDerWrt(t *testing.T) {
	tests := []struct {
		name  string
		build func(*expr.Builder, symbols) expr.Node
		wrt   func(symbols) expr.Node
		want  string
	}{
		{
			name:  "constant",
			build: func(b *expr.Builder, s symbols) expr.Node { return b.Int(5) },
			wrt:   func(s symbols) expr.Node { return s.x },
			want:  "0",
		},
		{
			name:  "same symbol",
			build: func(b *expr.Builder, s symbols) expr.Node { return s.x },
			wrt:   func(s symbols) expr.Node { return s.x },
			want:  "1",
		},
		{
			name:  "other symbol",
			build: func(b *expr.Builder, s symbols) expr.Node { return s.y },
			wrt:   func(s symbols) expr.Node { return s.x },
			want:  "0",
		},
		{
			name:  "product",
			build: func(b *expr.Builder, s symbols) expr.Node { return b.Mul(s.x, s.y) },
			wrt:   func(s symbols) expr.Node { return s.x },
			want:  "y",
		},
		{
			name:  "power",
			build: func(b *expr.Builder, s symbols) expr.Node { return b.Pow(s.x, b.Int(3)) },
			wrt:   func(s symbols) expr.Node { return s.x },
			want:  "(* 3 (^ x 2))",
		},
		{
			name:  "sine",
			build: func(b *expr.Builder, s symbols) expr.Node { return b.Unary(kind.Sin, s.x) },
			wrt:   func(s symbols) expr.Node { return s.x },
			want:  "(cos x)",
		},
		{
			name: "chain rule",
			build: func(b *expr.Builder, s symbols) expr.Node {
				return b.Unary(kind.Cos, b.Mul(b.Int(2), s.x))
			},
			wrt:  func(s symbols) expr.Node { return s.x },
			want: "(* -2 (sin (* 2 x)))",
		},
		{
			name:  "sum",
			build: func(b *expr.Builder, s symbols) expr.Node { return b.Add(s.x, s.y, b.Mul(s.x, s.a)) },
			wrt:   func(s symbols) expr.Node { return s.x },
			want:  "(+ 1 a)",
		},
		{
			name: "time derivative",
			build: func(b *expr.Builder, s symbols) expr.Node {
				return b.Mul(s.x, b.Der(s.x))
			},
			wrt:  func(s symbols) expr.Node { return s.x },
			want: "(der x)",
		},
		{
			name: "matrix",
			build: func(b *expr.Builder, s symbols) expr.Node {
				return b.MatrixRows([]expr.Node{s.x, s.y}, []expr.Node{b.Mul(s.x, s.x), s.a})
			},
			wrt:  func(s symbols) expr.Node { return s.x },
			want: "(matrix 2x2 1 0 (* 2 x) 0)",
		},
		{
			name: "atan2",
			build: func(b *expr.Builder, s symbols) expr.Node {
				return b.Atan2(s.y, s.x)
			},
			wrt:  func(s symbols) expr.Node { return s.y },
			want: "(* x (^ (+ (^ x 2) (^ y 2)) -1))",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, s := newTestGraph(t)
			n := test.build(b, s)
			require.NoError(t, b.Err())
			d, err := n.DerWrt(test.wrt(s))
			require.NoError(t, err)
			if diff := cmp.Diff(test.want, d.Simplify().String()); diff != "" {
				t.Errorf("unexpected derivative of %s (-want +got):\n%s", n, diff)
			}
		})
	}
}

func TestDerProductRule(t *testing.T) {
	b, s := newTestGraph(t)
	n := b.Mul(s.x, s.y)
	require.NoError(t, b.Err())
	d, err := n.DerWrt(s.x)
	require.NoError(t, err)
	if got, want := d.Simplify(), s.y.Simplify(); !got.Equal(want) {
		t.Errorf("got %s but want %s", got, want)
	}
}

func TestDerWrtErrors(t *testing.T) {
	b, s := newTestGraph(t)
	n := b.Add(s.x, s.y)
	require.NoError(t, b.Err())
	_, err := n.DerWrt(n)
	require.True(t, fmterr.IsInternal(err), "got error %v", err)
	_, err = n.DerWrt(s.A)
	require.True(t, fmterr.IsShape(err), "got error %v", err)
}

func TestTimeDerivative(t *testing.T) {
	b, s := newTestGraph(t)
	tests := []struct {
		n    expr.Node
		want string
	}{
		{
			n:    s.a,
			want: "0",
		},
		{
			n:    s.x,
			want: "(der x)",
		},
		{
			n:    b.Mul(s.a, s.x),
			want: "(* a (der x))",
		},
		{
			n:    b.Der(s.x),
			want: "(der (der x))",
		},
		{
			n:    b.Unary(kind.Sin, s.x),
			want: "(* (der x) (cos x))",
		},
	}
	require.NoError(t, b.Err())
	for i, test := range tests {
		got := test.n.Der().Simplify().String()
		if got != test.want {
			t.Errorf("test %d: time derivative of %s: got %s but want %s", i, test.n, got, test.want)
		}
	}
}
