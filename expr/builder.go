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

package expr

import (
	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/fmterr"
	"github.com/sevoigt/pymbs-sub001/shape"
)

// Builder builds expressions and accumulates the errors.
//
// A construction failing returns an invalid node. Constructions taking an
// invalid node return an invalid node without reporting a new error, so
// a sequence of constructions can be checked once with Err.
type Builder struct {
	g    *Graph
	errs fmterr.Appender
}

// NewBuilder returns a builder of expressions in g.
func NewBuilder(g *Graph) *Builder {
	return &Builder{g: g}
}

// Graph returns the graph the builder is building expressions in.
func (b *Builder) Graph() *Graph {
	return b.g
}

// Err returns all the errors reported so far, or nil.
func (b *Builder) Err() error {
	return b.errs.Err()
}

func (b *Builder) node(n Node, err error) Node {
	if err != nil {
		b.errs.Append(err)
		return Node{}
	}
	return n
}

func valid(ns ...Node) bool {
	for _, n := range ns {
		if n.g == nil {
			return false
		}
	}
	return true
}

// Symbol returns a new symbol.
func (b *Builder) Symbol(name string, s shape.Shape, cat Category) Node {
	return b.node(b.g.Symbol(name, s, cat))
}

// Int returns an exact integer.
func (b *Builder) Int(i int64) Node {
	return b.g.Int(i)
}

// Rational returns the exact number num/den.
func (b *Builder) Rational(num, den int64) Node {
	return b.node(b.g.Rational(num, den))
}

// Real returns a floating point number.
func (b *Builder) Real(f float64) Node {
	return b.g.Real(f)
}

// Zero returns the zero of a shape.
func (b *Builder) Zero(s shape.Shape) Node {
	return b.node(b.g.Zero(s))
}

// Eye returns the identity of a shape.
func (b *Builder) Eye(s shape.Shape) Node {
	return b.node(b.g.Eye(s))
}

// One returns the scalar one.
func (b *Builder) One() Node {
	return b.g.One()
}

// Add returns the sum of its arguments.
func (b *Builder) Add(args ...Node) Node {
	if !valid(args...) {
		return Node{}
	}
	return b.node(b.g.Add(args...))
}

// Sub returns x-y.
func (b *Builder) Sub(x, y Node) Node {
	if !valid(x, y) {
		return Node{}
	}
	return b.node(b.g.Sub(x, y))
}

// Mul returns the product of its arguments.
func (b *Builder) Mul(args ...Node) Node {
	if !valid(args...) {
		return Node{}
	}
	return b.node(b.g.Mul(args...))
}

// Div returns x/y.
func (b *Builder) Div(x, y Node) Node {
	if !valid(x, y) {
		return Node{}
	}
	return b.node(b.g.Div(x, y))
}

// Pow returns base^exp.
func (b *Builder) Pow(base, exp Node) Node {
	if !valid(base, exp) {
		return Node{}
	}
	return b.node(b.g.Pow(base, exp))
}

// Atan2 returns atan2(y, x).
func (b *Builder) Atan2(y, x Node) Node {
	if !valid(y, x) {
		return Node{}
	}
	return b.node(b.g.Atan2(y, x))
}

// Neg returns -x.
func (b *Builder) Neg(x Node) Node {
	return b.unary(b.g.Neg, x)
}

// Transpose returns the transpose of x.
func (b *Builder) Transpose(x Node) Node {
	return b.unary(b.g.Transpose, x)
}

// Der returns the unevaluated time derivative of x.
func (b *Builder) Der(x Node) Node {
	return b.unary(b.g.Der, x)
}

// Scalar converts a value with a single element to a scalar.
func (b *Builder) Scalar(x Node) Node {
	return b.unary(b.g.Scalar, x)
}

// Skew returns the skew-symmetric matrix of a vector.
func (b *Builder) Skew(x Node) Node {
	return b.unary(b.g.Skew, x)
}

// Inverse returns the inverse of a square matrix.
func (b *Builder) Inverse(x Node) Node {
	return b.unary(b.g.Inverse, x)
}

// Unary applies a scalar function to x.
func (b *Builder) Unary(k kind.Kind, x Node) Node {
	if !valid(x) {
		return Node{}
	}
	return b.node(b.g.Unary(k, x))
}

// Element returns the element (row, col) of x.
func (b *Builder) Element(x Node, row, col int) Node {
	if !valid(x) {
		return Node{}
	}
	return b.node(b.g.Element(x, row, col))
}

// Matrix returns a dense matrix given its elements in row-major order.
func (b *Builder) Matrix(s shape.Shape, elems ...Node) Node {
	if !valid(elems...) {
		return Node{}
	}
	return b.node(b.g.Matrix(s, elems...))
}

// MatrixRows returns a dense matrix given its rows.
func (b *Builder) MatrixRows(rows ...[]Node) Node {
	for _, row := range rows {
		if !valid(row...) {
			return Node{}
		}
	}
	return b.node(b.g.MatrixRows(rows...))
}

func (b *Builder) unary(f func(Node) (Node, error), x Node) Node {
	if !valid(x) {
		return Node{}
	}
	return b.node(f(x))
}
