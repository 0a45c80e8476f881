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
	"math/big"

	"github.com/sevoigt/pymbs-sub001/base/iter"
	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/fmterr"
	"github.com/sevoigt/pymbs-sub001/shape"
)

// Symbol returns a new symbol.
// Symbols are equal if they have the same name and the same shape.
func (g *Graph) Symbol(name string, s shape.Shape, cat Category) (Node, error) {
	if name == "" {
		return Node{}, fmterr.Internalf("symbol without a name")
	}
	if err := validShape(s); err != nil {
		return Node{}, err
	}
	g.unames.Register(name)
	return g.handle(g.alloc(kind.Symbol, s, symbolValue{name: name, cat: cat}, nil)), nil
}

func validShape(s shape.Shape) error {
	if !s.IsValid() {
		return fmterr.Shapef("invalid shape %s", s)
	}
	return nil
}

// Int returns an exact integer.
func (g *Graph) Int(i int64) Node {
	return g.handle(g.newNumber(intNumber(i)))
}

// Rational returns the exact number num/den.
func (g *Graph) Rational(num, den int64) (Node, error) {
	if den == 0 {
		return Node{}, fmterr.Shapef("rational %d/%d has a zero denominator", num, den)
	}
	return g.handle(g.newNumber(exactNumber(big.NewRat(num, den)))), nil
}

// Real returns a floating point number.
func (g *Graph) Real(f float64) Node {
	return g.handle(g.newNumber(realNumber(f)))
}

// Zero returns the zero of a given shape.
// The same node is returned for the same shape.
func (g *Graph) Zero(s shape.Shape) (Node, error) {
	if err := validShape(s); err != nil {
		return Node{}, err
	}
	return g.handle(g.zero(s)), nil
}

// Eye returns the multiplicative identity of a given shape:
// the scalar one or an identity matrix.
// The same node is returned for the same shape.
func (g *Graph) Eye(s shape.Shape) (Node, error) {
	if err := validShape(s); err != nil {
		return Node{}, err
	}
	if !s.IsSquare() {
		return Node{}, fmterr.Shapef("cannot build an identity matrix of non-square shape %s", s)
	}
	return g.handle(g.eye(s)), nil
}

// One returns the scalar one.
func (g *Graph) One() Node {
	return g.handle(g.one())
}

func (g *Graph) build(k kind.Kind, value payload, args ...Node) (Node, error) {
	ids, err := g.lookupAll(args)
	if err != nil {
		return Node{}, err
	}
	s, err := g.inferShape(k, value, ids)
	if err != nil {
		return Node{}, err
	}
	return g.handle(g.alloc(k, s, value, ids)), nil
}

// Add returns the sum of its arguments.
// With a single argument, the argument is returned.
func (g *Graph) Add(args ...Node) (Node, error) {
	switch len(args) {
	case 0:
		return Node{}, fmterr.Internalf("sum without any term")
	case 1:
		_, err := g.lookup(args[0])
		return args[0], err
	}
	return g.build(kind.Add, nil, args...)
}

// Sub returns a-b.
func (g *Graph) Sub(a, b Node) (Node, error) {
	negB, err := g.Neg(b)
	if err != nil {
		return Node{}, err
	}
	return g.Add(a, negB)
}

// Mul returns the product of its arguments, in order.
// With a single argument, the argument is returned.
func (g *Graph) Mul(args ...Node) (Node, error) {
	switch len(args) {
	case 0:
		return Node{}, fmterr.Internalf("product without any factor")
	case 1:
		_, err := g.lookup(args[0])
		return args[0], err
	}
	return g.build(kind.Mul, nil, args...)
}

// Div returns a*b^-1. The divisor must be a scalar.
func (g *Graph) Div(a, b Node) (Node, error) {
	id, err := g.lookup(b)
	if err != nil {
		return Node{}, err
	}
	if !g.isScalar(id) {
		return Node{}, fmterr.Shapef("cannot divide by a value of shape %s", g.shapeOf(id))
	}
	inv, err := g.Pow(b, g.Int(-1))
	if err != nil {
		return Node{}, err
	}
	return g.Mul(a, inv)
}

// Pow returns base^exp.
func (g *Graph) Pow(base, exp Node) (Node, error) {
	return g.build(kind.Pow, nil, base, exp)
}

// Atan2 returns atan2(y, x).
func (g *Graph) Atan2(y, x Node) (Node, error) {
	return g.build(kind.Atan2, nil, y, x)
}

// Neg returns -x.
func (g *Graph) Neg(x Node) (Node, error) {
	return g.build(kind.Neg, nil, x)
}

// Transpose returns the transpose of x.
func (g *Graph) Transpose(x Node) (Node, error) {
	return g.build(kind.Transpose, nil, x)
}

// Der returns the unevaluated time derivative of x.
// Use Node.Der to compute a derivative.
func (g *Graph) Der(x Node) (Node, error) {
	return g.build(kind.Der, nil, x)
}

// Element returns the element (row, col) of x.
func (g *Graph) Element(x Node, row, col int) (Node, error) {
	return g.build(kind.Element, elementValue{row: row, col: col}, x)
}

// Scalar converts a value with a single element to a scalar.
func (g *Graph) Scalar(x Node) (Node, error) {
	return g.build(kind.Scalar, nil, x)
}

// Skew returns the skew-symmetric matrix of a vector with 3 elements.
func (g *Graph) Skew(v Node) (Node, error) {
	return g.build(kind.Skew, nil, v)
}

// Inverse returns the inverse of a square matrix.
func (g *Graph) Inverse(m Node) (Node, error) {
	return g.build(kind.Inverse, nil, m)
}

// Unary applies a scalar function, such as kind.Sin, to x.
func (g *Graph) Unary(k kind.Kind, x Node) (Node, error) {
	if !k.IsFunction() || k.Arity() != kind.Unary {
		return Node{}, fmterr.Internalf("%s is not a unary scalar function", k)
	}
	return g.build(k, nil, x)
}

// Matrix returns a dense matrix given its elements in row-major order.
func (g *Graph) Matrix(s shape.Shape, elems ...Node) (Node, error) {
	if err := validShape(s); err != nil {
		return Node{}, err
	}
	if len(elems) != s.Numel() {
		return Node{}, fmterr.Shapef("matrix of shape %s requires %d elements, got %d", s, s.Numel(), len(elems))
	}
	ids, err := g.lookupAll(elems)
	if err != nil {
		return Node{}, err
	}
	if err := g.checkElements(ids); err != nil {
		return Node{}, err
	}
	return g.handle(g.matrixOf(s, ids)), nil
}

// MatrixRows returns a dense matrix given its rows.
// A single row builds a row vector and rows of a single element build a column vector.
func (g *Graph) MatrixRows(rows ...[]Node) (Node, error) {
	if len(rows) == 0 {
		return Node{}, fmterr.Shapef("matrix without any row")
	}
	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return Node{}, fmterr.Shapef("row %d has %d elements but row 0 has %d", i, len(row), cols)
		}
	}
	s, err := shape.New(len(rows), cols)
	if err != nil {
		return Node{}, err
	}
	var elems []Node
	for el := range iter.All(rows...) {
		elems = append(elems, el)
	}
	return g.Matrix(s, elems...)
}
