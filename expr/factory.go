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
	"slices"

	"github.com/sevoigt/pymbs-sub001/base/iter"
	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/fmterr"
	"github.com/sevoigt/pymbs-sub001/shape"
)

var matrix3x3 = func() shape.Shape {
	s, err := shape.Matrix(3, 3)
	if err != nil {
		panic(err)
	}
	return s
}()

// inferShape returns the shape of a node of kind k given its arguments.
// It returns a shape error if the arguments are not compatible with the operator.
func (g *Graph) inferShape(k kind.Kind, value payload, args []index) (shape.Shape, error) {
	switch k.Arity() {
	case kind.Unary:
		return g.inferUnary(k, value, args[0])
	case kind.Binary:
		return g.inferBinary(k, args[0], args[1])
	}
	switch k {
	case kind.Add:
		s := g.shapeOf(args[0])
		for _, arg := range args[1:] {
			var err error
			if s, err = s.Add(g.shapeOf(arg)); err != nil {
				return shape.Shape{}, err
			}
		}
		return s, nil
	case kind.Mul:
		s := g.shapeOf(args[0])
		for _, arg := range args[1:] {
			var err error
			if s, err = s.Mul(g.shapeOf(arg)); err != nil {
				return shape.Shape{}, err
			}
		}
		return s, nil
	}
	return shape.Shape{}, fmterr.Internalf("cannot infer the shape of a %s node", k)
}

func (g *Graph) inferUnary(k kind.Kind, value payload, x index) (shape.Shape, error) {
	s := g.shapeOf(x)
	switch k {
	case kind.Neg, kind.Der:
		return s, nil
	case kind.Transpose:
		return s.Transpose(), nil
	case kind.Element:
		pos, ok := value.(elementValue)
		if !ok {
			return shape.Shape{}, fmterr.Internalf("element node without a position")
		}
		if pos.row < 0 || pos.row >= s.Dim1() || pos.col < 0 || pos.col >= s.Dim2() {
			return shape.Shape{}, fmterr.Indexf("element (%d, %d) out of range for shape %s", pos.row, pos.col, s)
		}
		return shape.Scalar(), nil
	case kind.Scalar:
		if s.Numel() != 1 {
			return shape.Shape{}, fmterr.Shapef("cannot convert a value of shape %s to a scalar", s)
		}
		return shape.Scalar(), nil
	case kind.Skew:
		if !s.IsVector() || s.Numel() != 3 {
			return shape.Shape{}, fmterr.Shapef("skew requires a vector with 3 elements, got shape %s", s)
		}
		return matrix3x3, nil
	case kind.Inverse:
		if !s.IsSquare() {
			return shape.Shape{}, fmterr.Shapef("cannot invert a non-square matrix of shape %s", s)
		}
		return s, nil
	}
	if !s.IsScalar() {
		return shape.Shape{}, fmterr.Shapef("%s requires a scalar argument, got shape %s", k, s)
	}
	return s, nil
}

func (g *Graph) inferBinary(k kind.Kind, x, y index) (shape.Shape, error) {
	sx, sy := g.shapeOf(x), g.shapeOf(y)
	switch k {
	case kind.Pow:
		if !sy.IsScalar() {
			return shape.Shape{}, fmterr.Shapef("exponent must be a scalar, got shape %s", sy)
		}
		if !sx.IsScalar() && !sx.IsSquare() {
			return shape.Shape{}, fmterr.Shapef("cannot raise a non-square matrix of shape %s to a power", sx)
		}
		return sx, nil
	case kind.Atan2:
		if !sx.IsScalar() || !sy.IsScalar() {
			return shape.Shape{}, fmterr.Shapef("atan2 requires scalar arguments, got shapes %s and %s", sx, sy)
		}
		return sx, nil
	}
	return shape.Shape{}, fmterr.Internalf("unknown binary kind %s", k)
}

// checkArity returns an internal error if the number of arguments does not match the kind.
func checkArity(k kind.Kind, s shape.Shape, n int) error {
	switch k.Arity() {
	case kind.Leaf:
		if n != 0 {
			return fmterr.Internalf("%s node takes no argument, got %d", k, n)
		}
	case kind.Unary:
		if n != 1 {
			return fmterr.Internalf("%s node takes 1 argument, got %d", k, n)
		}
	case kind.Binary:
		if n != 2 {
			return fmterr.Internalf("%s node takes 2 arguments, got %d", k, n)
		}
	case kind.Nary:
		if k == kind.Matrix {
			if n != s.Numel() {
				return fmterr.Internalf("matrix of shape %s takes %d elements, got %d", s, s.Numel(), n)
			}
			return nil
		}
		if n < 2 {
			return fmterr.Internalf("%s node takes at least 2 arguments, got %d", k, n)
		}
	default:
		return errUnknownKind(k)
	}
	return nil
}

func errUnknownKind(k kind.Kind) error {
	return fmterr.Internalf("unknown kind %d", k)
}

// NewNode builds a node of a given kind from its arguments.
//
// NewNode is the generic reconstruction entry point. It cannot build nodes
// requiring a payload (symbols, numbers and elements): these have their own constructors.
// The shape s must be the shape the operator infers from its arguments.
func (g *Graph) NewNode(k kind.Kind, s shape.Shape, args ...Node) (Node, error) {
	if !k.IsValid() {
		return Node{}, errUnknownKind(k)
	}
	switch k {
	case kind.Symbol, kind.Int, kind.Rational, kind.Real, kind.Element:
		return Node{}, fmterr.Internalf("%s node cannot be built by the factory", k)
	}
	if err := checkArity(k, s, len(args)); err != nil {
		return Node{}, err
	}
	ids, err := g.lookupAll(args)
	if err != nil {
		return Node{}, err
	}
	switch k {
	case kind.Zero:
		return g.Zero(s)
	case kind.Eye:
		return g.Eye(s)
	case kind.Matrix:
		if err := g.checkElements(ids); err != nil {
			return Node{}, err
		}
		return g.handle(g.alloc(k, s, nil, ids)), nil
	}
	got, err := g.inferShape(k, nil, ids)
	if err != nil {
		return Node{}, err
	}
	if got != s {
		return Node{}, fmterr.Shapef("%s node has shape %s but shape %s was requested", k, got, s)
	}
	return g.handle(g.alloc(k, s, nil, ids)), nil
}

func (g *Graph) checkElements(ids []index) error {
	for i, id := range ids {
		if !g.isScalar(id) {
			return fmterr.Shapef("matrix element %d has shape %s: elements must be scalars", i, g.shapeOf(id))
		}
	}
	return nil
}

// rebuild returns a new node with the same kind, shape and payload as id but different arguments.
func (g *Graph) rebuild(id index, args []index) index {
	nd := &g.nodes[id]
	return g.alloc(nd.kind, nd.shape, nd.value, args)
}

// op builds an operator node. The arguments must be compatible with the operator.
func (g *Graph) op(k kind.Kind, value payload, args ...index) index {
	s, err := g.inferShape(k, value, args)
	if err != nil {
		panic(fmterr.ToInternal(err))
	}
	return g.alloc(k, s, value, args)
}

func (g *Graph) zero(s shape.Shape) index {
	if id, ok := g.zeros[s]; ok {
		return id
	}
	id := g.alloc(kind.Zero, s, nil, nil)
	g.zeros[s] = id
	return id
}

func (g *Graph) eye(s shape.Shape) index {
	if id, ok := g.eyes[s]; ok {
		return id
	}
	id := g.alloc(kind.Eye, s, nil, nil)
	g.eyes[s] = id
	return id
}

func (g *Graph) one() index {
	return g.eye(shape.Scalar())
}

func (g *Graph) isZero(id index) bool {
	return g.kindOf(id) == kind.Zero
}

func (g *Graph) isOne(id index) bool {
	return g.kindOf(id) == kind.Eye && g.isScalar(id)
}

// sumOf returns the sum of terms of shape s, skipping zeros.
func (g *Graph) sumOf(s shape.Shape, terms ...index) index {
	kept := slices.Collect(iter.Filter(func(term index) bool {
		return !g.isZero(term)
	}, terms))
	switch len(kept) {
	case 0:
		return g.zero(s)
	case 1:
		if g.shapeOf(kept[0]) == s {
			return kept[0]
		}
		kept = append(kept, g.zero(s))
	}
	return g.op(kind.Add, nil, kept...)
}

// productOf returns the product of factors of shape s.
// Scalar ones are skipped and a zero factor makes the product zero.
func (g *Graph) productOf(s shape.Shape, factors ...index) index {
	var kept []index
	for _, factor := range factors {
		if g.isZero(factor) {
			return g.zero(s)
		}
		if !g.isOne(factor) {
			kept = append(kept, factor)
		}
	}
	switch len(kept) {
	case 0:
		return g.one()
	case 1:
		return kept[0]
	}
	return g.op(kind.Mul, nil, kept...)
}

func (g *Graph) negOf(x index) index {
	if g.isZero(x) {
		return x
	}
	return g.op(kind.Neg, nil, x)
}

func (g *Graph) powOf(base, exp index) index {
	return g.op(kind.Pow, nil, base, exp)
}

func (g *Graph) elementOf(x index, row, col int) index {
	return g.op(kind.Element, elementValue{row: row, col: col}, x)
}

func (g *Graph) matrixOf(s shape.Shape, elems []index) index {
	return g.alloc(kind.Matrix, s, nil, elems)
}
