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

	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/fmterr"
	"github.com/sevoigt/pymbs-sub001/shape"
)

func (g *Graph) checkPosition(id index, row, col int) error {
	s := g.shapeOf(id)
	if row < 0 || row >= s.Dim1() || col < 0 || col >= s.Dim2() {
		return fmterr.Indexf("element (%d, %d) out of range for shape %s", row, col, s)
	}
	return nil
}

// At returns the element (row, col) of the expression.
//
// The element of a dense matrix is the stored element. Elements of zero and
// identity matrices are numbers. Other expressions return an element node.
func (n Node) At(row, col int) (Node, error) {
	g := n.g
	id, err := g.lookup(n)
	if err != nil {
		return Node{}, err
	}
	if err := g.checkPosition(id, row, col); err != nil {
		return Node{}, err
	}
	switch g.kindOf(id) {
	case kind.Matrix:
		return g.handle(g.arg(id, row*g.shapeOf(id).Dim2()+col)), nil
	case kind.Zero:
		return g.handle(g.zero(shape.Scalar())), nil
	case kind.Eye:
		if row == col {
			return g.One(), nil
		}
		return g.handle(g.zero(shape.Scalar())), nil
	}
	if g.isScalar(id) {
		return n, nil
	}
	return g.handle(g.elementOf(id, row, col)), nil
}

func (g *Graph) denseMatrix(n Node) (index, error) {
	id, err := g.lookup(n)
	if err != nil {
		return 0, err
	}
	if g.kindOf(id) != kind.Matrix {
		return 0, fmterr.Internalf("%s node is not a dense matrix", g.kindOf(id))
	}
	return id, nil
}

// Row returns the elements of a row of a dense matrix.
func (n Node) Row(row int) ([]Node, error) {
	id, err := n.g.denseMatrix(n)
	if err != nil {
		return nil, err
	}
	s := n.g.shapeOf(id)
	if row < 0 || row >= s.Dim1() {
		return nil, fmterr.Indexf("row %d out of range for shape %s", row, s)
	}
	return n.g.handles(n.g.argsOf(id)[row*s.Dim2() : (row+1)*s.Dim2()]), nil
}

// Col returns the elements of a column of a dense matrix.
func (n Node) Col(col int) ([]Node, error) {
	id, err := n.g.denseMatrix(n)
	if err != nil {
		return nil, err
	}
	s := n.g.shapeOf(id)
	if col < 0 || col >= s.Dim2() {
		return nil, fmterr.Indexf("column %d out of range for shape %s", col, s)
	}
	elems := make([]Node, s.Dim1())
	for i := range elems {
		elems[i] = n.g.handle(n.g.arg(id, i*s.Dim2()+col))
	}
	return elems, nil
}

// SetAt sets the element (row, col) of a matrix to a scalar value.
//
// Dense matrices are modified in place and returned. Zero and identity
// matrices are shared: a new dense matrix holding their elements is
// modified and returned instead. Other expressions cannot be modified.
func (g *Graph) SetAt(m Node, row, col int, v Node) (Node, error) {
	id, err := g.lookup(m)
	if err != nil {
		return Node{}, err
	}
	vid, err := g.lookup(v)
	if err != nil {
		return Node{}, err
	}
	if !g.isScalar(vid) {
		return Node{}, fmterr.Shapef("cannot set a matrix element to a value of shape %s", g.shapeOf(vid))
	}
	if err := g.checkPosition(id, row, col); err != nil {
		return Node{}, err
	}
	s := g.shapeOf(id)
	switch g.kindOf(id) {
	case kind.Matrix:
	case kind.Zero, kind.Eye:
		id = g.matrixOf(s, g.expand(id))
	default:
		return Node{}, fmterr.Internalf("cannot set an element of a %s node", g.kindOf(id))
	}
	if g.reaches(vid, id) {
		return Node{}, fmterr.Internalf("cannot set an element of %s to %s: the assignment would create a cycle", m, v)
	}
	g.setArg(id, row*s.Dim2()+col, vid)
	g.changed(id)
	return g.handle(id), nil
}

// expand returns the elements of a zero or identity matrix.
func (g *Graph) expand(id index) []index {
	s := g.shapeOf(id)
	zero := g.zero(shape.Scalar())
	elems := slices.Repeat([]index{zero}, s.Numel())
	if g.kindOf(id) == kind.Eye {
		for i := 0; i < s.Dim1(); i++ {
			elems[i*s.Dim2()+i] = g.one()
		}
	}
	return elems
}
