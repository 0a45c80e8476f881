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
	"github.com/sevoigt/pymbs-sub001/shape"
)

func (g *Graph) simplifyTranspose(id index) index {
	s := g.shapeOf(id)
	x := g.arg(id, 0)
	if g.isScalar(x) {
		return x
	}
	switch g.kindOf(x) {
	case kind.Transpose:
		return g.arg(x, 0)
	case kind.Zero:
		return g.zero(s)
	case kind.Eye:
		return g.eye(s)
	case kind.Neg:
		return g.op(kind.Neg, nil, g.op(kind.Transpose, nil, g.arg(x, 0)))
	case kind.Matrix:
		rows, cols := g.shapeOf(x).Dim1(), g.shapeOf(x).Dim2()
		elems := make([]index, rows*cols)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				elems[j*rows+i] = g.arg(x, i*cols+j)
			}
		}
		return g.matrixOf(s, elems)
	}
	return id
}

func (g *Graph) simplifyElement(id index) index {
	x := g.arg(id, 0)
	pos := g.nodes[id].value.(elementValue)
	if g.isScalar(x) {
		return x
	}
	switch g.kindOf(x) {
	case kind.Matrix:
		return g.arg(x, pos.row*g.shapeOf(x).Dim2()+pos.col)
	case kind.Zero:
		return g.zero(shape.Scalar())
	case kind.Eye:
		if pos.row == pos.col {
			return g.one()
		}
		return g.zero(shape.Scalar())
	case kind.Transpose:
		return g.elementOf(g.arg(x, 0), pos.col, pos.row)
	case kind.Neg:
		return g.op(kind.Neg, nil, g.elementOf(g.arg(x, 0), pos.row, pos.col))
	case kind.Skew:
		return g.skewEntries(g.arg(x, 0))[pos.row*3+pos.col]
	}
	return id
}

// vectorElement returns the k-th element of a vector.
func (g *Graph) vectorElement(v index, k int) index {
	if g.kindOf(v) == kind.Matrix {
		return g.arg(v, k)
	}
	if g.shapeOf(v).Dim1() == 1 {
		return g.elementOf(v, 0, k)
	}
	return g.elementOf(v, k, 0)
}

// skewEntries returns the elements, in row-major order, of the skew-symmetric matrix of v.
func (g *Graph) skewEntries(v index) []index {
	v0, v1, v2 := g.vectorElement(v, 0), g.vectorElement(v, 1), g.vectorElement(v, 2)
	zero := g.zero(shape.Scalar())
	return []index{
		zero, g.negOf(v2), v1,
		v2, zero, g.negOf(v0),
		g.negOf(v1), v0, zero,
	}
}

func (g *Graph) simplifyScalar(id index) index {
	x := g.arg(id, 0)
	if g.isScalar(x) {
		return x
	}
	switch g.kindOf(x) {
	case kind.Matrix:
		return g.arg(x, 0)
	case kind.Zero:
		return g.zero(shape.Scalar())
	case kind.Eye:
		return g.one()
	}
	return id
}

func (g *Graph) simplifySkew(id index) index {
	x := g.arg(id, 0)
	switch g.kindOf(x) {
	case kind.Zero:
		return g.zero(g.shapeOf(id))
	case kind.Matrix:
		return g.matrixOf(g.shapeOf(id), g.skewEntries(x))
	}
	return id
}

func (g *Graph) simplifyInverse(id index) index {
	x := g.arg(id, 0)
	if g.isScalar(x) {
		return g.powOf(x, g.newInt(-1))
	}
	switch g.kindOf(x) {
	case kind.Eye:
		return x
	case kind.Inverse:
		return g.arg(x, 0)
	}
	return id
}

func (g *Graph) simplifyMatrix(id index) index {
	s := g.shapeOf(id)
	elems := g.argsOf(id)
	if s.IsScalar() {
		return elems[0]
	}
	allZeros, identity := true, s.IsSquare()
	for i, el := range elems {
		isZero := g.isZero(el)
		allZeros = allZeros && isZero
		if !identity {
			continue
		}
		if i/s.Dim2() == i%s.Dim2() {
			identity = g.isOne(el)
		} else {
			identity = isZero
		}
	}
	switch {
	case allZeros:
		return g.zero(s)
	case identity:
		return g.eye(s)
	}
	return id
}
