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

	xslices "golang.org/x/exp/slices"

	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/fmterr"
	"github.com/sevoigt/pymbs-sub001/shape"
)

func (g *Graph) simplifyMul(id index) index {
	s := g.shapeOf(id)
	coef := intNumber(1)
	var scalars, others []index
	for _, arg := range g.flattenArgs(id, kind.Mul) {
		for g.kindOf(arg) == kind.Neg {
			coef = negNumber(coef)
			arg = g.arg(arg, 0)
		}
		if num, ok := g.numberOf(arg); ok {
			coef = mulNumbers(coef, num)
			continue
		}
		if g.isZero(arg) {
			return g.zero(s)
		}
		if g.isScalar(arg) {
			scalars = append(scalars, arg)
		} else {
			others = append(others, arg)
		}
	}
	var nonScalars []index
	for _, f := range g.mulMatrices(g.dropEyes(others)) {
		if g.isZero(f) {
			return g.zero(s)
		}
		switch {
		case !g.isScalar(f):
			nonScalars = append(nonScalars, f)
		case g.isNumber(f):
			num, _ := g.numberOf(f)
			coef = mulNumbers(coef, num)
		default:
			scalars = append(scalars, f)
		}
	}
	var rest []index
	for _, f := range g.mergePowers(scalars) {
		for g.kindOf(f) == kind.Neg {
			coef = negNumber(coef)
			f = g.arg(f, 0)
		}
		if num, ok := g.numberOf(f); ok {
			coef = mulNumbers(coef, num)
			continue
		}
		rest = append(rest, f)
	}
	if coef.isZero() {
		return g.zero(s)
	}
	xslices.SortStableFunc(rest, g.compare)
	var out []index
	if !coef.isOne() {
		out = append(out, g.newNumber(coef))
	}
	out = append(out, rest...)
	out = append(out, nonScalars...)
	switch len(out) {
	case 0:
		return g.one()
	case 1:
		return out[0]
	}
	if len(out) == 2 && coef.isMinusOne() {
		return g.op(kind.Neg, nil, out[1])
	}
	if !slices.Equal(out, g.argsOf(id)) {
		g.setArgs(id, out)
	}
	return id
}

func (g *Graph) isNumber(id index) bool {
	_, ok := g.numberOf(id)
	return ok
}

// dropEyes removes identity matrices from non-scalar factors.
// A single identity matrix is kept if there is no other factor.
func (g *Graph) dropEyes(factors []index) []index {
	var out []index
	for _, f := range factors {
		if g.kindOf(f) != kind.Eye {
			out = append(out, f)
		}
	}
	if len(out) == 0 && len(factors) > 0 {
		return factors[:1]
	}
	return out
}

// mulMatrices multiplies adjacent dense matrices.
func (g *Graph) mulMatrices(factors []index) []index {
	var out []index
	for _, f := range factors {
		if n := len(out); n > 0 && g.kindOf(out[n-1]) == kind.Matrix && g.kindOf(f) == kind.Matrix {
			if prod, ok := g.matrixProduct(out[n-1], f); ok {
				out[n-1] = prod
				continue
			}
		}
		out = append(out, f)
	}
	return out
}

// matrixProduct multiplies two dense matrices element by element.
// It returns false if the product cannot be expanded, for instance
// the inner product of vectors of different lengths.
func (g *Graph) matrixProduct(a, b index) (index, bool) {
	sa, sb := g.shapeOf(a), g.shapeOf(b)
	s, err := sa.Mul(sb)
	if err != nil {
		panic(fmterr.ToInternal(err))
	}
	if sa.Dim2() != sb.Dim1() {
		// Only the inner product of two vectors does not match dimensions.
		if !s.IsScalar() || sa.Numel() != sb.Numel() {
			return 0, false
		}
		terms := make([]index, sa.Numel())
		for k := range terms {
			terms[k] = g.productOf(shape.Scalar(), g.arg(a, k), g.arg(b, k))
		}
		return g.simplify(g.sumOf(shape.Scalar(), terms...)), true
	}
	rows, cols, inner := sa.Dim1(), sb.Dim2(), sa.Dim2()
	elems := make([]index, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			terms := make([]index, inner)
			for k := range inner {
				terms[k] = g.productOf(shape.Scalar(), g.arg(a, i*inner+k), g.arg(b, k*cols+j))
			}
			elems = append(elems, g.sumOf(shape.Scalar(), terms...))
		}
	}
	if s.IsScalar() {
		return g.simplify(elems[0]), true
	}
	return g.simplify(g.matrixOf(s, elems)), true
}

// power is a base raised to a sum of exponents.
type power struct {
	base   index
	exps   []index
	node   index
	merged bool
}

// mergePowers merges scalar factors with the same base:
// x*x becomes x^2 and x^a*x^b becomes x^(a+b).
func (g *Graph) mergePowers(factors []index) []index {
	var powers []power
	for _, f := range factors {
		base, exp := f, g.one()
		if g.kindOf(f) == kind.Pow {
			base, exp = g.arg(f, 0), g.arg(f, 1)
		}
		merged := false
		for i := range powers {
			if !g.equal(powers[i].base, base) {
				continue
			}
			powers[i].exps = append(powers[i].exps, exp)
			powers[i].merged = true
			merged = true
			break
		}
		if !merged {
			powers = append(powers, power{base: base, exps: []index{exp}, node: f})
		}
	}
	out := make([]index, len(powers))
	for i, p := range powers {
		if !p.merged {
			out[i] = p.node
			continue
		}
		exp := g.simplify(g.sumOf(shape.Scalar(), p.exps...))
		out[i] = g.simplify(g.powOf(p.base, exp))
	}
	return out
}
