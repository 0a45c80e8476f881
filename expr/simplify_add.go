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

// term is a product of a numerical coefficient and factors.
type term struct {
	coef    number
	factors []index
	// node is the original node of the term if it has not been merged with another term.
	node index
	// merged is set when another term has been added to this term.
	merged bool
}

// splitTerm splits a node into a numerical coefficient and its remaining factors.
func (g *Graph) splitTerm(id index) term {
	switch g.kindOf(id) {
	case kind.Neg:
		return term{coef: intNumber(-1), factors: []index{g.arg(id, 0)}, node: id}
	case kind.Mul:
		args := g.argsOf(id)
		if num, ok := g.numberOf(args[0]); ok {
			return term{coef: num, factors: slices.Clone(args[1:]), node: id}
		}
	}
	return term{coef: intNumber(1), factors: []index{id}, node: id}
}

func (g *Graph) sameFactors(x, y []index) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !g.equal(x[i], y[i]) {
			return false
		}
	}
	return true
}

// flattenArgs returns the arguments of id, replacing arguments of kind k by their own arguments.
func (g *Graph) flattenArgs(id index, k kind.Kind) []index {
	var out []index
	for _, arg := range g.argsOf(id) {
		if g.kindOf(arg) == k {
			out = append(out, g.flattenArgs(arg, k)...)
			continue
		}
		out = append(out, arg)
	}
	return out
}

func (g *Graph) simplifyAdd(id index) index {
	s := g.shapeOf(id)
	var (
		acc      = intNumber(0)
		numbers  int
		matrices []index
		terms    []term
	)
	for _, arg := range g.flattenArgs(id, kind.Add) {
		if num, ok := g.numberOf(arg); ok {
			acc = addNumbers(acc, num)
			numbers++
			continue
		}
		if g.isZero(arg) {
			continue
		}
		t := g.splitTerm(arg)
		merged := false
		for i := range terms {
			if !g.sameFactors(terms[i].factors, t.factors) {
				continue
			}
			terms[i].coef = addNumbers(terms[i].coef, t.coef)
			terms[i].merged = true
			merged = true
			break
		}
		if !merged {
			terms = append(terms, t)
		}
	}
	var out []index
	if numbers > 0 && !acc.isZero() {
		out = append(out, g.newNumber(acc))
	}
	for _, t := range terms {
		if t.coef.isZero() {
			continue
		}
		if !t.merged {
			if g.kindOf(t.node) == kind.Matrix {
				matrices = append(matrices, t.node)
			} else {
				out = append(out, t.node)
			}
			continue
		}
		factors := append([]index{g.newNumber(t.coef)}, t.factors...)
		out = append(out, g.simplify(g.productOf(g.productShape(t.factors), factors...)))
	}
	for _, m := range g.addMatrices(matrices) {
		if !g.isZero(m) {
			out = append(out, m)
		}
	}
	xslices.SortStableFunc(out, g.compare)
	switch len(out) {
	case 0:
		return g.zero(s)
	case 1:
		if g.shapeOf(out[0]) == s {
			return out[0]
		}
		out = append([]index{g.zero(s)}, out...)
	}
	if !slices.Equal(out, g.argsOf(id)) {
		g.setArgs(id, out)
	}
	return id
}

// productShape returns the shape of the product of factors.
func (g *Graph) productShape(factors []index) shape.Shape {
	s := g.shapeOf(factors[0])
	for _, f := range factors[1:] {
		var err error
		if s, err = s.Mul(g.shapeOf(f)); err != nil {
			panic(fmterr.ToInternal(err))
		}
	}
	return s
}

// addMatrices adds dense matrices of the same shape elementwise.
func (g *Graph) addMatrices(matrices []index) []index {
	if len(matrices) < 2 {
		return matrices
	}
	var out []index
	for len(matrices) > 0 {
		first := matrices[0]
		s := g.shapeOf(first)
		same := []index{first}
		var rest []index
		for _, m := range matrices[1:] {
			if g.shapeOf(m) == s {
				same = append(same, m)
			} else {
				rest = append(rest, m)
			}
		}
		matrices = rest
		if len(same) == 1 {
			out = append(out, first)
			continue
		}
		elems := make([]index, s.Numel())
		for i := range elems {
			terms := make([]index, len(same))
			for j, m := range same {
				terms[j] = g.arg(m, i)
			}
			elems[i] = g.sumOf(shape.Scalar(), terms...)
		}
		out = append(out, g.simplify(g.matrixOf(s, elems)))
	}
	return out
}
