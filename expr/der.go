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

	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/fmterr"
)

// grader computes the derivative of expressions, either with respect
// to a scalar symbol or with respect to time.
type grader struct {
	g *Graph
	// wrt is the symbol of the derivative. Ignored for time derivatives.
	wrt  index
	time bool
	memo map[index]index
}

// Der returns the time derivative of the expression.
//
// Parameters and constants do not depend on time. The time derivative of
// any other symbol x is the unevaluated node der(x).
// The result is not simplified.
func (n Node) Der() Node {
	gr := &grader{g: n.g, time: true, memo: make(map[index]index)}
	return n.g.handle(gr.der(n.g.mustLookup(n)))
}

// DerWrt returns the derivative of the expression with respect to a scalar symbol.
// The result is not simplified.
func (n Node) DerWrt(sym Node) (Node, error) {
	id, err := n.g.lookup(n)
	if err != nil {
		return Node{}, err
	}
	wrt, err := n.g.lookup(sym)
	if err != nil {
		return Node{}, err
	}
	if n.g.kindOf(wrt) != kind.Symbol {
		return Node{}, fmterr.Internalf("cannot differentiate with respect to a %s node: a symbol is required", n.g.kindOf(wrt))
	}
	if !n.g.isScalar(wrt) {
		return Node{}, fmterr.Shapef("cannot differentiate with respect to symbol %s of shape %s: a scalar is required", sym, n.g.shapeOf(wrt))
	}
	gr := &grader{g: n.g, wrt: wrt, memo: make(map[index]index)}
	return n.g.handle(gr.der(id)), nil
}

func (gr *grader) der(id index) index {
	if d, ok := gr.memo[id]; ok {
		return d
	}
	d := gr.derNode(id)
	gr.memo[id] = d
	return d
}

func (gr *grader) derNode(id index) index {
	g := gr.g
	s := g.shapeOf(id)
	switch k := g.kindOf(id); k {
	case kind.Zero, kind.Eye, kind.Int, kind.Rational, kind.Real:
		return g.zero(s)
	case kind.Symbol:
		return gr.derSymbol(id)
	case kind.Der:
		if gr.time {
			return g.op(kind.Der, nil, id)
		}
		return g.zero(s)
	case kind.Neg:
		return g.negOf(gr.der(g.arg(id, 0)))
	case kind.Transpose, kind.Element, kind.Scalar, kind.Skew:
		dx := gr.der(g.arg(id, 0))
		if g.isZero(dx) {
			return g.zero(s)
		}
		return g.rebuild(id, []index{dx})
	case kind.Add:
		args := g.argsOf(id)
		terms := make([]index, len(args))
		for i, arg := range args {
			terms[i] = gr.der(arg)
		}
		return g.sumOf(s, terms...)
	case kind.Mul:
		return gr.derMul(id)
	case kind.Matrix:
		args := g.argsOf(id)
		elems := make([]index, len(args))
		allZeros := true
		for i, arg := range args {
			elems[i] = gr.der(arg)
			allZeros = allZeros && g.isZero(elems[i])
		}
		if allZeros {
			return g.zero(s)
		}
		return g.matrixOf(s, elems)
	case kind.Pow:
		return gr.derPow(id)
	case kind.Inverse:
		dm := gr.der(g.arg(id, 0))
		if g.isZero(dm) {
			return g.zero(s)
		}
		return g.negOf(g.op(kind.Mul, nil, id, dm, id))
	case kind.Atan2:
		return gr.derAtan2(id)
	case kind.Sign:
		return g.zero(s)
	default:
		return gr.derFunction(id)
	}
}

func (gr *grader) derSymbol(id index) index {
	g := gr.g
	s := g.shapeOf(id)
	if gr.time {
		if g.nodes[id].value.(symbolValue).cat.IsTimeInvariant() {
			return g.zero(s)
		}
		return g.op(kind.Der, nil, id)
	}
	if g.equal(id, gr.wrt) {
		return g.one()
	}
	return g.zero(s)
}

// derMul applies the product rule, keeping the order of the factors.
func (gr *grader) derMul(id index) index {
	g := gr.g
	s := g.shapeOf(id)
	args := g.argsOf(id)
	var terms []index
	for i, arg := range args {
		d := gr.der(arg)
		if g.isZero(d) {
			continue
		}
		factors := make([]index, len(args))
		copy(factors, args)
		factors[i] = d
		terms = append(terms, g.productOf(s, factors...))
	}
	return g.sumOf(s, terms...)
}

// derPow computes e*b'*b^(e-1). The exponent is assumed to be independent
// of the variable of the derivative.
func (gr *grader) derPow(id index) index {
	g := gr.g
	s := g.shapeOf(id)
	base, exp := g.arg(id, 0), g.arg(id, 1)
	db := gr.der(base)
	if g.isZero(db) {
		return g.zero(s)
	}
	var expMinusOne index
	if e, ok := g.numberOf(exp); ok {
		expMinusOne = g.newNumber(addNumbers(e, intNumber(-1)))
	} else {
		expMinusOne = g.op(kind.Add, nil, exp, g.newInt(-1))
	}
	return g.productOf(s, exp, db, g.powOf(base, expMinusOne))
}

func (gr *grader) derAtan2(id index) index {
	g := gr.g
	s := g.shapeOf(id)
	y, x := g.arg(id, 0), g.arg(id, 1)
	dy, dx := gr.der(y), gr.der(x)
	if g.isZero(dy) && g.isZero(dx) {
		return g.zero(s)
	}
	num := g.sumOf(s,
		g.productOf(s, x, dy),
		g.negOf(g.productOf(s, y, dx)),
	)
	two := g.newInt(2)
	den := g.op(kind.Add, nil, g.powOf(x, two), g.powOf(y, two))
	return g.productOf(s, num, g.powOf(den, g.newInt(-1)))
}

// derFunction applies the chain rule to scalar functions.
func (gr *grader) derFunction(id index) index {
	g := gr.g
	s := g.shapeOf(id)
	x := g.arg(id, 0)
	dx := gr.der(x)
	if g.isZero(dx) {
		return g.zero(s)
	}
	var outer index
	switch k := g.kindOf(id); k {
	case kind.Sin:
		outer = g.op(kind.Cos, nil, x)
	case kind.Cos:
		outer = g.negOf(g.op(kind.Sin, nil, x))
	case kind.Tan:
		outer = g.op(kind.Add, nil, g.one(), g.powOf(id, g.newInt(2)))
	case kind.Asin:
		outer = g.powOf(gr.oneMinusSquare(x), g.newExact(ratMinusHalf))
	case kind.Acos:
		outer = g.negOf(g.powOf(gr.oneMinusSquare(x), g.newExact(ratMinusHalf)))
	case kind.Atan:
		square := g.powOf(x, g.newInt(2))
		outer = g.powOf(g.op(kind.Add, nil, g.one(), square), g.newInt(-1))
	case kind.Abs:
		outer = g.op(kind.Sign, nil, x)
	default:
		panic(fmterr.Internalf("derivative of %s node not supported", k))
	}
	return g.productOf(s, outer, dx)
}

// oneMinusSquare returns 1-x^2.
func (gr *grader) oneMinusSquare(x index) index {
	g := gr.g
	return g.op(kind.Add, nil, g.one(), g.negOf(g.powOf(x, g.newInt(2))))
}

var ratMinusHalf = big.NewRat(-1, 2)

// contains returns true if target occurs in the expression rooted at id.
func (g *Graph) contains(id, target index) bool {
	visited := make(map[index]bool)
	var visit func(index) bool
	visit = func(id index) bool {
		if visited[id] {
			return false
		}
		visited[id] = true
		if g.equal(id, target) {
			return true
		}
		for _, arg := range g.argsOf(id) {
			if visit(arg) {
				return true
			}
		}
		return false
	}
	return visit(id)
}
