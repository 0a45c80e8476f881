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
	"math"

	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/shape"
)

// Simplify returns the canonical form of the expression.
//
// Arguments are simplified and rewritten in place, so every expression sharing
// a sub-expression with n benefits from its simplification. The result is
// either n itself or a new node. Simplifying a simplified node returns the node.
func (n Node) Simplify() Node {
	return n.g.handle(n.g.simplify(n.g.mustLookup(n)))
}

func (g *Graph) simplify(id index) index {
	if g.nodes[id].state == Simplified {
		return id
	}
	for slot := 0; slot < len(g.nodes[id].args); slot++ {
		arg := g.simplify(g.nodes[id].args[slot])
		g.setArg(id, slot, arg)
	}
	out := g.applyRules(id)
	if out != id {
		out = g.simplify(out)
	}
	g.nodes[out].state = Simplified
	return out
}

// applyRules applies the rewrite rules of a node with simplified arguments.
func (g *Graph) applyRules(id index) index {
	switch k := g.kindOf(id); k {
	case kind.Zero, kind.Eye, kind.Int, kind.Rational, kind.Real, kind.Symbol:
		return id
	case kind.Neg:
		return g.simplifyNeg(id)
	case kind.Transpose:
		return g.simplifyTranspose(id)
	case kind.Der:
		return g.simplifyDer(id)
	case kind.Element:
		return g.simplifyElement(id)
	case kind.Scalar:
		return g.simplifyScalar(id)
	case kind.Skew:
		return g.simplifySkew(id)
	case kind.Inverse:
		return g.simplifyInverse(id)
	case kind.Abs, kind.Sign, kind.Sin, kind.Cos, kind.Tan, kind.Asin, kind.Acos, kind.Atan:
		return g.simplifyFunction(id)
	case kind.Pow:
		return g.simplifyPow(id)
	case kind.Atan2:
		return g.simplifyAtan2(id)
	case kind.Add:
		return g.simplifyAdd(id)
	case kind.Mul:
		return g.simplifyMul(id)
	case kind.Matrix:
		return g.simplifyMatrix(id)
	default:
		panic(errUnknownKind(k))
	}
}

func (g *Graph) simplifyNeg(id index) index {
	x := g.arg(id, 0)
	if num, ok := g.numberOf(x); ok {
		return g.newNumber(negNumber(num))
	}
	switch g.kindOf(x) {
	case kind.Zero:
		return x
	case kind.Neg:
		return g.arg(x, 0)
	case kind.Mul:
		args := append([]index{g.newInt(-1)}, g.argsOf(x)...)
		return g.op(kind.Mul, nil, args...)
	}
	return id
}

func (g *Graph) simplifyDer(id index) index {
	x := g.arg(id, 0)
	switch g.kindOf(x) {
	case kind.Zero, kind.Eye, kind.Int, kind.Rational, kind.Real:
		return g.zero(g.shapeOf(id))
	case kind.Symbol:
		if g.nodes[x].value.(symbolValue).cat.IsTimeInvariant() {
			return g.zero(g.shapeOf(id))
		}
	}
	return id
}

func (g *Graph) simplifyFunction(id index) index {
	k := g.kindOf(id)
	x := g.arg(id, 0)
	if num, ok := g.numberOf(x); ok {
		if out, ok := g.evalFunction(k, num); ok {
			return out
		}
		return id
	}
	switch g.kindOf(x) {
	case kind.Neg:
		inner := g.arg(x, 0)
		switch {
		case k.IsEven():
			return g.op(k, nil, inner)
		case k.IsOdd():
			return g.op(kind.Neg, nil, g.op(k, nil, inner))
		}
	case kind.Abs:
		if k == kind.Abs {
			return x
		}
	}
	return id
}

// evalFunction folds a scalar function applied to a number.
// Exact arguments are only folded when the result is exact.
func (g *Graph) evalFunction(k kind.Kind, x number) (index, bool) {
	switch k {
	case kind.Abs:
		return g.newNumber(absNumber(x)), true
	case kind.Sign:
		return g.newNumber(intNumber(int64(x.sign()))), true
	}
	if x.isZero() {
		switch k {
		case kind.Sin, kind.Tan, kind.Asin, kind.Atan:
			return g.zero(shape.Scalar()), true
		case kind.Cos:
			return g.one(), true
		}
	}
	if !x.isReal {
		return 0, false
	}
	var f func(float64) float64
	switch k {
	case kind.Sin:
		f = math.Sin
	case kind.Cos:
		f = math.Cos
	case kind.Tan:
		f = math.Tan
	case kind.Asin:
		f = math.Asin
	case kind.Acos:
		f = math.Acos
	case kind.Atan:
		f = math.Atan
	default:
		return 0, false
	}
	r := f(x.real)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return g.newNumber(realNumber(r)), true
}

func (g *Graph) simplifyAtan2(id index) index {
	y, x := g.arg(id, 0), g.arg(id, 1)
	ny, okY := g.numberOf(y)
	nx, okX := g.numberOf(x)
	if !okY || !okX {
		return id
	}
	if ny.isZero() && nx.sign() > 0 {
		return g.zero(shape.Scalar())
	}
	if ny.isZero() && nx.isZero() {
		return id
	}
	return g.newNumber(realNumber(math.Atan2(ny.float(), nx.float())))
}
