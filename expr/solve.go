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

import "github.com/sevoigt/pymbs-sub001/expr/kind"

// Solve solves the equation n == 0 for target.
//
// The equation must be affine in target: n = a + d*target where neither a
// nor d depends on target. Solve returns false if the equation has no such
// solution. This is not an error: callers are expected to fall back to
// an implicit equation.
//
// target is either a symbol or a scalar expression. In the latter case,
// the solution must not depend on any symbol of target.
func (n Node) Solve(target Node) (Node, bool) {
	g := n.g
	id, tgt := g.mustLookup(n), g.mustLookup(target)
	sol, ok := g.solve(id, tgt)
	if !ok {
		return Node{}, false
	}
	return g.handle(sol), true
}

func (g *Graph) solve(id, target index) (index, bool) {
	if g.equal(id, target) {
		return g.zero(g.shapeOf(target)), true
	}
	if g.kindOf(target) == kind.Symbol {
		return g.solveSymbol(id, target)
	}
	if !g.isScalar(target) {
		g.logger.Debug("cannot solve for a non-scalar expression", "target", g.handle(target))
		return 0, false
	}
	tmp := g.alloc(kind.Symbol, g.shapeOf(target), symbolValue{
		name: g.unames.Name(g.tempName),
		cat:  Variable,
	}, nil)
	substituted := g.subs(id, target, tmp, make(map[index]index))
	sol, ok := g.solveSymbol(substituted, tmp)
	if !ok {
		return 0, false
	}
	for _, atom := range g.atoms(target) {
		if g.contains(sol, atom) {
			g.logger.Debug("solution depends on the target", "target", g.handle(target), "atom", g.handle(atom))
			return 0, false
		}
	}
	return sol, true
}

func (g *Graph) solveSymbol(id, target index) (index, bool) {
	if !g.isScalar(target) {
		g.logger.Debug("cannot solve for a non-scalar symbol", "target", g.handle(target))
		return 0, false
	}
	gr := &grader{g: g, wrt: target, memo: make(map[index]index)}
	d := g.simplify(gr.der(id))
	if g.isZero(d) {
		return g.zero(g.shapeOf(target)), true
	}
	if !g.isScalar(d) {
		g.logger.Debug("equation is over-determined", "target", g.handle(target), "shape", g.shapeOf(d))
		return 0, false
	}
	if g.contains(d, target) {
		g.logger.Debug("equation is not linear", "target", g.handle(target), "derivative", g.handle(d))
		return 0, false
	}
	rest := g.simplify(g.subs(id, target, g.zero(g.shapeOf(target)), make(map[index]index)))
	inv := g.powOf(d, g.newInt(-1))
	sol := g.productOf(g.shapeOf(rest), g.negOf(rest), inv)
	return g.simplify(sol), true
}
