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

	"github.com/hashicorp/go-set/v3"

	"github.com/sevoigt/pymbs-sub001/base/ordered"
	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/shape"
)

type symbolKey struct {
	name  string
	shape shape.Shape
}

// AtomCount is the number of occurrences of a symbol in an expression.
type AtomCount struct {
	Atom  Node
	Count int
}

// Atoms returns the set of symbols in the expression.
func (n Node) Atoms() *set.HashSet[Node, uint64] {
	atoms := set.NewHashSet[Node, uint64](0)
	for _, id := range n.g.atoms(n.g.mustLookup(n)) {
		atoms.Insert(n.g.handle(id))
	}
	return atoms
}

// AtomsWithCount returns the symbols of the expression with their number of occurrences,
// in the order of their first occurrence.
// A shared sub-expression counts as many times as it is referenced.
func (n Node) AtomsWithCount() []AtomCount {
	g := n.g
	order := g.postOrder(g.mustLookup(n))
	mult := make(map[index]int, len(order))
	mult[order[len(order)-1]] = 1
	for _, id := range slices.Backward(order) {
		for _, arg := range g.argsOf(id) {
			mult[arg] += mult[id]
		}
	}
	counts := ordered.NewMap[symbolKey, *AtomCount]()
	for _, id := range g.preOrder(g.mustLookup(n)) {
		if g.kindOf(id) != kind.Symbol {
			continue
		}
		key := symbolKey{name: g.nodes[id].value.(symbolValue).name, shape: g.shapeOf(id)}
		count, _ := counts.LoadOrStore(key, &AtomCount{Atom: g.handle(id)})
		count.Count += mult[id]
	}
	var out []AtomCount
	for count := range counts.Values() {
		out = append(out, *count)
	}
	return out
}

// atoms returns the distinct symbols of an expression in the order of their first occurrence.
func (g *Graph) atoms(id index) []index {
	seen := ordered.NewMap[symbolKey, index]()
	for _, cur := range g.preOrder(id) {
		if g.kindOf(cur) != kind.Symbol {
			continue
		}
		key := symbolKey{name: g.nodes[cur].value.(symbolValue).name, shape: g.shapeOf(cur)}
		seen.LoadOrStore(key, cur)
	}
	return slices.Collect(seen.Values())
}

// preOrder returns the nodes of an expression, each node once, parents before arguments.
func (g *Graph) preOrder(id index) []index {
	var out []index
	visited := make(map[index]bool)
	var visit func(index)
	visit = func(id index) {
		if visited[id] {
			return
		}
		visited[id] = true
		out = append(out, id)
		for _, arg := range g.argsOf(id) {
			visit(arg)
		}
	}
	visit(id)
	return out
}

// postOrder returns the nodes of an expression, each node once, arguments before parents.
func (g *Graph) postOrder(id index) []index {
	var out []index
	visited := make(map[index]bool)
	var visit func(index)
	visit = func(id index) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, arg := range g.argsOf(id) {
			visit(arg)
		}
		out = append(out, id)
	}
	visit(id)
	return out
}
