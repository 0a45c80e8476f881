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
)

// Subs returns the expression where every sub-expression structurally equal
// to old is replaced by repl. The expression is not modified.
// Subs returns n itself if old does not occur in n.
func (n Node) Subs(old, repl Node) (Node, error) {
	g := n.g
	id, err := g.lookup(n)
	if err != nil {
		return Node{}, err
	}
	ids, err := g.lookupAll([]Node{old, repl})
	if err != nil {
		return Node{}, err
	}
	if so, sr := g.shapeOf(ids[0]), g.shapeOf(ids[1]); so != sr {
		return Node{}, fmterr.Shapef("cannot substitute %s of shape %s by %s of shape %s", old, so, repl, sr)
	}
	return g.handle(g.subs(id, ids[0], ids[1], make(map[index]index))), nil
}

func (g *Graph) subs(id, old, repl index, memo map[index]index) index {
	if out, ok := memo[id]; ok {
		return out
	}
	out := id
	if g.equal(id, old) {
		out = repl
	} else if args := g.argsOf(id); len(args) > 0 {
		var newArgs []index
		for i, arg := range args {
			newArg := g.subs(arg, old, repl, memo)
			if newArg == arg && newArgs == nil {
				continue
			}
			if newArgs == nil {
				newArgs = slices.Clone(args[:i])
			}
			newArgs = append(newArgs, newArg)
		}
		if newArgs != nil {
			out = g.rebuild(id, newArgs)
		}
	}
	memo[id] = out
	return out
}

// SubsInPlace replaces n by repl in every expression holding n as an argument.
//
// Every parent of n now holds repl and the simplification state of the
// parents and their ancestors is reset. Roots registered on n are moved to repl.
// SubsInPlace returns an error if repl has a different shape or if repl contains n.
func (n Node) SubsInPlace(repl Node) error {
	g := n.g
	id, err := g.lookup(n)
	if err != nil {
		return err
	}
	rid, err := g.lookup(repl)
	if err != nil {
		return err
	}
	if id == rid {
		return nil
	}
	if sn, sr := g.shapeOf(id), g.shapeOf(rid); sn != sr {
		return fmterr.Shapef("cannot substitute %s of shape %s by %s of shape %s", n, sn, repl, sr)
	}
	switch g.kindOf(id) {
	case kind.Zero, kind.Eye:
		return fmterr.Internalf("cannot substitute the shared constant %s in place", n)
	}
	if g.reaches(rid, id) {
		return fmterr.Internalf("cannot substitute %s by %s: the substitution would create a cycle", n, repl)
	}
	parents := slices.Clone(g.nodes[id].parents)
	for _, e := range parents {
		g.setArg(e.parent, e.slot, rid)
	}
	invalidated := 0
	for _, e := range parents {
		invalidated += g.changed(e.parent)
	}
	g.nodes[id].parents = nil
	g.moveRoot(id, rid)
	g.logger.Debug("substituted in place", "node", n, "by", repl, "slots", len(parents), "invalidated", invalidated)
	return nil
}

// reaches returns true if to can be reached from from by following arguments.
func (g *Graph) reaches(from, to index) bool {
	visited := make(map[index]bool)
	stack := []index{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == to {
			return true
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		stack = append(stack, g.argsOf(id)...)
	}
	return false
}

// Changed marks n and all its ancestors as not simplified.
// It has to be called after modifying the arguments of n.
func (g *Graph) Changed(n Node) error {
	id, err := g.lookup(n)
	if err != nil {
		return err
	}
	g.changed(id)
	return nil
}

// changed resets the simplification state of id and its ancestors.
// The walk stops at nodes already in the raw state since their ancestors are raw too.
// It returns the number of nodes reset.
func (g *Graph) changed(id index) int {
	count := 0
	stack := []index{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &g.nodes[cur]
		if nd.state == Raw && cur != id {
			continue
		}
		if nd.state == Simplified {
			nd.state = Raw
			count++
		}
		for _, e := range nd.parents {
			stack = append(stack, e.parent)
		}
	}
	return count
}
