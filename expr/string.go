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
	"fmt"

	basefmt "github.com/sevoigt/pymbs-sub001/base/fmt"
	"github.com/sevoigt/pymbs-sub001/base/stringseq"
	"github.com/sevoigt/pymbs-sub001/expr/kind"
)

var operators = map[kind.Kind]string{
	kind.Add:       "+",
	kind.Mul:       "*",
	kind.Neg:       "-",
	kind.Pow:       "^",
	kind.Transpose: "T",
}

// String returns the expression in prefix notation, for example (+ x (* 2 y)).
func (n Node) String() string {
	if !n.IsValid() {
		return "<invalid>"
	}
	return n.g.format(n.id)
}

func (g *Graph) format(id index) string {
	nd := &g.nodes[id]
	switch nd.kind {
	case kind.Zero:
		if nd.shape.IsScalar() {
			return "0"
		}
		return fmt.Sprintf("zeros(%s)", nd.shape)
	case kind.Eye:
		if nd.shape.IsScalar() {
			return "1"
		}
		return fmt.Sprintf("eye(%s)", nd.shape)
	case kind.Int, kind.Rational, kind.Real, kind.Symbol:
		return nd.value.String()
	}
	head, ok := operators[nd.kind]
	if !ok {
		head = nd.kind.String()
	}
	switch nd.kind {
	case kind.Element:
		head += " " + nd.value.String()
	case kind.Matrix:
		head += " " + nd.shape.String()
	}
	args := nd.args
	return stringseq.List(head, func(yield func(string) bool) {
		for _, arg := range args {
			if !yield(g.format(arg)) {
				return
			}
		}
	})
}

// Tree returns the expression with one node per line, the arguments of
// a node being indented below it. Each line of an operator gives its kind,
// shape and simplification state.
//
// A sub-expression referenced several times is printed once with a @N label
// and referred to by its label afterwards.
func (n Node) Tree() string {
	if !n.IsValid() {
		return "<invalid>"
	}
	g := n.g
	refs := make(map[index]int)
	for _, id := range g.preOrder(n.id) {
		for _, arg := range g.argsOf(id) {
			refs[arg]++
		}
	}
	labels := make(map[index]int)
	var tree func(id index) string
	tree = func(id index) string {
		nd := &g.nodes[id]
		if len(nd.args) == 0 {
			return g.format(id)
		}
		if label, ok := labels[id]; ok {
			return fmt.Sprintf("@%d", label)
		}
		head := fmt.Sprintf("%s %s %s", nd.kind, nd.shape, nd.state)
		if nd.value != nil {
			head += " [" + nd.value.String() + "]"
		}
		if refs[id] > 1 {
			labels[id] = len(labels) + 1
			head = fmt.Sprintf("@%d %s", labels[id], head)
		}
		children := make([]string, len(nd.args))
		for i, arg := range nd.args {
			children[i] = tree(arg)
		}
		return basefmt.Block(head, children)
	}
	return tree(n.id)
}
