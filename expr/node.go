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
	"github.com/sevoigt/pymbs-sub001/shape"
)

// Node is a handle to an expression node in a graph.
//
// Two handles are == if they refer to the same node. Use Equal to compare
// expressions structurally. The zero value is an invalid node.
// Calling a method on a handle to a collected node panics with an internal error.
type Node struct {
	g   *Graph
	id  index
	gen uint32
}

func (n Node) node() *node {
	return n.g.node(n.g.mustLookup(n))
}

// IsValid returns true if the handle refers to a live node.
func (n Node) IsValid() bool {
	if n.g == nil {
		return false
	}
	_, err := n.g.lookup(n)
	return err == nil
}

// Graph owning the node.
func (n Node) Graph() *Graph {
	return n.g
}

// Kind of the node.
func (n Node) Kind() kind.Kind {
	return n.node().kind
}

// Shape of the value represented by the node.
func (n Node) Shape() shape.Shape {
	return n.node().shape
}

// State returns the state of the simplification cache of the node.
func (n Node) State() NodeState {
	return n.node().state
}

// NumArgs returns the number of arguments owned by the node.
func (n Node) NumArgs() int {
	return len(n.node().args)
}

// Arg returns the i-th argument of the node.
func (n Node) Arg(i int) (Node, error) {
	nd := n.node()
	if i < 0 || i >= len(nd.args) {
		return Node{}, fmterr.Indexf("argument %d out of range: %s node has %d argument(s)", i, nd.kind, len(nd.args))
	}
	return n.g.handle(nd.args[i]), nil
}

// Args returns all the arguments of the node.
func (n Node) Args() []Node {
	return n.g.handles(n.node().args)
}

// NumParents returns the number of argument slots currently holding the node.
func (n Node) NumParents() int {
	return len(n.node().parents)
}

// Symbol returns the name and category of a symbol.
func (n Node) Symbol() (string, Category, bool) {
	sym, ok := n.node().value.(symbolValue)
	if !ok {
		return "", 0, false
	}
	return sym.name, sym.cat, true
}

// Rat returns the exact value of a scalar number node:
// Int, Rational, and the scalar Zero and Eye.
func (n Node) Rat() (*big.Rat, bool) {
	num, ok := n.g.numberOf(n.g.mustLookup(n))
	if !ok || num.isReal {
		return nil, false
	}
	return new(big.Rat).Set(num.exact), true
}

// Float returns the value of a scalar number node as a float.
func (n Node) Float() (float64, bool) {
	num, ok := n.g.numberOf(n.g.mustLookup(n))
	if !ok {
		return 0, false
	}
	return num.float(), true
}

// IsNumber returns true if the node is a scalar number (including scalar Zero and Eye).
func (n Node) IsNumber() bool {
	_, ok := n.g.numberOf(n.g.mustLookup(n))
	return ok
}

// Index returns the row and column of an Element node.
func (n Node) Index() (row, col int, ok bool) {
	pos, ok := n.node().value.(elementValue)
	if !ok {
		return 0, 0, false
	}
	return pos.row, pos.col, true
}

// unregister removes a back-edge from a child.
func (g *Graph) unregister(child index, e edge) {
	parents := g.nodes[child].parents
	for i, pe := range parents {
		if pe != e {
			continue
		}
		last := len(parents) - 1
		parents[i] = parents[last]
		g.nodes[child].parents = parents[:last]
		return
	}
}

// setArg stores a new child in the argument slot of a parent.
// The back-edge is moved from the previous child to the new one.
func (g *Graph) setArg(parent index, slot int, child index) {
	old := g.nodes[parent].args[slot]
	if old == child {
		return
	}
	e := edge{parent: parent, slot: slot}
	g.unregister(old, e)
	g.nodes[parent].args[slot] = child
	g.nodes[child].parents = append(g.nodes[child].parents, e)
}

// setArgs replaces all the argument slots of an n-ary node.
func (g *Graph) setArgs(parent index, args []index) {
	old := g.nodes[parent].args
	for slot, arg := range old {
		g.unregister(arg, edge{parent: parent, slot: slot})
	}
	g.nodes[parent].args = append([]index(nil), args...)
	for slot, arg := range args {
		g.nodes[arg].parents = append(g.nodes[arg].parents, edge{parent: parent, slot: slot})
	}
}

func (g *Graph) kindOf(id index) kind.Kind {
	return g.nodes[id].kind
}

func (g *Graph) shapeOf(id index) shape.Shape {
	return g.nodes[id].shape
}

func (g *Graph) argsOf(id index) []index {
	return g.nodes[id].args
}

func (g *Graph) arg(id index, i int) index {
	return g.nodes[id].args[i]
}

func (g *Graph) isScalar(id index) bool {
	return g.nodes[id].shape.IsScalar()
}
