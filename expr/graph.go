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

// Package expr implements the symbolic expression engine: a graph of
// scalar, vector and matrix expressions that can be simplified,
// differentiated, substituted and solved.
//
// All nodes live in an arena owned by a Graph and are addressed by Node
// handles. A node owns its arguments through argument slots and records,
// for each slot holding it, a back-edge to the parent. Back-edges do not keep
// parents alive: nodes are freed by Graph.Collect when they are not reachable
// from a root registered with Graph.Keep.
//
// A Graph is not safe for concurrent use.
package expr

import (
	"log/slog"
	"slices"

	"github.com/sevoigt/pymbs-sub001/base/uname"
	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/fmterr"
	"github.com/sevoigt/pymbs-sub001/shape"
)

type (
	// index of a node in the arena.
	index int32

	// edge is a back-edge from a child to the argument slot of a parent holding the child.
	edge struct {
		parent index
		slot   int
	}

	node struct {
		kind    kind.Kind
		shape   shape.Shape
		gen     uint32
		live    bool
		state   NodeState
		args    []index
		parents []edge
		value   payload
	}

	// Graph owns all the nodes of a set of expressions.
	Graph struct {
		nodes []node
		free  []index
		roots map[index]int

		zeros map[shape.Shape]index
		eyes  map[shape.Shape]index

		unames   *uname.Unique
		tempName string
		logger   *slog.Logger
	}

	// Option configures a graph.
	Option func(*Graph)
)

// NodeState is the state of the simplification cache of a node.
type NodeState int

const (
	// Raw nodes have not been simplified since they have been built or modified.
	Raw NodeState = iota
	// Simplified nodes are in canonical form.
	Simplified
)

func (s NodeState) String() string {
	if s == Simplified {
		return "simplified"
	}
	return "raw"
}

// WithLogger sets the logger used to report graph mutations at the debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

// WithTempName sets the root of the names of the temporary symbols
// introduced when solving for a compound expression.
func WithTempName(root string) Option {
	return func(g *Graph) {
		g.tempName = root
	}
}

// NewGraph returns a new empty graph.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		roots:    make(map[index]int),
		zeros:    make(map[shape.Shape]index),
		eyes:     make(map[shape.Shape]index),
		unames:   uname.New(),
		tempName: "tmp",
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Graph) alloc(k kind.Kind, s shape.Shape, value payload, args []index) index {
	var id index
	if len(g.free) > 0 {
		id = g.free[len(g.free)-1]
		g.free = g.free[:len(g.free)-1]
		g.nodes[id] = node{gen: g.nodes[id].gen}
	} else {
		id = index(len(g.nodes))
		g.nodes = append(g.nodes, node{gen: 1})
	}
	nd := &g.nodes[id]
	nd.live = true
	nd.kind = k
	nd.shape = s
	nd.value = value
	nd.args = slices.Clone(args)
	if k.Arity() == kind.Leaf {
		nd.state = Simplified
	}
	for slot, arg := range args {
		g.nodes[arg].parents = append(g.nodes[arg].parents, edge{parent: id, slot: slot})
	}
	return id
}

// node returns the node given its index.
// The pointer is invalidated by the next allocation.
func (g *Graph) node(id index) *node {
	return &g.nodes[id]
}

func (g *Graph) handle(id index) Node {
	return Node{g: g, id: id, gen: g.nodes[id].gen}
}

func (g *Graph) handles(ids []index) []Node {
	ns := make([]Node, len(ids))
	for i, id := range ids {
		ns[i] = g.handle(id)
	}
	return ns
}

// lookup returns the index of a node handle or an internal error if the handle
// does not belong to the graph or has been collected.
func (g *Graph) lookup(n Node) (index, error) {
	if n.g == nil {
		return 0, fmterr.Internalf("invalid node")
	}
	if n.g != g {
		return 0, fmterr.Internalf("node %d belongs to another graph", n.id)
	}
	if int(n.id) >= len(g.nodes) {
		return 0, fmterr.Internalf("node %d out of the graph", n.id)
	}
	nd := &g.nodes[n.id]
	if !nd.live || nd.gen != n.gen {
		return 0, fmterr.Internalf("node %d has been collected", n.id)
	}
	return n.id, nil
}

func (g *Graph) lookupAll(ns []Node) ([]index, error) {
	ids := make([]index, len(ns))
	for i, n := range ns {
		id, err := g.lookup(n)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// mustLookup returns the index of a node and panics if the handle is not valid.
func (g *Graph) mustLookup(n Node) index {
	id, err := g.lookup(n)
	if err != nil {
		panic(err)
	}
	return id
}

// Len returns the number of live nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes) - len(g.free)
}

// Keep registers a node as a root.
// Roots, and everything reachable from them, survive Collect.
// A node can be kept several times: it remains a root until it has been
// released as many times.
func (g *Graph) Keep(n Node) error {
	id, err := g.lookup(n)
	if err != nil {
		return err
	}
	g.roots[id]++
	return nil
}

// Release unregisters a root.
func (g *Graph) Release(n Node) error {
	id, err := g.lookup(n)
	if err != nil {
		return err
	}
	count, ok := g.roots[id]
	if !ok {
		return fmterr.Internalf("node %s is not a root", n)
	}
	if count <= 1 {
		delete(g.roots, id)
	} else {
		g.roots[id] = count - 1
	}
	return nil
}

// Roots returns all the roots of the graph, sorted by the total order on nodes.
func (g *Graph) Roots() []Node {
	ids := make([]index, 0, len(g.roots))
	for id := range g.roots {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, g.compare)
	return g.handles(ids)
}

// SimplifyRoots simplifies every root and replaces it by its simplified form.
func (g *Graph) SimplifyRoots() {
	ids := make([]index, 0, len(g.roots))
	for id := range g.roots {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		simplified := g.simplify(id)
		if simplified == id {
			continue
		}
		g.moveRoot(id, simplified)
	}
}

func (g *Graph) moveRoot(from, to index) {
	count, ok := g.roots[from]
	if !ok {
		return
	}
	delete(g.roots, from)
	g.roots[to] += count
}

// Collect frees every node that is not reachable from a root
// or from the zero and identity constants.
// Handles to freed nodes become invalid.
// Returns the number of freed nodes.
func (g *Graph) Collect() int {
	marked := make([]bool, len(g.nodes))
	var stack []index
	for id := range g.roots {
		stack = append(stack, id)
	}
	for _, id := range g.zeros {
		stack = append(stack, id)
	}
	for _, id := range g.eyes {
		stack = append(stack, id)
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if marked[id] {
			continue
		}
		marked[id] = true
		stack = append(stack, g.nodes[id].args...)
	}
	freed := 0
	for i := range g.nodes {
		id := index(i)
		if !g.nodes[id].live || marked[id] {
			continue
		}
		g.release(id)
		freed++
	}
	g.logger.Debug("graph collected", "freed", freed, "live", g.Len())
	return freed
}

// release destroys the argument slots of a node and frees it.
func (g *Graph) release(id index) {
	nd := &g.nodes[id]
	for slot, arg := range nd.args {
		g.unregister(arg, edge{parent: id, slot: slot})
	}
	gen := nd.gen + 1
	g.nodes[id] = node{gen: gen}
	g.free = append(g.free, id)
}
