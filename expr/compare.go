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
	"encoding/binary"
	"hash/fnv"
	"io"

	"github.com/sevoigt/pymbs-sub001/shape"
)

// compare orders two nodes of the graph.
//
// Nodes are ordered by kind, then shape, then payload, then number of
// arguments (shorter lists first), then arguments left to right.
// compare returns 0 if and only if both nodes are structurally equal.
func (g *Graph) compare(x, y index) int {
	var equal map[[2]index]bool
	return g.compareMemo(x, y, &equal)
}

// compareMemo compares two nodes, recording the pairs of operators found equal.
// Shared sub-expressions are then compared once, whatever the number of paths to them.
func (g *Graph) compareMemo(x, y index, equal *map[[2]index]bool) int {
	if x == y {
		return 0
	}
	nx, ny := &g.nodes[x], &g.nodes[y]
	if nx.kind != ny.kind {
		if nx.kind < ny.kind {
			return -1
		}
		return 1
	}
	if c := nx.shape.Compare(ny.shape); c != 0 {
		return c
	}
	if c := comparePayloads(nx.value, ny.value); c != 0 {
		return c
	}
	if len(nx.args) != len(ny.args) {
		if len(nx.args) < len(ny.args) {
			return -1
		}
		return 1
	}
	if len(nx.args) == 0 {
		return 0
	}
	key := [2]index{min(x, y), max(x, y)}
	if (*equal)[key] {
		return 0
	}
	for i, ax := range nx.args {
		if c := g.compareMemo(ax, ny.args[i], equal); c != 0 {
			return c
		}
	}
	if *equal == nil {
		*equal = make(map[[2]index]bool)
	}
	(*equal)[key] = true
	return 0
}

func (g *Graph) equal(x, y index) bool {
	return g.compare(x, y) == 0
}

// hash computes the structural hash of a node.
// Structurally equal nodes have the same hash.
func (g *Graph) hash(id index, memo map[index]uint64) uint64 {
	if h, ok := memo[id]; ok {
		return h
	}
	nd := &g.nodes[id]
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(nd.kind))
	h.Write(buf[:])
	writeShape(h, nd.shape)
	if nd.value != nil {
		nd.value.hash(h)
	}
	for _, arg := range nd.args {
		binary.LittleEndian.PutUint64(buf[:], g.hash(arg, memo))
		h.Write(buf[:])
	}
	sum := h.Sum64()
	memo[id] = sum
	return sum
}

func writeShape(w io.Writer, s shape.Shape) {
	var buf [17]byte
	buf[0] = byte(s.NDim())
	binary.LittleEndian.PutUint64(buf[1:9], uint64(s.Dim1()))
	binary.LittleEndian.PutUint64(buf[9:], uint64(s.Dim2()))
	w.Write(buf[:])
}

// Equal returns true if both nodes are structurally equal:
// same kind, same shape, same payload and equal arguments.
func (n Node) Equal(o Node) bool {
	return n.Compare(o) == 0
}

// Less returns true if n is strictly before o in the total order of expressions.
func (n Node) Less(o Node) bool {
	return n.Compare(o) < 0
}

// Compare returns -1 if n < o, 0 if n and o are structurally equal and +1 if n > o.
// Both nodes must belong to the same graph.
func (n Node) Compare(o Node) int {
	x := n.g.mustLookup(n)
	y := n.g.mustLookup(o)
	return n.g.compare(x, y)
}

// Hash returns the structural hash of the expression rooted at n.
func (n Node) Hash() uint64 {
	return n.g.hash(n.g.mustLookup(n), make(map[index]uint64))
}
