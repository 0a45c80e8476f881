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

	"github.com/sevoigt/pymbs-sub001/fmterr"
)

// Check verifies the consistency of the graph and returns every violation found.
//
// Every argument slot must be registered as a parent of its argument and every
// registered parent must hold the node. Simplified nodes can only have simplified
// arguments. Roots and constants must be alive.
func (g *Graph) Check() error {
	var app fmterr.Appender
	for i := range g.nodes {
		id := index(i)
		nd := &g.nodes[id]
		if !nd.live {
			continue
		}
		app.Push(fmterr.PrefixWith("node %d (%s): ", id, nd.kind))
		g.checkNode(&app, id)
		app.Pop()
	}
	for id := range g.roots {
		if !g.nodes[id].live {
			app.Appendf("root %d has been collected", id)
		}
	}
	for s, id := range g.zeros {
		if !g.nodes[id].live || g.nodes[id].shape != s {
			app.Appendf("zero constant of shape %s is invalid", s)
		}
	}
	for s, id := range g.eyes {
		if !g.nodes[id].live || g.nodes[id].shape != s {
			app.Appendf("identity constant of shape %s is invalid", s)
		}
	}
	return app.Err()
}

func (g *Graph) checkNode(app *fmterr.Appender, id index) {
	nd := &g.nodes[id]
	if err := checkArity(nd.kind, nd.shape, len(nd.args)); err != nil {
		app.Append(err)
	}
	for slot, arg := range nd.args {
		child := &g.nodes[arg]
		if !child.live {
			app.Appendf("argument %d refers to collected node %d", slot, arg)
			continue
		}
		if !g.hasParent(arg, edge{parent: id, slot: slot}) {
			app.Appendf("argument %d (node %d) does not record its parent", slot, arg)
		}
		if nd.state == Simplified && child.state != Simplified {
			app.Appendf("simplified node has a raw argument %d (node %d)", slot, arg)
		}
	}
	for _, e := range nd.parents {
		parent := &g.nodes[e.parent]
		if !parent.live {
			app.Appendf("parent %d has been collected", e.parent)
			continue
		}
		if e.slot >= len(parent.args) || parent.args[e.slot] != id {
			app.Appendf("parent %d does not hold the node in argument %d", e.parent, e.slot)
		}
	}
}

func (g *Graph) hasParent(child index, e edge) bool {
	return slices.Contains(g.nodes[child].parents, e)
}
