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
	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/shape"
)

func (g *Graph) simplifyPow(id index) index {
	s := g.shapeOf(id)
	base, exp := g.arg(id, 0), g.arg(id, 1)
	e, expIsNumber := g.numberOf(exp)
	if expIsNumber {
		switch {
		case e.isZero():
			return g.eye(s)
		case e.isOne():
			return base
		}
	}
	switch g.kindOf(base) {
	case kind.Zero:
		if expIsNumber && e.sign() > 0 {
			return base
		}
	case kind.Eye:
		return base
	case kind.Pow:
		inner := g.arg(base, 0)
		prod := g.simplify(g.productOf(shape.Scalar(), g.arg(base, 1), exp))
		return g.powOf(inner, prod)
	case kind.Neg:
		if !expIsNumber {
			break
		}
		i, ok := e.integer()
		if !ok {
			break
		}
		p := g.powOf(g.arg(base, 0), exp)
		if i%2 == 0 {
			return p
		}
		return g.op(kind.Neg, nil, p)
	}
	if b, ok := g.numberOf(base); ok && expIsNumber {
		if r, ok := powNumbers(b, e); ok {
			return g.newNumber(r)
		}
	}
	return id
}
