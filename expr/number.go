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
	"math/big"

	"github.com/sevoigt/pymbs-sub001/expr/kind"
	"github.com/sevoigt/pymbs-sub001/shape"
)

// number is the value of a scalar numerical leaf.
// Exact numbers stay exact until they are combined with a real.
type number struct {
	exact  *big.Rat
	real   float64
	isReal bool
}

var (
	ratZero   = big.NewRat(0, 1)
	ratOne    = big.NewRat(1, 1)
	ratMinus1 = big.NewRat(-1, 1)
)

func exactNumber(r *big.Rat) number {
	return number{exact: r}
}

func intNumber(i int64) number {
	return number{exact: big.NewRat(i, 1)}
}

func realNumber(f float64) number {
	return number{real: f, isReal: true}
}

func (x number) float() float64 {
	if x.isReal {
		return x.real
	}
	f, _ := x.exact.Float64()
	return f
}

func (x number) isZero() bool {
	if x.isReal {
		return x.real == 0
	}
	return x.exact.Sign() == 0
}

func (x number) isOne() bool {
	if x.isReal {
		return x.real == 1
	}
	return x.exact.Cmp(ratOne) == 0
}

func (x number) isMinusOne() bool {
	if x.isReal {
		return x.real == -1
	}
	return x.exact.Cmp(ratMinus1) == 0
}

func (x number) sign() int {
	if x.isReal {
		switch {
		case x.real > 0:
			return 1
		case x.real < 0:
			return -1
		}
		return 0
	}
	return x.exact.Sign()
}

// integer returns the value of the number if it is an exact integer fitting in an int64.
func (x number) integer() (int64, bool) {
	if x.isReal || !x.exact.IsInt() || !x.exact.Num().IsInt64() {
		return 0, false
	}
	return x.exact.Num().Int64(), true
}

func addNumbers(x, y number) number {
	if x.isReal || y.isReal {
		return realNumber(x.float() + y.float())
	}
	return exactNumber(new(big.Rat).Add(x.exact, y.exact))
}

func mulNumbers(x, y number) number {
	if x.isReal || y.isReal {
		return realNumber(x.float() * y.float())
	}
	return exactNumber(new(big.Rat).Mul(x.exact, y.exact))
}

func negNumber(x number) number {
	if x.isReal {
		return realNumber(-x.real)
	}
	return exactNumber(new(big.Rat).Neg(x.exact))
}

func absNumber(x number) number {
	if x.isReal {
		return realNumber(math.Abs(x.real))
	}
	return exactNumber(new(big.Rat).Abs(x.exact))
}

// maxExactExponent bounds the exponents folded exactly.
const maxExactExponent = 1 << 10

// powNumbers returns x^y if it can be represented by a number.
func powNumbers(x, y number) (number, bool) {
	if x.isReal || y.isReal {
		r := math.Pow(x.float(), y.float())
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return number{}, false
		}
		return realNumber(r), true
	}
	e, ok := y.integer()
	if !ok || e > maxExactExponent || e < -maxExactExponent {
		return number{}, false
	}
	base := x.exact
	if e < 0 {
		if base.Sign() == 0 {
			return number{}, false
		}
		base = new(big.Rat).Inv(base)
		e = -e
	}
	num := new(big.Int).Exp(base.Num(), big.NewInt(e), nil)
	den := new(big.Int).Exp(base.Denom(), big.NewInt(e), nil)
	return exactNumber(new(big.Rat).SetFrac(num, den)), true
}

// numberOf returns the value of a scalar numerical node.
func (g *Graph) numberOf(id index) (number, bool) {
	nd := &g.nodes[id]
	if !nd.shape.IsScalar() {
		return number{}, false
	}
	switch nd.kind {
	case kind.Zero:
		return exactNumber(ratZero), true
	case kind.Eye:
		return exactNumber(ratOne), true
	case kind.Int, kind.Rational:
		return exactNumber(nd.value.(exactValue).val), true
	case kind.Real:
		return realNumber(nd.value.(realValue).val), true
	}
	return number{}, false
}

// newNumber returns the canonical node of a number:
// zero and one map to the Zero and Eye scalar constants.
func (g *Graph) newNumber(x number) index {
	if x.isZero() {
		return g.zero(shape.Scalar())
	}
	if x.isOne() {
		return g.eye(shape.Scalar())
	}
	if x.isReal {
		return g.alloc(kind.Real, shape.Scalar(), realValue{val: x.real}, nil)
	}
	return g.newExact(x.exact)
}

func (g *Graph) newExact(r *big.Rat) index {
	switch {
	case r.Sign() == 0:
		return g.zero(shape.Scalar())
	case r.Cmp(ratOne) == 0:
		return g.one()
	}
	val := new(big.Rat).Set(r)
	k := kind.Rational
	if val.IsInt() {
		k = kind.Int
	}
	return g.alloc(k, shape.Scalar(), exactValue{val: val}, nil)
}

func (g *Graph) newInt(i int64) index {
	return g.newExact(big.NewRat(i, 1))
}
