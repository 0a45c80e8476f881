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

// Package kind defines the closed set of node kinds of the symbolic engine.
package kind

// Kind of a node.
//
// The order of the constants defines the first criteria of the total order
// on nodes. Numbers come first so that numerical coefficients sort to the
// front of commutative argument lists.
type Kind uint

const (
	// Invalid kind.
	Invalid Kind = iota

	// Zero is the zero of any shape.
	Zero
	// Eye is the scalar one or a square identity matrix.
	Eye
	// Int is an exact integer.
	Int
	// Rational is an exact rational number with a denominator > 1.
	Rational
	// Real is a floating point number.
	Real
	// Symbol is a named unknown.
	Symbol

	// Neg is -x.
	Neg
	// Transpose swaps rows and columns.
	Transpose
	// Der is the time derivative of its argument.
	Der
	// Element is a single element of a vector or matrix.
	Element
	// Scalar converts a one element value to a scalar.
	Scalar
	// Skew is the skew-symmetric matrix of a 3-vector.
	Skew
	// Inverse of a square matrix.
	Inverse
	Abs
	Sign
	Sin
	Cos
	Tan
	Asin
	Acos
	Atan

	// Pow is base^exponent.
	Pow
	// Atan2 is atan2(y, x).
	Atan2

	// Add is the sum of its arguments.
	Add
	// Mul is the product of its arguments.
	Mul
	// Matrix is a dense matrix. Its arguments are its elements in row-major order.
	Matrix

	// Max value for a Kind constant.
	Max
)

// Arity classifies kinds by the number of arguments they own.
type Arity int

const (
	// Leaf nodes own no argument.
	Leaf Arity = iota
	// Unary nodes own exactly one argument.
	Unary
	// Binary nodes own exactly two arguments.
	Binary
	// Nary nodes own an ordered list of arguments.
	Nary
)

func (a Arity) String() string {
	switch a {
	case Leaf:
		return "leaf"
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	case Nary:
		return "n-ary"
	}
	return "invalid"
}

// Arity returns the arity class of the kind.
func (k Kind) Arity() Arity {
	switch {
	case k >= Zero && k <= Symbol:
		return Leaf
	case k >= Neg && k <= Atan:
		return Unary
	case k == Pow || k == Atan2:
		return Binary
	case k >= Add && k <= Matrix:
		return Nary
	}
	return -1
}

// IsValid returns true if the kind is a known kind.
func (k Kind) IsValid() bool {
	return k > Invalid && k < Max
}

// IsNumber returns true for leaves representing a number.
func (k Kind) IsNumber() bool {
	switch k {
	case Int, Rational, Real:
		return true
	}
	return false
}

// IsFunction returns true for scalar functions printed as calls, such as sin(x).
func (k Kind) IsFunction() bool {
	switch k {
	case Abs, Sign, Sin, Cos, Tan, Asin, Acos, Atan, Atan2:
		return true
	}
	return false
}

// IsOdd returns true for scalar functions f such that f(-x) = -f(x).
func (k Kind) IsOdd() bool {
	switch k {
	case Sign, Sin, Tan, Asin, Atan:
		return true
	}
	return false
}

// IsEven returns true for scalar functions f such that f(-x) = f(x).
func (k Kind) IsEven() bool {
	switch k {
	case Abs, Cos:
		return true
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case Zero:
		return "zero"
	case Eye:
		return "eye"
	case Int:
		return "int"
	case Rational:
		return "rational"
	case Real:
		return "real"
	case Symbol:
		return "symbol"
	case Neg:
		return "neg"
	case Transpose:
		return "transpose"
	case Der:
		return "der"
	case Element:
		return "element"
	case Scalar:
		return "scalar"
	case Skew:
		return "skew"
	case Inverse:
		return "inverse"
	case Abs:
		return "abs"
	case Sign:
		return "sign"
	case Sin:
		return "sin"
	case Cos:
		return "cos"
	case Tan:
		return "tan"
	case Asin:
		return "asin"
	case Acos:
		return "acos"
	case Atan:
		return "atan"
	case Pow:
		return "pow"
	case Atan2:
		return "atan2"
	case Add:
		return "add"
	case Mul:
		return "mul"
	case Matrix:
		return "matrix"
	}
	return "invalid"
}

// FromString returns the kind given its name or Invalid if the name is unknown.
func FromString(name string) Kind {
	for k := Zero; k < Max; k++ {
		if k.String() == name {
			return k
		}
	}
	return Invalid
}
