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
	"cmp"
	"encoding/binary"
	"fmt"
	"hash"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// payload is the data stored in a node in addition to its arguments.
type payload interface {
	compare(payload) int
	hash(hash.Hash64)
	String() string
}

type (
	symbolValue struct {
		name string
		cat  Category
	}

	exactValue struct {
		val *big.Rat
	}

	realValue struct {
		val float64
	}

	elementValue struct {
		row, col int
	}
)

func comparePayloads(x, y payload) int {
	switch {
	case x == nil && y == nil:
		return 0
	case x == nil:
		return -1
	case y == nil:
		return 1
	}
	return x.compare(y)
}

// Symbols are identified by their name. The category is metadata.
func (s symbolValue) compare(o payload) int {
	return strings.Compare(s.name, o.(symbolValue).name)
}

func (s symbolValue) hash(h hash.Hash64) {
	h.Write([]byte(s.name))
}

func (s symbolValue) String() string {
	return s.name
}

func (v exactValue) compare(o payload) int {
	return v.val.Cmp(o.(exactValue).val)
}

func (v exactValue) hash(h hash.Hash64) {
	h.Write([]byte(v.val.RatString()))
}

func (v exactValue) String() string {
	return v.val.RatString()
}

func (v realValue) compare(o payload) int {
	return cmp.Compare(v.val, o.(realValue).val)
}

func (v realValue) hash(h hash.Hash64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.val))
	h.Write(buf[:])
}

func (v realValue) String() string {
	return strconv.FormatFloat(v.val, 'g', -1, 64)
}

func (v elementValue) compare(o payload) int {
	oe := o.(elementValue)
	if c := cmp.Compare(v.row, oe.row); c != 0 {
		return c
	}
	return cmp.Compare(v.col, oe.col)
}

func (v elementValue) hash(h hash.Hash64) {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(v.row))
	binary.LittleEndian.PutUint64(buf[8:], uint64(v.col))
	h.Write(buf[:])
}

func (v elementValue) String() string {
	return fmt.Sprintf("%d %d", v.row, v.col)
}
