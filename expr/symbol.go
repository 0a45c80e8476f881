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

// Category of a symbol, assigned by the equation graph.
type Category int

const (
	// State is a generalised coordinate or velocity of the system.
	State Category = iota
	// Input is an input of the system.
	Input
	// Parameter is a value that does not change during a simulation.
	Parameter
	// Constant is a value that never changes.
	Constant
	// Sensor is a measured output.
	Sensor
	// Controller is the output of a controller.
	Controller
	// UserExpression is an expression defined by the user.
	UserExpression
	// Variable is an intermediate variable.
	Variable
)

func (c Category) String() string {
	switch c {
	case State:
		return "state"
	case Input:
		return "input"
	case Parameter:
		return "parameter"
	case Constant:
		return "constant"
	case Sensor:
		return "sensor"
	case Controller:
		return "controller"
	case UserExpression:
		return "user expression"
	case Variable:
		return "variable"
	}
	return "unknown"
}

// IsTimeInvariant returns true for categories of symbols whose time derivative is zero.
func (c Category) IsTimeInvariant() bool {
	return c == Parameter || c == Constant
}
