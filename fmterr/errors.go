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

// Package fmterr defines the errors returned by the symbolic engine.
//
// Three classes of failures exist:
//   - ShapeError: a dimension precondition failed.
//   - IndexError: an out of range row, column or argument position.
//   - InternalError: a contract between the engine and its caller has been violated.
//     This is a bug, either in the engine or in the calling code.
//
// All errors carry the stack trace of where they have been created.
// Use %+v to print it.
package fmterr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Class of an error.
type Class int

const (
	// Shape is a dimension mismatch.
	Shape Class = iota
	// Index is an out of range access.
	Index
	// Internal is a contract violation.
	Internal
)

func (c Class) String() string {
	switch c {
	case Shape:
		return "shape error"
	case Index:
		return "index error"
	case Internal:
		return "internal error"
	}
	return "unknown error"
}

// Error is an error of a given class.
type Error struct {
	class Class
	err   error
}

func newError(class Class, err error) *Error {
	return &Error{class: class, err: err}
}

// Shapef returns a new shape error.
func Shapef(format string, a ...any) error {
	return newError(Shape, errors.Errorf(format, a...))
}

// Indexf returns a new index error.
func Indexf(format string, a ...any) error {
	return newError(Index, errors.Errorf(format, a...))
}

// Internalf returns a new internal error.
func Internalf(format string, a ...any) error {
	return newError(Internal, errors.Errorf(format, a...))
}

// ToInternal marks an existing error as an internal error.
func ToInternal(err error) error {
	if err == nil {
		return nil
	}
	return newError(Internal, errors.WithStack(err))
}

// Class returns the class of the error.
func (err *Error) Class() Class {
	return err.class
}

// Error returns the error message prefixed by its class.
func (err *Error) Error() string {
	if err.class == Internal {
		return fmt.Sprintf("%s: this is a bug in the symbolic engine or its caller: %s", err.class, err.err.Error())
	}
	return fmt.Sprintf("%s: %s", err.class, err.err.Error())
}

// Unwrap returns the underlying error.
func (err *Error) Unwrap() error {
	return err.err
}

// Format the error. %+v includes the stack trace.
func (err *Error) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

func isClass(err error, class Class) bool {
	var target *Error
	if !errors.As(err, &target) {
		return false
	}
	return target.class == class
}

// IsShape returns true if err is, or wraps, a shape error.
func IsShape(err error) bool {
	return isClass(err, Shape)
}

// IsIndex returns true if err is, or wraps, an index error.
func IsIndex(err error) bool {
	return isClass(err, Index)
}

// IsInternal returns true if err is, or wraps, an internal error.
func IsInternal(err error) bool {
	return isClass(err, Internal)
}
