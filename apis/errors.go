/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import (
	"fmt"

	"github.com/pkg/errors"

	"dirpx.dev/rfield/jsonx"
)

var (
	// ErrNoHandler means no operation table exists for a (capability, shape) pair.
	ErrNoHandler = errors.New("rfield: no operation table for shape")
	// ErrBadOps means a resolved operation table does not implement the capability contract.
	ErrBadOps = errors.New("rfield: operation table does not implement capability")
	// ErrNoFieldTable means a struct type declares no field table for a capability.
	ErrNoFieldTable = errors.New("rfield: no field table declared")
	// ErrInvalidTarget means a facade was called with a value it cannot walk.
	ErrInvalidTarget = errors.New("rfield: invalid target value")

	// ErrKindMismatch means an input node has the wrong JSON kind for the shape.
	ErrKindMismatch = errors.New("rfield: unexpected JSON kind")
	// ErrMissingField means an input object lacks a declared field.
	ErrMissingField = errors.New("rfield: missing declared field")
	// ErrNumberRange means a number does not fit the field's Go type.
	ErrNumberRange = errors.New("rfield: number out of range")
	// ErrLengthMismatch means an input array does not match a fixed array length.
	ErrLengthMismatch = errors.New("rfield: array length mismatch")
	// ErrUnknownEnumName means an input enum name is not registered.
	ErrUnknownEnumName = errors.New("rfield: unknown enum name")
	// ErrUnknownEnumValue means a value has no registered enum name.
	ErrUnknownEnumValue = errors.New("rfield: unregistered enum value")
	// ErrUnknownTag means a polymorphic tag has no registered factory.
	ErrUnknownTag = errors.New("rfield: unknown subclass tag")
	// ErrUnregisteredSubclass means a polymorphic value's concrete type has no tag.
	ErrUnregisteredSubclass = errors.New("rfield: unregistered subclass")

	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("rfield: nil reflect.Type provided")
	// ErrEmptyName is returned when an empty tag or name is provided.
	ErrEmptyName = errors.New("rfield: empty name provided")
	// ErrConflictingRegistration indicates an attempt to re-register with different data.
	ErrConflictingRegistration = errors.New("rfield: conflicting registration")
	// ErrNotSubclass means a subclass does not implement its interface base.
	ErrNotSubclass = errors.New("rfield: not a subclass of base")
	// ErrNotEnum means a type cannot be registered as an enumeration.
	ErrNotEnum = errors.New("rfield: not an enumeration type")
	// ErrNilFactory is returned when a subclass is registered without a constructor.
	ErrNilFactory = errors.New("rfield: nil subclass factory")
)

// KindError reports an input node of the wrong JSON kind.
type KindError struct {
	Expected []jsonx.Kind
	Actual   jsonx.Kind
}

func (e *KindError) Error() string {
	exp := ""
	for i, k := range e.Expected {
		if i > 0 {
			exp += " or "
		}
		exp += k.String()
	}
	return fmt.Sprintf("expected %s, got %s", exp, e.Actual)
}

// Is makes KindError match ErrKindMismatch.
func (e *KindError) Is(target error) bool { return target == ErrKindMismatch }

// ExpectKind returns a *KindError unless n has one of the expected kinds.
func ExpectKind(n *jsonx.Node, expected ...jsonx.Kind) error {
	k := n.Kind()
	for _, e := range expected {
		if k == e {
			return nil
		}
	}
	return &KindError{Expected: expected, Actual: k}
}
