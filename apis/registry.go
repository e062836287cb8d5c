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

import "reflect"

// Factory constructs a new heap-owned instance of a registered subclass. The
// returned value has the subclass's concrete type.
type Factory func() reflect.Value

// SubclassEntry is a single (base, tag, subclass) association.
type SubclassEntry struct {
	// Base is the polymorphic interface type.
	Base reflect.Type
	// Tag is the stable wire name of the subclass.
	Tag string
	// Concrete is the concrete subclass type (usually a pointer type).
	Concrete reflect.Type
	// New constructs an instance of Concrete.
	New Factory
}

// Subclasses maps polymorphic base types to their registered subclasses.
// It is populated during initialization and read-only afterwards.
type Subclasses interface {
	// Register associates tag with a subclass of base. Idempotent for the
	// same triple; conflicting registrations fail.
	Register(base reflect.Type, tag string, concrete reflect.Type, factory Factory) error
	// Has reports whether base has at least one registered subclass.
	Has(base reflect.Type) bool
	// Factory returns the constructor of tag, or ErrUnknownTag.
	Factory(base reflect.Type, tag string) (Factory, error)
	// Tag returns the tag of a concrete subclass, or ErrUnregisteredSubclass.
	Tag(base, concrete reflect.Type) (string, error)
	// Entries returns base's subclasses in registration order.
	Entries(base reflect.Type) []SubclassEntry
	// Count returns the number of registered subclasses across all bases.
	Count() int
	// Reset clears all registrations.
	Reset()
}

// Enum describes a registered enumeration: its symbolic names and the values
// they stand for, in registration order.
type Enum struct {
	Type   reflect.Type
	Names  []string
	Values []reflect.Value
}

// NameOf returns the symbolic name of v.
func (e *Enum) NameOf(v reflect.Value) (string, bool) {
	for i, ev := range e.Values {
		if ev.Equal(v) {
			return e.Names[i], true
		}
	}
	return "", false
}

// ValueOf returns the value named name.
func (e *Enum) ValueOf(name string) (reflect.Value, bool) {
	for i, n := range e.Names {
		if n == name {
			return e.Values[i], true
		}
	}
	return reflect.Value{}, false
}

// Enums maps enumeration types to their symbolic names.
type Enums interface {
	// Register declares the names and values of enum type t.
	Register(t reflect.Type, names []string, values []reflect.Value) error
	// Lookup returns the enum registered for t.
	Lookup(t reflect.Type) (*Enum, bool)
	// Count returns the number of registered enum types.
	Count() int
	// Reset clears all registrations.
	Reset()
}

// OpsEntry is a single explicitly registered operation table.
type OpsEntry struct {
	Capability Capability
	Type       reflect.Type
	Ops        any
}

// OpsRegistry holds operation tables registered explicitly by third-party code
// for shapes the built-in strategies do not cover (or should not handle).
type OpsRegistry interface {
	// Register binds ops to (cap, t). Idempotent for the same ops value.
	Register(cap Capability, t reflect.Type, ops any) error
	// Lookup returns the ops bound to (cap, t).
	Lookup(cap Capability, t reflect.Type) (any, bool)
	// Entries returns a snapshot (order is unspecified).
	Entries() []OpsEntry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}
