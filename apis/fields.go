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
	"reflect"
)

// Field is one named entry of a field table.
type Field struct {
	// Name is the declared field name; it is also the JSON member name.
	Name string
	// Type is the shape of the field's content.
	Type reflect.Type
	// Meta is the field's declared metadata, shared by all instances.
	Meta Meta
	// Get maps an addressable value of the declaring type to the
	// addressable field location inside it.
	Get func(obj reflect.Value) reflect.Value
}

// FieldTable is the immutable, ordered field list of one type for one capability.
type FieldTable interface {
	// Type returns the declaring type.
	Type() reflect.Type
	// Capability returns the capability the table was declared for.
	Capability() Capability
	// Fields returns the fields in table order. The slice must not be modified.
	Fields() []Field
	// Lookup returns the field with the given name.
	Lookup(name string) (Field, bool)
}

// FieldTables resolves field tables, building each at most once.
type FieldTables interface {
	// Table returns the table of t for cap, or ErrNoFieldTable.
	Table(cap Capability, t reflect.Type) (FieldTable, error)
	// Has reports whether t declares a table for cap.
	Has(cap Capability, t reflect.Type) bool
}

// Descriptor is a field resolved against one instance: where the field lives,
// the operation table for its shape, and its declared metadata.
type Descriptor struct {
	Name  string
	Value reflect.Value
	Ops   any
	Meta  Meta
}
