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

package reflect

import (
	"errors"
	"path"
	"reflect"
	"strings"
	"sync"
)

// Family is the structural category of a Go type as far as field tables are
// concerned. Enumerations are not a family here: they are decided by the enum
// registry, not by reflection.
type Family uint8

const (
	Unknown Family = iota
	Scalar
	Pointer
	Interface
	Sequence
	Array
	Map
	Struct
)

var familyNames = [...]string{
	Unknown:   "unknown",
	Scalar:    "scalar",
	Pointer:   "pointer",
	Interface: "polymorphic",
	Sequence:  "sequence",
	Array:     "array",
	Map:       "map",
	Struct:    "object",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return familyNames[Unknown]
}

// Classify returns the family of t. Maps qualify only with string-kind keys.
func Classify(t reflect.Type) Family {
	if t == nil {
		return Unknown
	}
	switch k := t.Kind(); {
	case IsScalarKind(k):
		return Scalar
	case k == reflect.Pointer:
		return Pointer
	case k == reflect.Interface:
		return Interface
	case k == reflect.Slice:
		return Sequence
	case k == reflect.Array:
		return Array
	case k == reflect.Map:
		if t.Key().Kind() == reflect.String {
			return Map
		}
	case k == reflect.Struct:
		return Struct
	}
	return Unknown
}

// IsScalarKind reports whether k is a bool, integer, float or string kind.
func IsScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// MaxUnwrap limits how deep pointers and containers are unwrapped.
const MaxUnwrap = 8

// ErrTypeNotNamed indicates that a type (after unwrapping containers) does not
// contain a named type.
var ErrTypeNotNamed = errors.New("reflect: type has no named element")

// Normalize unwraps pointers, slices, arrays and map values and returns the
// nearest named inner type.
func Normalize(t reflect.Type) (reflect.Type, error) {
	for i := 0; t != nil && i < MaxUnwrap; i++ {
		if t.Name() != "" {
			return t, nil
		}
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
			t = t.Elem()
		default:
			return nil, ErrTypeNotNamed
		}
	}
	if t != nil && t.Name() != "" {
		return t, nil
	}
	return nil, ErrTypeNotNamed
}

// nameCache memoizes Name results.
var nameCache sync.Map // key: reflect.Type, val: string

// Name returns a short diagnostic name: "pkg.Type" for named types (type
// parameters stripped), the Go syntax for unnamed ones. It is meant for
// messages and documents, never for wire formats.
func Name(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if v, ok := nameCache.Load(t); ok {
		return v.(string)
	}
	var name string
	switch {
	case t.Name() == "":
		name = t.String()
	case t.PkgPath() == "":
		name = t.Name()
	default:
		name = path.Base(t.PkgPath()) + "." + stripTypeParams(t.Name())
	}
	nameCache.Store(t, name)
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
