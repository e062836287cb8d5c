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

package registry

import (
	"reflect"
	"slices"
	"sync"

	"github.com/pkg/errors"

	"dirpx.dev/rfield/apis"
	uref "dirpx.dev/rfield/utils/reflect"
)

// NewEnums constructs an empty enumeration registry.
func NewEnums() apis.Enums {
	return &enums{}
}

// enums is an apis.Enums backed by sync.Map.
type enums struct {
	mu    sync.Mutex
	m     sync.Map // map[reflect.Type]*apis.Enum
	count int
}

// Ensure enums implements apis.Enums.
var _ apis.Enums = (*enums)(nil)

// Register declares the names of t's values. Re-registering the same names and
// values is a no-op.
func (r *enums) Register(t reflect.Type, names []string, values []reflect.Value) error {
	if t == nil {
		return apis.ErrNilType
	}
	if err := validateEnum(t, names, values); err != nil {
		return err
	}
	e := &apis.Enum{Type: t, Names: slices.Clone(names), Values: slices.Clone(values)}

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.m.Load(t); ok {
		if sameEnum(old.(*apis.Enum), e) {
			return nil
		}
		return errors.Wrapf(apis.ErrConflictingRegistration, "enum %s", uref.Name(t))
	}
	r.m.Store(t, e)
	r.count++
	return nil
}

func validateEnum(t reflect.Type, names []string, values []reflect.Value) error {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.String:
	default:
		return errors.Wrapf(apis.ErrNotEnum, "%s has kind %s", uref.Name(t), t.Kind())
	}
	if len(names) == 0 || len(names) != len(values) {
		return errors.Wrapf(apis.ErrNotEnum, "%s: %d names for %d values", uref.Name(t), len(names), len(values))
	}
	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		if name == "" {
			return errors.Wrapf(apis.ErrEmptyName, "enum %s value %d", uref.Name(t), i)
		}
		if _, dup := seen[name]; dup {
			return errors.Wrapf(apis.ErrConflictingRegistration, "enum %s: name %q used twice", uref.Name(t), name)
		}
		seen[name] = struct{}{}
		if !values[i].IsValid() || values[i].Type() != t {
			return errors.Wrapf(apis.ErrNotEnum, "enum %s: value %d has the wrong type", uref.Name(t), i)
		}
	}
	return nil
}

func sameEnum(a, b *apis.Enum) bool {
	if !slices.Equal(a.Names, b.Names) {
		return false
	}
	return slices.EqualFunc(a.Values, b.Values, func(x, y reflect.Value) bool { return x.Equal(y) })
}

// Lookup returns the enum registered for t.
func (r *enums) Lookup(t reflect.Type) (*apis.Enum, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := r.m.Load(t)
	if !ok {
		return nil, false
	}
	return v.(*apis.Enum), true
}

// Count returns the number of registered enum types.
func (r *enums) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registrations.
func (r *enums) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
