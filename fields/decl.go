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

package fields

import (
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/rfield/apis"
)

// Option attaches declaration-time metadata to a field.
type Option func(m apis.Meta)

// With sets a single metadata key.
func With(key apis.MetaKey, value any) Option {
	return func(m apis.Meta) { m[key] = value }
}

// Decl collects the field declarations of T for one capability.
type Decl[T any] struct {
	cap    apis.Capability
	fields []apis.Field
	names  map[string]struct{}
	base   *baseRef
}

// baseRef is the single declared base of a type.
type baseRef struct {
	typ reflect.Type
	get func(obj reflect.Value) reflect.Value
}

// Capability returns the capability being declared.
func (d *Decl[T]) Capability() apis.Capability { return d.cap }

// Add declares field name of T. get maps an instance to the field location; it
// may point into a nested member.
func Add[T, F any](d *Decl[T], name string, get func(*T) *F, opts ...Option) {
	if name == "" {
		panic(errors.Errorf("fields: %s: empty field name", reflect.TypeFor[T]()))
	}
	if get == nil {
		panic(errors.Errorf("fields: %s.%s: nil accessor", reflect.TypeFor[T](), name))
	}
	if _, dup := d.names[name]; dup {
		panic(errors.Errorf("fields: %s: duplicate field %q", reflect.TypeFor[T](), name))
	}
	var meta apis.Meta
	if len(opts) > 0 {
		meta = apis.Meta{}
		for _, opt := range opts {
			opt(meta)
		}
	}
	d.names[name] = struct{}{}
	d.fields = append(d.fields, apis.Field{
		Name: name,
		Type: reflect.TypeFor[F](),
		Meta: meta,
		Get: func(obj reflect.Value) reflect.Value {
			return reflect.ValueOf(get(obj.Addr().Interface().(*T))).Elem()
		},
	})
}

// Embed declares B as the base of T. The base's table for the same capability
// is merged after T's own fields; entries T already declares win.
func Embed[T, B any](d *Decl[T], get func(*T) *B) {
	if d.base != nil {
		panic(errors.Errorf("fields: %s: base already declared (%s)", reflect.TypeFor[T](), d.base.typ))
	}
	if get == nil {
		panic(errors.Errorf("fields: %s: nil base accessor", reflect.TypeFor[T]()))
	}
	d.base = &baseRef{
		typ: reflect.TypeFor[B](),
		get: func(obj reflect.Value) reflect.Value {
			return reflect.ValueOf(get(obj.Addr().Interface().(*T))).Elem()
		},
	}
}

// declaration is the type-erased form of a Decl.
type declaration struct {
	typ    reflect.Type
	cap    apis.Capability
	fields []apis.Field
	base   *baseRef
}

func (d *Decl[T]) erase() *declaration {
	return &declaration{
		typ:    reflect.TypeFor[T](),
		cap:    d.cap,
		fields: d.fields,
		base:   d.base,
	}
}

// table is an immutable, merged field table.
type table struct {
	typ    reflect.Type
	cap    apis.Capability
	fields []apis.Field
	index  map[string]int
}

// Ensure table implements apis.FieldTable.
var _ apis.FieldTable = (*table)(nil)

func (t *table) Type() reflect.Type { return t.typ }
func (t *table) Capability() apis.Capability { return t.cap }
func (t *table) Fields() []apis.Field { return t.fields }
func (t *table) Lookup(name string) (apis.Field, bool) {
	i, ok := t.index[name]
	if !ok {
		return apis.Field{}, false
	}
	return t.fields[i], true
}

// merge builds a table from own fields followed by the base fields whose names
// are not taken. Base fields are re-rooted through the base accessor.
func merge(d *declaration, base apis.FieldTable) *table {
	t := &table{
		typ:    d.typ,
		cap:    d.cap,
		fields: make([]apis.Field, 0, len(d.fields)),
		index:  make(map[string]int, len(d.fields)),
	}
	for _, f := range d.fields {
		t.index[f.Name] = len(t.fields)
		t.fields = append(t.fields, f)
	}
	if base == nil {
		return t
	}
	up := d.base.get
	for _, f := range base.Fields() {
		if _, taken := t.index[f.Name]; taken {
			continue
		}
		inner := f.Get
		f.Get = func(obj reflect.Value) reflect.Value { return inner(up(obj)) }
		t.index[f.Name] = len(t.fields)
		t.fields = append(t.fields, f)
	}
	return t
}
