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
	"cmp"
	"reflect"
	"slices"
	"sync"

	"github.com/pkg/errors"

	"dirpx.dev/rfield/apis"
	uref "dirpx.dev/rfield/utils/reflect"
)

// key identifies a table.
type key struct {
	cap apis.Capability
	typ reflect.Type
}

// Registry stores declarations and lazily merged tables. It is safe for
// concurrent use.
type Registry struct {
	// mu guards decls and serializes table construction.
	mu    sync.Mutex
	decls map[key]*declaration
	// tables maps key to *table; read without locking once built.
	tables sync.Map
}

// Ensure Registry implements apis.FieldTables.
var _ apis.FieldTables = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decls: make(map[key]*declaration)}
}

// defaultRegistry receives declarations made with Declare and DeclareAll.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// Declare records the fields of T for cap in the process-wide registry.
// Declaring the same (T, cap) twice panics.
func Declare[T any](cap apis.Capability, fn func(d *Decl[T])) {
	DeclareIn(defaultRegistry, cap, fn)
}

// DeclareAll records the same field list for serialization and the inspector.
func DeclareAll[T any](fn func(d *Decl[T])) {
	DeclareIn(defaultRegistry, apis.Serialization, fn)
	DeclareIn(defaultRegistry, apis.Inspector, fn)
}

// DeclareIn is Declare against an explicit registry.
func DeclareIn[T any](r *Registry, cap apis.Capability, fn func(d *Decl[T])) {
	d := &Decl[T]{cap: cap, names: map[string]struct{}{}}
	if fn != nil {
		fn(d)
	}
	decl := d.erase()
	if decl.typ.Kind() != reflect.Struct {
		panic(errors.Errorf("fields: %s: only struct types declare field tables", decl.typ))
	}
	if d.base != nil && d.base.typ == decl.typ {
		panic(errors.Errorf("fields: %s: type embeds itself", decl.typ))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{cap: cap, typ: decl.typ}
	if _, dup := r.decls[k]; dup {
		panic(errors.Errorf("fields: %s: %s table declared twice", decl.typ, cap))
	}
	r.decls[k] = decl
}

// Has reports whether t declares a table for cap.
func (r *Registry) Has(cap apis.Capability, t reflect.Type) bool {
	if _, ok := r.tables.Load(key{cap: cap, typ: t}); ok {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.decls[key{cap: cap, typ: t}]
	return ok
}

// Table returns the merged table of t for cap, building it on first use.
func (r *Registry) Table(cap apis.Capability, t reflect.Type) (apis.FieldTable, error) {
	if t == nil {
		return nil, apis.ErrNilType
	}
	k := key{cap: cap, typ: t}
	if v, ok := r.tables.Load(k); ok {
		return v.(*table), nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.build(k, 0)
}

// maxDepth bounds base chains; a longer chain is a cycle.
const maxDepth = 64

// build merges the table for k. r.mu must be held.
func (r *Registry) build(k key, depth int) (*table, error) {
	if v, ok := r.tables.Load(k); ok {
		return v.(*table), nil
	}
	d, ok := r.decls[k]
	if !ok {
		return nil, errors.Wrapf(apis.ErrNoFieldTable, "%s: %s", k.cap, uref.Name(k.typ))
	}
	if depth > maxDepth {
		return nil, errors.Errorf("fields: %s: base chain too deep", uref.Name(k.typ))
	}
	var base apis.FieldTable
	if d.base != nil {
		bt, err := r.build(key{cap: k.cap, typ: d.base.typ}, depth+1)
		if err != nil {
			return nil, errors.WithMessagef(err, "base of %s", uref.Name(k.typ))
		}
		base = bt
	}
	t := merge(d, base)
	r.tables.Store(k, t)
	return t, nil
}

// Types returns the types declaring a table for cap, sorted by name.
func (r *Registry) Types(cap apis.Capability) []reflect.Type {
	r.mu.Lock()
	out := make([]reflect.Type, 0, len(r.decls))
	for k := range r.decls {
		if k.cap == cap {
			out = append(out, k.typ)
		}
	}
	r.mu.Unlock()
	slices.SortFunc(out, func(a, b reflect.Type) int { return cmp.Compare(uref.Name(a), uref.Name(b)) })
	return out
}
