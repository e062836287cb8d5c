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

// Package strategy builds the operation tables of the built-in shape families.
//
// Every ops value produced here implements both apis.Codec and apis.Drawer;
// the operation table keeps one instance per capability. Composite ops never
// resolve their element ops while being built: they ask the Env when they run,
// so recursive shapes resolve without re-entering the table.
package strategy

import (
	"reflect"

	"dirpx.dev/rfield/apis"
)

// builtin reports whether cap is served by the built-in families.
func builtin(cap apis.Capability) bool {
	return cap == apis.Serialization || cap == apis.Inspector
}

// addressable returns v when it is addressable, an addressable copy otherwise.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}

// release discards everything v owns, innermost first: owned instances nested
// in declared fields, elements and map values are released before the instance
// holding them. Nil owns nothing. Owning graphs are trees; cycles are not detected.
func release(env *apis.Env, v reflect.Value) {
	if !v.IsValid() {
		return
	}
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		release(env, v.Elem())
		hook(v)
	case reflect.Interface:
		if v.IsNil() {
			return
		}
		inst := v.Elem()
		release(env, inst)
		if inst.Kind() != reflect.Pointer {
			hook(inst)
		}
	case reflect.Struct:
		tbl := ownedFields(env, v.Type())
		if tbl == nil {
			return
		}
		obj := addressable(v)
		for _, f := range tbl.Fields() {
			if owns(f.Type) {
				release(env, f.Get(obj))
			}
		}
	case reflect.Slice, reflect.Array:
		releaseElems(env, v)
	case reflect.Map:
		releaseValues(env, v)
	}
}

// hook calls the Release hook of an owned instance, if it has one.
func hook(v reflect.Value) {
	if r, ok := v.Interface().(apis.Releaser); ok {
		r.Release()
	}
}

// ownedFields returns the table through which the fields of a struct are
// walked on release: Serialization when declared, Inspector otherwise.
func ownedFields(env *apis.Env, t reflect.Type) apis.FieldTable {
	if env == nil || env.Fields == nil {
		return nil
	}
	for _, cap := range []apis.Capability{apis.Serialization, apis.Inspector} {
		if !env.Fields.Has(cap, t) {
			continue
		}
		if tbl, err := env.Fields.Table(cap, t); err == nil {
			return tbl
		}
	}
	return nil
}

// owns reports whether values of t may own an instance, directly or through
// their elements and fields.
func owns(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Struct:
		return true
	case reflect.Slice, reflect.Array, reflect.Map:
		return owns(t.Elem())
	}
	return false
}

// releaseElems releases everything owned by the elements of a slice or array.
func releaseElems(env *apis.Env, v reflect.Value) {
	if !owns(v.Type().Elem()) {
		return
	}
	for i := 0; i < v.Len(); i++ {
		release(env, v.Index(i))
	}
}

// releaseValues releases everything owned by the values of a map.
func releaseValues(env *apis.Env, v reflect.Value) {
	if v.IsNil() || !owns(v.Type().Elem()) {
		return
	}
	it := v.MapRange()
	for it.Next() {
		release(env, it.Value())
	}
}

// label returns the display label of a field.
func label(meta apis.Meta, name string) string {
	return apis.MetaValue(meta, apis.MetaLabel, name)
}
