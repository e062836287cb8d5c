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

package strategy

import (
	"reflect"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/jsonx"
	"dirpx.dev/rfield/ui"
)

// NewMap creates an apis.Strategy for maps keyed by a string kind.
func NewMap() apis.Strategy {
	return mapStrategy{}
}

type mapStrategy struct{}

// Ensure mapStrategy implements apis.Strategy.
var _ apis.Strategy = mapStrategy{}

func (mapStrategy) TryBuild(cap apis.Capability, t reflect.Type, _ *apis.Env) (any, bool) {
	if !builtin(cap) || t.Kind() != reflect.Map || t.Key().Kind() != reflect.String {
		return nil, false
	}
	return &mapOps{typ: t}, true
}

// mapOps handles map[K]T with a string-kind K. Entries are written in key
// order so that output is deterministic.
type mapOps struct {
	typ reflect.Type
}

// sortedKeys returns the keys of v in ascending string order.
func sortedKeys(v reflect.Value) []reflect.Value {
	keys := v.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) })
	return keys
}

func (o *mapOps) key(name string) reflect.Value {
	return reflect.ValueOf(name).Convert(o.typ.Key())
}

func (o *mapOps) Encode(env *apis.Env, w *jsonx.Writer, v reflect.Value) error {
	c, err := env.Codec(o.typ.Elem())
	if err != nil {
		return err
	}
	w.StartObject()
	for _, k := range sortedKeys(v) {
		w.Key(k.String())
		if err := c.Encode(env, w, addressable(v.MapIndex(k))); err != nil {
			return errors.WithMessagef(err, "key %q", k.String())
		}
	}
	w.EndObject()
	return nil
}

// Decode clears the map, releasing owned values, then inserts every input
// member. Values are decoded into a temporary first; a repeated key replaces
// the earlier value.
func (o *mapOps) Decode(env *apis.Env, n *jsonx.Node, v reflect.Value) error {
	if err := apis.ExpectKind(n, jsonx.Object); err != nil {
		return err
	}
	elem := o.typ.Elem()
	c, err := env.Codec(elem)
	if err != nil {
		return err
	}
	releaseValues(env, v)
	if v.IsNil() {
		v.Set(reflect.MakeMapWithSize(o.typ, n.Len()))
	} else {
		v.Clear()
	}
	for _, m := range n.Members() {
		tmp := reflect.New(elem).Elem()
		if err := c.Decode(env, m.Value, tmp); err != nil {
			release(env, tmp)
			return errors.WithMessagef(err, "key %q", m.Name)
		}
		k := o.key(m.Name)
		if old := v.MapIndex(k); old.IsValid() {
			release(env, old)
		}
		v.SetMapIndex(k, tmp)
	}
	return nil
}

func (o *mapOps) Draw(env *apis.Env, s ui.Surface, label string, meta apis.Meta, v reflect.Value) error {
	elem := o.typ.Elem()
	var err error
	ui.WithID(s, label, func() {
		ui.Tree(s, label, func() {
			if s.MenuItem("clear") && !v.IsNil() {
				releaseValues(env, v)
				v.Clear()
			}
		}, func() {
			d, derr := env.Drawer(elem)
			if derr != nil {
				err = derr
				return
			}
			for _, k := range sortedKeys(v) {
				name := k.String()
				// Map values are not addressable: edit a copy and store it back.
				tmp := addressable(v.MapIndex(k))
				if err = d.Draw(env, s, name, meta, tmp); err != nil {
					err = errors.WithMessagef(err, "key %q", name)
					return
				}
				s.SameLine()
				if s.Button("erase##" + name) {
					release(env, tmp)
					v.SetMapIndex(k, reflect.Value{})
					continue
				}
				v.SetMapIndex(k, tmp)
			}

			buf := s.TextBuffer("key")
			s.InputText("##key", buf)
			s.SameLine()
			if s.Button("add") && *buf != "" {
				if v.IsNil() {
					v.Set(reflect.MakeMap(o.typ))
				}
				if k := o.key(*buf); !v.MapIndex(k).IsValid() {
					v.SetMapIndex(k, reflect.Zero(elem))
				}
				*buf = ""
			}
		})
	})
	return err
}
