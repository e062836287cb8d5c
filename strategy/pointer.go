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

	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/jsonx"
	"dirpx.dev/rfield/ui"
)

// NewPointer creates an apis.Strategy for owning pointers (*T).
//
// A pointer field exclusively owns its pointee. Decoding always releases the
// current pointee and builds a fresh one; null leaves the field nil.
func NewPointer() apis.Strategy {
	return pointerStrategy{}
}

type pointerStrategy struct{}

// Ensure pointerStrategy implements apis.Strategy.
var _ apis.Strategy = pointerStrategy{}

func (pointerStrategy) TryBuild(cap apis.Capability, t reflect.Type, _ *apis.Env) (any, bool) {
	if !builtin(cap) || t.Kind() != reflect.Pointer {
		return nil, false
	}
	return &pointerOps{typ: t}, true
}

type pointerOps struct {
	typ reflect.Type
}

func (o *pointerOps) Encode(env *apis.Env, w *jsonx.Writer, v reflect.Value) error {
	if v.IsNil() {
		w.Null()
		return nil
	}
	c, err := env.Codec(o.typ.Elem())
	if err != nil {
		return err
	}
	return c.Encode(env, w, v.Elem())
}

func (o *pointerOps) Decode(env *apis.Env, n *jsonx.Node, v reflect.Value) error {
	c, err := env.Codec(o.typ.Elem())
	if err != nil {
		return err
	}
	if !v.IsNil() {
		release(env, v)
		v.SetZero()
	}
	if n.IsNull() {
		return nil
	}
	fresh := reflect.New(o.typ.Elem())
	if err := c.Decode(env, n, fresh.Elem()); err != nil {
		release(env, fresh)
		return err
	}
	v.Set(fresh)
	return nil
}

func (o *pointerOps) Draw(env *apis.Env, s ui.Surface, label string, meta apis.Meta, v reflect.Value) error {
	var err error
	ui.WithID(s, label, func() {
		if v.IsNil() {
			s.Text(label + " is null")
			ui.ContextMenu(s, "menu", func() {
				if s.MenuItem("new") {
					v.Set(reflect.New(o.typ.Elem()))
				}
			})
			return
		}
		ui.Tree(s, label, func() {
			if s.MenuItem("delete") {
				release(env, v)
				v.SetZero()
			}
		}, func() {
			if !v.IsNil() {
				err = drawPointee(env, s, meta, v.Elem())
			}
		})
	})
	return err
}

// drawPointee draws the target of an owning pointer. Objects show their fields
// directly under the pointer's node; other shapes get a "value" entry that
// inherits the pointer's metadata.
func drawPointee(env *apis.Env, s ui.Surface, meta apis.Meta, target reflect.Value) error {
	d, err := env.Drawer(target.Type())
	if err != nil {
		return err
	}
	if _, ok := d.(*objectOps); ok {
		return DrawFields(env, s, target)
	}
	return d.Draw(env, s, "value", meta, target)
}
