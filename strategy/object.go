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

	"github.com/pkg/errors"

	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/jsonx"
	"dirpx.dev/rfield/ui"
	uref "dirpx.dev/rfield/utils/reflect"
)

// NewObject creates an apis.Strategy for structs that declare a field table
// for the capability being resolved.
func NewObject() apis.Strategy {
	return objectStrategy{}
}

type objectStrategy struct{}

// Ensure objectStrategy implements apis.Strategy.
var _ apis.Strategy = objectStrategy{}

func (objectStrategy) TryBuild(cap apis.Capability, t reflect.Type, env *apis.Env) (any, bool) {
	if !builtin(cap) || t.Kind() != reflect.Struct || env == nil || env.Fields == nil {
		return nil, false
	}
	if !env.Fields.Has(cap, t) {
		return nil, false
	}
	return &objectOps{typ: t}, true
}

// objectOps walks the declared field table of a struct held by value.
type objectOps struct {
	typ reflect.Type
}

func (o *objectOps) Encode(env *apis.Env, w *jsonx.Writer, v reflect.Value) error {
	return EncodeFields(env, w, v)
}

func (o *objectOps) Decode(env *apis.Env, n *jsonx.Node, v reflect.Value) error {
	return DecodeFields(env, n, v)
}

func (o *objectOps) Draw(env *apis.Env, s ui.Surface, label string, _ apis.Meta, v reflect.Value) error {
	var err error
	ui.WithID(s, label, func() {
		ui.Tree(s, label, nil, func() {
			err = DrawFields(env, s, v)
		})
	})
	return err
}

// EncodeFields writes v as an object with one member per declared field, in
// table order.
func EncodeFields(env *apis.Env, w *jsonx.Writer, v reflect.Value) error {
	tbl, err := env.Fields.Table(apis.Serialization, v.Type())
	if err != nil {
		return err
	}
	obj := addressable(v)
	w.StartObject()
	for _, f := range tbl.Fields() {
		d, err := env.Describe(apis.Serialization, f, obj)
		if err != nil {
			return err
		}
		c, ok := d.Ops.(apis.Codec)
		if !ok {
			return errors.Wrapf(apis.ErrBadOps, "field %q: %T", f.Name, d.Ops)
		}
		w.Key(f.Name)
		if err := c.Encode(env, w, d.Value); err != nil {
			return errors.WithMessagef(err, "field %q", f.Name)
		}
	}
	w.EndObject()
	return w.Err()
}

// DecodeFields reads every declared field of v from the same-named member of
// n. A missing member fails the whole call; extra members are ignored.
func DecodeFields(env *apis.Env, n *jsonx.Node, v reflect.Value) error {
	if !v.CanAddr() {
		return errors.Wrapf(apis.ErrInvalidTarget, "%s is not addressable", uref.Name(v.Type()))
	}
	tbl, err := env.Fields.Table(apis.Serialization, v.Type())
	if err != nil {
		return err
	}
	if err := apis.ExpectKind(n, jsonx.Object); err != nil {
		return errors.WithMessagef(err, "%s", uref.Name(v.Type()))
	}
	for _, f := range tbl.Fields() {
		member, ok := n.Member(f.Name)
		if !ok {
			return errors.Wrapf(apis.ErrMissingField, "%s: %q", uref.Name(v.Type()), f.Name)
		}
		d, err := env.Describe(apis.Serialization, f, v)
		if err != nil {
			return err
		}
		c, ok := d.Ops.(apis.Codec)
		if !ok {
			return errors.Wrapf(apis.ErrBadOps, "field %q: %T", f.Name, d.Ops)
		}
		if err := c.Decode(env, member, d.Value); err != nil {
			return errors.WithMessagef(err, "field %q", f.Name)
		}
	}
	return nil
}

// DrawFields draws every declared inspector field of v with its label and
// metadata.
func DrawFields(env *apis.Env, s ui.Surface, v reflect.Value) error {
	if !v.CanAddr() {
		return errors.Wrapf(apis.ErrInvalidTarget, "%s is not addressable", uref.Name(v.Type()))
	}
	tbl, err := env.Fields.Table(apis.Inspector, v.Type())
	if err != nil {
		return err
	}
	for _, f := range tbl.Fields() {
		d, err := env.Describe(apis.Inspector, f, v)
		if err != nil {
			return err
		}
		dr, ok := d.Ops.(apis.Drawer)
		if !ok {
			return errors.Wrapf(apis.ErrBadOps, "field %q: %T", f.Name, d.Ops)
		}
		if err := dr.Draw(env, s, label(f.Meta, f.Name), f.Meta, d.Value); err != nil {
			return errors.WithMessagef(err, "field %q", f.Name)
		}
	}
	return nil
}
