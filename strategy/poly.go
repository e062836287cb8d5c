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
	"dirpx.dev/rfield/config"
	"dirpx.dev/rfield/jsonx"
	"dirpx.dev/rfield/ui"
	uref "dirpx.dev/rfield/utils/reflect"
)

// NewPolymorphic creates an apis.Strategy for interface-typed owning fields.
// The concrete value is written inside an envelope naming its subclass tag:
//
//	{"type": "Circle", "data": {"radius": 50.0}}
//
// The member names come from Config.TypeKey and Config.DataKey, repaired by
// config.Normalize when unusable.
func NewPolymorphic() apis.Strategy {
	return polyStrategy{}
}

type polyStrategy struct{}

// Ensure polyStrategy implements apis.Strategy.
var _ apis.Strategy = polyStrategy{}

func (polyStrategy) TryBuild(cap apis.Capability, t reflect.Type, _ *apis.Env) (any, bool) {
	if !builtin(cap) || t.Kind() != reflect.Interface {
		return nil, false
	}
	return &polyOps{base: t}, true
}

type polyOps struct {
	base reflect.Type
}

func (o *polyOps) Encode(env *apis.Env, w *jsonx.Writer, v reflect.Value) error {
	if v.IsNil() {
		w.Null()
		return nil
	}
	keys := config.Normalize(env.Config)
	inst := v.Elem()
	tag, err := env.Subclasses.Tag(o.base, inst.Type())
	if err != nil {
		return err
	}
	c, err := env.Codec(inst.Type())
	if err != nil {
		return err
	}
	w.StartObject()
	w.Key(keys.TypeKey)
	w.String(tag)
	w.Key(keys.DataKey)
	if err := c.Encode(env, w, addressable(inst)); err != nil {
		return errors.WithMessagef(err, "%s %q", keys.DataKey, tag)
	}
	w.EndObject()
	return nil
}

// Decode always discards the current instance: the concrete type may differ
// from one input to the next.
func (o *polyOps) Decode(env *apis.Env, n *jsonx.Node, v reflect.Value) error {
	if !v.IsNil() {
		release(env, v)
		v.SetZero()
	}
	if n.IsNull() {
		return nil
	}
	if err := apis.ExpectKind(n, jsonx.Object); err != nil {
		return err
	}
	keys := config.Normalize(env.Config)
	tag, data, err := o.envelope(keys, n)
	if err != nil {
		return err
	}
	factory, err := env.Subclasses.Factory(o.base, tag)
	if err != nil {
		return err
	}
	inst := factory()
	if !inst.IsValid() || (inst.Kind() == reflect.Pointer && inst.IsNil()) || !inst.Type().Implements(o.base) {
		return errors.Wrapf(apis.ErrNilFactory, "%q built no %s", tag, uref.Name(o.base))
	}

	// Decode pointer subclasses in place: going through the pointer ops would
	// release the instance just built.
	var target reflect.Value
	if inst.Kind() == reflect.Pointer {
		target = inst.Elem()
	} else {
		target = addressable(inst)
	}
	if inst.Kind() != reflect.Pointer {
		inst = target
	}
	c, err := env.Codec(target.Type())
	if err != nil {
		discard(env, inst)
		return err
	}
	if err := c.Decode(env, data, target); err != nil {
		discard(env, inst)
		return errors.WithMessagef(err, "%s %q", keys.DataKey, tag)
	}
	v.Set(inst)
	return nil
}

// discard releases a subclass instance that never reached its field.
func discard(env *apis.Env, inst reflect.Value) {
	release(env, inst)
	if inst.Kind() != reflect.Pointer {
		hook(inst)
	}
}

// envelope extracts the tag and payload of a non-null envelope.
func (o *polyOps) envelope(keys apis.Config, n *jsonx.Node) (string, *jsonx.Node, error) {
	tn, ok := n.Member(keys.TypeKey)
	if !ok {
		return "", nil, errors.Wrapf(apis.ErrMissingField, "%q", keys.TypeKey)
	}
	if err := apis.ExpectKind(tn, jsonx.String); err != nil {
		return "", nil, errors.WithMessagef(err, "%q", keys.TypeKey)
	}
	data, ok := n.Member(keys.DataKey)
	if !ok {
		return "", nil, errors.Wrapf(apis.ErrMissingField, "%q", keys.DataKey)
	}
	return tn.Str(), data, nil
}

func (o *polyOps) Draw(env *apis.Env, s ui.Surface, label string, meta apis.Meta, v reflect.Value) error {
	var err error
	ui.WithID(s, label, func() {
		if v.IsNil() {
			s.Text(label + " is null")
			ui.ContextMenu(s, "menu", func() {
				for _, e := range env.Subclasses.Entries(o.base) {
					if s.MenuItem(e.Tag) {
						v.Set(e.New())
						return
					}
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
			if v.IsNil() {
				return
			}
			inst := v.Elem()
			if inst.Kind() == reflect.Pointer {
				if inst.IsNil() {
					return
				}
				err = drawPointee(env, s, meta, inst.Elem())
				return
			}
			tmp := addressable(inst)
			err = drawPointee(env, s, meta, tmp)
			v.Set(tmp)
		})
	})
	return err
}
