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

// NewEnum creates an apis.Strategy for types registered in env.Enums. It must
// precede the scalar strategy: enums share scalar kinds.
func NewEnum() apis.Strategy {
	return enumStrategy{}
}

type enumStrategy struct{}

// Ensure enumStrategy implements apis.Strategy.
var _ apis.Strategy = enumStrategy{}

func (enumStrategy) TryBuild(cap apis.Capability, t reflect.Type, env *apis.Env) (any, bool) {
	if !builtin(cap) || env == nil || env.Enums == nil {
		return nil, false
	}
	e, ok := env.Enums.Lookup(t)
	if !ok {
		return nil, false
	}
	return &enumOps{enum: e}, true
}

// enumOps writes symbolic names and draws a combo of all names.
type enumOps struct {
	enum *apis.Enum
}

func (o *enumOps) Encode(_ *apis.Env, w *jsonx.Writer, v reflect.Value) error {
	name, ok := o.enum.NameOf(v)
	if !ok {
		return errors.Wrapf(apis.ErrUnknownEnumValue, "%v for %s", v.Interface(), uref.Name(o.enum.Type))
	}
	w.String(name)
	return nil
}

func (o *enumOps) Decode(_ *apis.Env, n *jsonx.Node, v reflect.Value) error {
	if err := apis.ExpectKind(n, jsonx.String); err != nil {
		return err
	}
	val, ok := o.enum.ValueOf(n.Str())
	if !ok {
		return errors.Wrapf(apis.ErrUnknownEnumName, "%q for %s", n.Str(), uref.Name(o.enum.Type))
	}
	v.Set(val)
	return nil
}

func (o *enumOps) Draw(_ *apis.Env, s ui.Surface, label string, _ apis.Meta, v reflect.Value) error {
	current, _ := o.enum.NameOf(v)
	ui.Combo(s, label, current, func() {
		for i, name := range o.enum.Names {
			selected := name == current
			if s.Selectable(name, selected) {
				v.Set(o.enum.Values[i])
			}
			if selected {
				s.SetItemDefaultFocus()
			}
		}
	})
	return nil
}
