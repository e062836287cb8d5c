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
	"strconv"

	"github.com/pkg/errors"

	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/jsonx"
	"dirpx.dev/rfield/ui"
)

// NewArray creates an apis.Strategy for fixed-size arrays.
func NewArray() apis.Strategy {
	return arrayStrategy{}
}

type arrayStrategy struct{}

// Ensure arrayStrategy implements apis.Strategy.
var _ apis.Strategy = arrayStrategy{}

func (arrayStrategy) TryBuild(cap apis.Capability, t reflect.Type, _ *apis.Env) (any, bool) {
	if !builtin(cap) || t.Kind() != reflect.Array {
		return nil, false
	}
	return &arrayOps{typ: t}, true
}

// arrayOps handles [N]T. Input arrays must have exactly N items; elements are
// decoded in place.
type arrayOps struct {
	typ reflect.Type
}

func (o *arrayOps) Encode(env *apis.Env, w *jsonx.Writer, v reflect.Value) error {
	return encodeElems(env, w, o.typ.Elem(), addressable(v))
}

func (o *arrayOps) Decode(env *apis.Env, n *jsonx.Node, v reflect.Value) error {
	if err := apis.ExpectKind(n, jsonx.Array); err != nil {
		return err
	}
	if n.Len() != o.typ.Len() {
		return errors.Wrapf(apis.ErrLengthMismatch, "got %d items, want %d", n.Len(), o.typ.Len())
	}
	c, err := env.Codec(o.typ.Elem())
	if err != nil {
		return err
	}
	for i, en := range n.Elems() {
		if err := c.Decode(env, en, v.Index(i)); err != nil {
			return errors.WithMessagef(err, "index %d", i)
		}
	}
	return nil
}

func (o *arrayOps) Draw(env *apis.Env, s ui.Surface, label string, meta apis.Meta, v reflect.Value) error {
	var err error
	ui.WithID(s, label, func() {
		ui.Tree(s, label, nil, func() {
			d, derr := env.Drawer(o.typ.Elem())
			if derr != nil {
				err = derr
				return
			}
			for i := 0; i < v.Len(); i++ {
				if err = d.Draw(env, s, strconv.Itoa(i), meta, v.Index(i)); err != nil {
					err = errors.WithMessagef(err, "index %d", i)
					return
				}
			}
		})
	})
	return err
}
