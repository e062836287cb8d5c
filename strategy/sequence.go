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
	"fmt"
	"reflect"
	"strconv"

	"github.com/pkg/errors"

	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/jsonx"
	"dirpx.dev/rfield/ui"
)

// NewSequence creates an apis.Strategy for slices.
func NewSequence() apis.Strategy {
	return sequenceStrategy{}
}

type sequenceStrategy struct{}

// Ensure sequenceStrategy implements apis.Strategy.
var _ apis.Strategy = sequenceStrategy{}

func (sequenceStrategy) TryBuild(cap apis.Capability, t reflect.Type, _ *apis.Env) (any, bool) {
	if !builtin(cap) || t.Kind() != reflect.Slice {
		return nil, false
	}
	return &sequenceOps{typ: t}, true
}

type sequenceOps struct {
	typ reflect.Type
}

func (o *sequenceOps) Encode(env *apis.Env, w *jsonx.Writer, v reflect.Value) error {
	return encodeElems(env, w, o.typ.Elem(), v)
}

// encodeElems writes the elements of a slice or array as a JSON array.
func encodeElems(env *apis.Env, w *jsonx.Writer, elem reflect.Type, v reflect.Value) error {
	c, err := env.Codec(elem)
	if err != nil {
		return err
	}
	w.StartArray()
	for i := 0; i < v.Len(); i++ {
		if err := c.Encode(env, w, v.Index(i)); err != nil {
			return errors.WithMessagef(err, "index %d", i)
		}
	}
	w.EndArray()
	return nil
}

// Decode clears the slice, releasing owned elements, then appends one element
// per input item. On failure the slice keeps what was decoded so far.
func (o *sequenceOps) Decode(env *apis.Env, n *jsonx.Node, v reflect.Value) error {
	if err := apis.ExpectKind(n, jsonx.Array); err != nil {
		return err
	}
	elem := o.typ.Elem()
	c, err := env.Codec(elem)
	if err != nil {
		return err
	}
	releaseElems(env, v)
	v.Set(reflect.MakeSlice(o.typ, 0, n.Len()))
	for i, en := range n.Elems() {
		v.Set(reflect.Append(v, reflect.Zero(elem)))
		if err := c.Decode(env, en, v.Index(i)); err != nil {
			return errors.WithMessagef(err, "index %d", i)
		}
	}
	return nil
}

// Draw lists the elements by index. meta applies to every element.
func (o *sequenceOps) Draw(env *apis.Env, s ui.Surface, label string, meta apis.Meta, v reflect.Value) error {
	elem := o.typ.Elem()
	var err error
	ui.WithID(s, label, func() {
		ui.Tree(s, label, func() {
			if s.MenuItem("clear") {
				releaseElems(env, v)
				v.Clear()
				v.SetLen(0)
			}
			if s.MenuItem("append") {
				v.Set(reflect.Append(v, reflect.Zero(elem)))
			}
			if s.MenuItem("pop") && v.Len() > 0 {
				last := v.Index(v.Len() - 1)
				release(env, last)
				last.SetZero()
				v.SetLen(v.Len() - 1)
			}
		}, func() {
			d, derr := env.Drawer(elem)
			if derr != nil {
				err = derr
				return
			}
			for i := 0; i < v.Len(); i++ {
				if i > 0 && s.Button(fmt.Sprintf("exchange(%d, %d)", i-1, i)) {
					reflect.Swapper(v.Interface())(i-1, i)
				}
				if err = d.Draw(env, s, strconv.Itoa(i), meta, v.Index(i)); err != nil {
					err = errors.WithMessagef(err, "index %d", i)
					return
				}
			}
		})
	})
	return err
}
