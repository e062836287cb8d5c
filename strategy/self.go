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

var (
	selfCodecType  = reflect.TypeFor[apis.SelfCodec]()
	selfDrawerType = reflect.TypeFor[apis.SelfDrawer]()
)

// NewSelf creates an apis.Strategy for types that implement a capability
// themselves (apis.SelfCodec, apis.SelfDrawer) on their pointer receiver.
func NewSelf() apis.Strategy {
	return selfStrategy{}
}

type selfStrategy struct{}

// Ensure selfStrategy implements apis.Strategy.
var _ apis.Strategy = selfStrategy{}

func (selfStrategy) TryBuild(cap apis.Capability, t reflect.Type, _ *apis.Env) (any, bool) {
	if k := t.Kind(); k == reflect.Pointer || k == reflect.Interface {
		return nil, false
	}
	pt := reflect.PointerTo(t)
	switch {
	case cap == apis.Serialization && pt.Implements(selfCodecType):
		return selfCodec{}, true
	case cap == apis.Inspector && pt.Implements(selfDrawerType):
		return selfDrawer{}, true
	}
	return nil, false
}

type selfCodec struct{}

func (selfCodec) Encode(_ *apis.Env, w *jsonx.Writer, v reflect.Value) error {
	return addressable(v).Addr().Interface().(apis.SelfCodec).EncodeJSON(w)
}

func (selfCodec) Decode(_ *apis.Env, n *jsonx.Node, v reflect.Value) error {
	if !v.CanAddr() {
		return errors.Wrapf(apis.ErrInvalidTarget, "%s is not addressable", uref.Name(v.Type()))
	}
	return v.Addr().Interface().(apis.SelfCodec).DecodeJSON(n)
}

type selfDrawer struct{}

func (selfDrawer) Draw(_ *apis.Env, s ui.Surface, label string, meta apis.Meta, v reflect.Value) error {
	if !v.CanAddr() {
		return errors.Wrapf(apis.ErrInvalidTarget, "%s is not addressable", uref.Name(v.Type()))
	}
	return v.Addr().Interface().(apis.SelfDrawer).DrawInspector(s, label, meta)
}
