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

package apis

import (
	"reflect"

	"dirpx.dev/rfield/jsonx"
	"dirpx.dev/rfield/ui"
)

// Codec is the Serialization operation table of one shape.
// v is the value of that shape; Decode requires it to be settable.
type Codec interface {
	Encode(env *Env, w *jsonx.Writer, v reflect.Value) error
	Decode(env *Env, n *jsonx.Node, v reflect.Value) error
}

// Drawer is the Inspector operation table of one shape. Draw renders v as an
// editable control labeled label and applies this frame's edits to v.
type Drawer interface {
	Draw(env *Env, s ui.Surface, label string, meta Meta, v reflect.Value) error
}

// SelfCodec is implemented (on the pointer receiver) by types that encode
// themselves. Such types need no field table for Serialization.
type SelfCodec interface {
	EncodeJSON(w *jsonx.Writer) error
	DecodeJSON(n *jsonx.Node) error
}

// SelfDrawer is implemented (on the pointer receiver) by types that draw
// their own inspector control.
type SelfDrawer interface {
	DrawInspector(s ui.Surface, label string, meta Meta) error
}

// Releaser is the destruction hook of owned instances. The engine calls
// Release exactly once on every instance it discards from an owning pointer,
// interface, sequence or map. Cascading into the instance's own fields is the
// instance's responsibility.
type Releaser interface {
	Release()
}
