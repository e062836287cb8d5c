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

// Package inspect draws declared inspector field tables on a ui.Surface.
package inspect

import (
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/rfield"
	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/fields"
	"dirpx.dev/rfield/strategy"
	"dirpx.dev/rfield/ui"
)

// DrawUI draws one frame of editable controls for v, a non-nil pointer to a
// struct. Edits made this frame are applied to v before DrawUI returns.
func DrawUI(s ui.Surface, v any) error {
	return DrawUIWith(rfield.Env(), s, v)
}

// DrawUIWith is DrawUI against an explicit environment.
func DrawUIWith(env *apis.Env, s ui.Surface, v any) error {
	rv := reflect.ValueOf(v)
	if v == nil || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.Wrapf(apis.ErrInvalidTarget, "%T is not a non-nil pointer", v)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return errors.Wrapf(apis.ErrInvalidTarget, "%s is not a struct", rv.Type())
	}
	return strategy.DrawFields(env, s, rv)
}

// Range sets the slider bounds of a numeric field, or of the elements of a
// container field.
func Range(min, max float64) fields.Option {
	return func(m apis.Meta) {
		m[apis.MetaMin] = min
		m[apis.MetaMax] = max
	}
}

// Label replaces the field name shown next to the control.
func Label(text string) fields.Option {
	return fields.With(apis.MetaLabel, text)
}
