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

// Package serial serializes values through their declared field tables.
//
//	data, err := serial.Marshal(&scene)
//	err = serial.Unmarshal(data, &scene)
//
// Every declared field is required on input; extra members are ignored. A
// failed Deserialize leaves the target in an unspecified state: discard it.
package serial

import (
	"log/slog"
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/rfield"
	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/jsonx"
	"dirpx.dev/rfield/strategy"
	uref "dirpx.dev/rfield/utils/reflect"
)

// Serialize writes v, a struct or a pointer to one, as a JSON object.
func Serialize(v any, w *jsonx.Writer) error {
	return SerializeWith(rfield.Env(), v, w)
}

// SerializeWith is Serialize against an explicit environment.
func SerializeWith(env *apis.Env, v any, w *jsonx.Writer) error {
	rv, err := object(v, false)
	if err != nil {
		return err
	}
	return strategy.EncodeFields(env, w, rv)
}

// Deserialize reads n into v, which must be a non-nil pointer to a struct.
func Deserialize(v any, n *jsonx.Node) error {
	return DeserializeWith(rfield.Env(), v, n)
}

// DeserializeWith is Deserialize against an explicit environment.
func DeserializeWith(env *apis.Env, v any, n *jsonx.Node) error {
	rv, err := object(v, true)
	if err != nil {
		return err
	}
	if err := strategy.DecodeFields(env, n, rv); err != nil {
		env.Log().Debug("rfield: deserialize failed",
			slog.String("type", uref.Name(rv.Type())),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

// Marshal returns the JSON document of v, indented per the configuration.
func Marshal(v any) ([]byte, error) {
	return MarshalWith(rfield.Env(), v)
}

// MarshalWith is Marshal against an explicit environment.
func MarshalWith(env *apis.Env, v any) ([]byte, error) {
	w := jsonx.NewWriter(env.Config.Indent)
	if err := SerializeWith(env, v, w); err != nil {
		return nil, err
	}
	return w.Bytes()
}

// Unmarshal parses data and deserializes it into v.
func Unmarshal(data []byte, v any) error {
	return UnmarshalWith(rfield.Env(), data, v)
}

// UnmarshalWith is Unmarshal against an explicit environment.
func UnmarshalWith(env *apis.Env, data []byte, v any) error {
	n, err := jsonx.Parse(data)
	if err != nil {
		return err
	}
	return DeserializeWith(env, v, n)
}

// object returns the struct behind v. Interfaces resolve to their dynamic
// type, so a Shape holding *Circle uses Circle's table.
func object(v any, write bool) (reflect.Value, error) {
	if v == nil {
		return reflect.Value{}, errors.Wrap(apis.ErrInvalidTarget, "nil")
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.Pointer && rv.IsNil():
		return reflect.Value{}, errors.Wrapf(apis.ErrInvalidTarget, "nil %s", rv.Type())
	case rv.Kind() == reflect.Pointer:
		rv = rv.Elem()
	case write:
		return reflect.Value{}, errors.Wrapf(apis.ErrInvalidTarget, "%s is not a pointer", rv.Type())
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, errors.Wrapf(apis.ErrInvalidTarget, "%s is not a struct", rv.Type())
	}
	return rv, nil
}
