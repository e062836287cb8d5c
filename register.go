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

package rfield

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/rfield/apis"
	uref "dirpx.dev/rfield/utils/reflect"
)

// Subclasses returns the process-wide subclass registry.
func Subclasses() apis.Subclasses { return subclasses }

// Enums returns the process-wide enumeration registry.
func Enums() apis.Enums { return enums }

// RegisterSubclass registers S as a subclass of the interface B under tag.
// The tag is what appears on the wire; keep it stable across releases.
//
//	rfield.RegisterSubclass[Shape]("Circle", func() *Circle { return &Circle{} })
func RegisterSubclass[B, S any](tag string, factory func() S) error {
	base, concrete := reflect.TypeFor[B](), reflect.TypeFor[S]()
	var f apis.Factory
	if factory != nil {
		f = func() reflect.Value { return reflect.ValueOf(factory()) }
	}
	if err := subclasses.Register(base, tag, concrete, f); err != nil {
		return err
	}
	Logger().Debug("rfield: subclass registered",
		slog.String("base", uref.Name(base)),
		slog.String("tag", tag),
		slog.String("type", uref.Name(concrete)),
	)
	return nil
}

// MustRegisterSubclass is RegisterSubclass for init functions: it panics on error.
func MustRegisterSubclass[B, S any](tag string, factory func() S) {
	if err := RegisterSubclass[B](tag, factory); err != nil {
		panic(err)
	}
}

// RegisterEnum declares the values of E. Each value is named by its String
// method, and that name is what appears on the wire.
//
// A successful call publishes a snapshot with an empty operation table, so a
// type that was already resolved as a plain integer switches to names. Envs
// obtained before the call keep their ops.
func RegisterEnum[E interface {
	comparable
	fmt.Stringer
}](values ...E) error {
	t := reflect.TypeFor[E]()
	names := make([]string, len(values))
	vals := make([]reflect.Value, len(values))
	for i, v := range values {
		names[i] = v.String()
		vals[i] = reflect.ValueOf(v)
	}
	if err := enums.Register(t, names, vals); err != nil {
		return err
	}
	update(false, func(*state) {})
	Logger().Debug("rfield: enum registered",
		slog.String("type", uref.Name(t)),
		slog.Any("names", names),
	)
	return nil
}

// MustRegisterEnum is RegisterEnum for init functions: it panics on error.
func MustRegisterEnum[E interface {
	comparable
	fmt.Stringer
}](values ...E) {
	if err := RegisterEnum(values...); err != nil {
		panic(err)
	}
}

// RegisterOps binds explicit ops for the shape T in the current registry.
// Shapes resolved before the call keep their cached ops until the snapshot
// changes; shapes that failed to resolve pick the new ops up immediately.
func RegisterOps[T any](cap apis.Capability, ops any) error {
	t := reflect.TypeFor[T]()
	if err := Registry().Register(cap, t, ops); err != nil {
		return errors.WithMessagef(err, "register ops for %s", uref.Name(t))
	}
	return nil
}

// Capabilities, re-exported for registration call sites.
const (
	Serialization = apis.Serialization
	Inspector     = apis.Inspector
)
