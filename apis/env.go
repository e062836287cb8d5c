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
	"log/slog"
	"reflect"

	"github.com/pkg/errors"
)

// Env is the read-only context every operation runs in: configuration,
// registries and the operation table. An Env is a published snapshot and
// must not be mutated.
type Env struct {
	Config     Config
	Ops        OpsTable
	Fields     FieldTables
	Subclasses Subclasses
	Enums      Enums
	Logger     *slog.Logger
}

// Codec returns the Serialization ops of t.
func (e *Env) Codec(t reflect.Type) (Codec, error) {
	ops, err := e.Ops.Resolve(Serialization, t, e)
	if err != nil {
		return nil, err
	}
	c, ok := ops.(Codec)
	if !ok {
		return nil, errors.Wrapf(ErrBadOps, "%s: %s (%T)", Serialization, t, ops)
	}
	return c, nil
}

// Drawer returns the Inspector ops of t.
func (e *Env) Drawer(t reflect.Type) (Drawer, error) {
	ops, err := e.Ops.Resolve(Inspector, t, e)
	if err != nil {
		return nil, err
	}
	d, ok := ops.(Drawer)
	if !ok {
		return nil, errors.Wrapf(ErrBadOps, "%s: %s (%T)", Inspector, t, ops)
	}
	return d, nil
}

// Describe resolves f against obj, an addressable value of the declaring type.
func (e *Env) Describe(cap Capability, f Field, obj reflect.Value) (Descriptor, error) {
	ops, err := e.Ops.Resolve(cap, f.Type, e)
	if err != nil {
		return Descriptor{}, errors.WithMessagef(err, "field %q", f.Name)
	}
	return Descriptor{Name: f.Name, Value: f.Get(obj), Ops: ops, Meta: f.Meta}, nil
}

// Log returns the snapshot logger, or slog.Default.
func (e *Env) Log() *slog.Logger {
	if e == nil || e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}
