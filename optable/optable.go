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

// Package optable caches operation tables per (capability, shape).
package optable

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/pkg/errors"

	"dirpx.dev/rfield/apis"
	uref "dirpx.dev/rfield/utils/reflect"
)

// New constructs a Table building entries through res.
func New(res apis.Resolver, log *slog.Logger) *Table {
	if log == nil {
		log = slog.Default()
	}
	return &Table{res: res, log: log}
}

// key identifies an entry.
type key struct {
	cap apis.Capability
	typ reflect.Type
}

// Table is an apis.OpsTable. Reads of built entries are lock-free; first use
// builds under mu so every (capability, shape) is constructed exactly once.
// Failed builds are not cached.
type Table struct {
	res apis.Resolver
	log *slog.Logger
	mu  sync.Mutex
	m   sync.Map // map[key]any
	n   int
}

// Ensure Table implements apis.OpsTable.
var _ apis.OpsTable = (*Table)(nil)

// Resolve returns the ops of (cap, t), building them on first use.
func (tb *Table) Resolve(cap apis.Capability, t reflect.Type, env *apis.Env) (any, error) {
	if t == nil {
		return nil, apis.ErrNilType
	}
	k := key{cap: cap, typ: t}
	if ops, ok := tb.m.Load(k); ok {
		return ops, nil
	}

	tb.mu.Lock()
	defer tb.mu.Unlock()
	if ops, ok := tb.m.Load(k); ok {
		return ops, nil
	}
	ops, err := tb.res.Resolve(cap, t, env)
	if err != nil {
		return nil, err
	}
	if ops == nil {
		return nil, errors.Wrapf(apis.ErrBadOps, "%s: %s: resolver returned nil", cap, uref.Name(t))
	}
	tb.m.Store(k, ops)
	tb.n++
	tb.log.Debug("rfield: operation table built",
		slog.String("capability", cap.String()),
		slog.String("type", uref.Name(t)),
		slog.String("ops", reflect.TypeOf(ops).String()),
	)
	return ops, nil
}

// Len returns the number of built entries.
func (tb *Table) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.n
}
