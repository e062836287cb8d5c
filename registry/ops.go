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

package registry

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"

	"dirpx.dev/rfield/apis"
	uref "dirpx.dev/rfield/utils/reflect"
)

// NewOps constructs an empty explicit ops registry.
func NewOps() apis.OpsRegistry {
	return &ops{}
}

// opsKey identifies an explicit registration.
type opsKey struct {
	cap apis.Capability
	typ reflect.Type
}

// ops is an apis.OpsRegistry backed by sync.Map.
type ops struct {
	mu    sync.Mutex
	m     sync.Map // map[opsKey]any
	count int
}

// Ensure ops implements apis.OpsRegistry.
var _ apis.OpsRegistry = (*ops)(nil)

// Register binds o to (cap, t). o must satisfy the capability's contract for
// the built-in capabilities.
func (r *ops) Register(cap apis.Capability, t reflect.Type, o any) error {
	if t == nil {
		return apis.ErrNilType
	}
	if cap == "" {
		return apis.ErrEmptyName
	}
	if err := checkContract(cap, o); err != nil {
		return errors.WithMessagef(err, "%s", uref.Name(t))
	}
	k := opsKey{cap: cap, typ: t}

	// Fast read path.
	if old, ok := r.m.Load(k); ok {
		return sameOps(cap, t, old, o)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.m.Load(k); ok {
		return sameOps(cap, t, old, o)
	}
	r.m.Store(k, o)
	r.count++
	return nil
}

func checkContract(cap apis.Capability, o any) error {
	if o == nil {
		return errors.Wrapf(apis.ErrBadOps, "%s: nil", cap)
	}
	ok := true
	switch cap {
	case apis.Serialization:
		_, ok = o.(apis.Codec)
	case apis.Inspector:
		_, ok = o.(apis.Drawer)
	}
	if !ok {
		return errors.Wrapf(apis.ErrBadOps, "%s: %T", cap, o)
	}
	return nil
}

// sameOps accepts re-registration of an identical, comparable ops value.
func sameOps(cap apis.Capability, t reflect.Type, old, o any) error {
	ot, nt := reflect.TypeOf(old), reflect.TypeOf(o)
	if ot == nt && ot.Comparable() && old == o {
		return nil
	}
	return errors.Wrapf(apis.ErrConflictingRegistration, "%s: %s", cap, uref.Name(t))
}

// Lookup returns the ops bound to (cap, t).
func (r *ops) Lookup(cap apis.Capability, t reflect.Type) (any, bool) {
	if t == nil {
		return nil, false
	}
	return r.m.Load(opsKey{cap: cap, typ: t})
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *ops) Entries() []apis.OpsEntry {
	entries := make([]apis.OpsEntry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		k := key.(opsKey)
		entries = append(entries, apis.OpsEntry{Capability: k.cap, Type: k.typ, Ops: value})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *ops) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *ops) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
