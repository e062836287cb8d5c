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

// NewSubclasses constructs an empty subclass registry.
func NewSubclasses() apis.Subclasses {
	return &subclasses{}
}

// subclasses is an apis.Subclasses backed by sync.Map. Each base maps to an
// immutable family; writers publish a fresh copy under mu.
type subclasses struct {
	// mu guards write-side consistency and counter.
	mu sync.Mutex
	// m maps base reflect.Type to *family.
	m sync.Map
	// count tracks the number of registered subclasses.
	count int
}

// family is the published, read-only subclass set of one base.
type family struct {
	entries []apis.SubclassEntry
	byTag   map[string]int
	byType  map[reflect.Type]int
}

// Ensure subclasses implements apis.Subclasses.
var _ apis.Subclasses = (*subclasses)(nil)

// Register associates tag with concrete under base. It is idempotent for the
// same (base, tag, concrete) triple.
func (r *subclasses) Register(base reflect.Type, tag string, concrete reflect.Type, factory apis.Factory) error {
	// Validate inputs early.
	if base == nil || concrete == nil {
		return apis.ErrNilType
	}
	if tag == "" {
		return apis.ErrEmptyName
	}
	if factory == nil {
		return errors.Wrapf(apis.ErrNilFactory, "%s", tag)
	}
	if base.Kind() != reflect.Interface || !concrete.Implements(base) {
		return errors.Wrapf(apis.ErrNotSubclass, "%s does not implement %s", uref.Name(concrete), uref.Name(base))
	}

	// Fast read path: idempotency / conflict check without locking.
	if f, ok := r.load(base); ok {
		if done, err := f.check(base, tag, concrete); done {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	old, _ := r.load(base)
	if old != nil {
		if done, err := old.check(base, tag, concrete); done {
			return err
		}
	}

	r.m.Store(base, old.with(apis.SubclassEntry{Base: base, Tag: tag, Concrete: concrete, New: factory}))
	r.count++
	return nil
}

// check reports whether the triple is already decided: a nil error for an
// identical registration, a conflict otherwise.
func (f *family) check(base reflect.Type, tag string, concrete reflect.Type) (bool, error) {
	i, tagged := f.byTag[tag]
	j, typed := f.byType[concrete]
	switch {
	case tagged && typed && i == j:
		return true, nil
	case tagged:
		return true, errors.Wrapf(apis.ErrConflictingRegistration,
			"%s: tag %q already names %s", uref.Name(base), tag, uref.Name(f.entries[i].Concrete))
	case typed:
		return true, errors.Wrapf(apis.ErrConflictingRegistration,
			"%s: %s already tagged %q", uref.Name(base), uref.Name(concrete), f.entries[j].Tag)
	}
	return false, nil
}

// with returns a copy of f extended by e. A nil receiver starts a new family.
func (f *family) with(e apis.SubclassEntry) *family {
	n := &family{byTag: map[string]int{}, byType: map[reflect.Type]int{}}
	if f != nil {
		n.entries = append(n.entries, f.entries...)
		for k, v := range f.byTag {
			n.byTag[k] = v
		}
		for k, v := range f.byType {
			n.byType[k] = v
		}
	}
	n.byTag[e.Tag] = len(n.entries)
	n.byType[e.Concrete] = len(n.entries)
	n.entries = append(n.entries, e)
	return n
}

func (r *subclasses) load(base reflect.Type) (*family, bool) {
	v, ok := r.m.Load(base)
	if !ok {
		return nil, false
	}
	return v.(*family), true
}

// Has reports whether base has at least one subclass.
func (r *subclasses) Has(base reflect.Type) bool {
	if base == nil {
		return false
	}
	_, ok := r.load(base)
	return ok
}

// Factory returns the constructor registered under tag.
func (r *subclasses) Factory(base reflect.Type, tag string) (apis.Factory, error) {
	if f, ok := r.load(base); ok {
		if i, ok := f.byTag[tag]; ok {
			return f.entries[i].New, nil
		}
	}
	return nil, errors.Wrapf(apis.ErrUnknownTag, "%q for %s", tag, uref.Name(base))
}

// Tag returns the tag of concrete under base.
func (r *subclasses) Tag(base, concrete reflect.Type) (string, error) {
	if f, ok := r.load(base); ok {
		if i, ok := f.byType[concrete]; ok {
			return f.entries[i].Tag, nil
		}
	}
	return "", errors.Wrapf(apis.ErrUnregisteredSubclass, "%s for %s", uref.Name(concrete), uref.Name(base))
}

// Entries returns base's subclasses in registration order.
func (r *subclasses) Entries(base reflect.Type) []apis.SubclassEntry {
	f, ok := r.load(base)
	if !ok {
		return nil
	}
	return append([]apis.SubclassEntry(nil), f.entries...)
}

// Count returns the number of registered subclasses across all bases.
func (r *subclasses) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registrations.
func (r *subclasses) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
