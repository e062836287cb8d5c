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
	"github.com/pkg/errors"
)

// MetaKey identifies a per-field metadata entry.
type MetaKey string

const (
	// MetaMin is the lower slider bound (float64).
	MetaMin MetaKey = "min"
	// MetaMax is the upper slider bound (float64).
	MetaMax MetaKey = "max"
	// MetaLabel overrides the label drawn for a field (string).
	MetaLabel MetaKey = "label"
)

// Meta is per-field metadata declared once with the field table and shared by
// every instance of the declaring type. It must not be modified after declaration.
type Meta map[MetaKey]any

// ErrMetaType is raised when a metadata entry holds a value of the wrong type.
var ErrMetaType = errors.New("rfield: metadata value has unexpected type")

// MetaValue returns m[key] as V, or def if the key is absent. A present entry
// of another type is a declaration bug and panics with ErrMetaType.
func MetaValue[V any](m Meta, key MetaKey, def V) V {
	raw, ok := m[key]
	if !ok {
		return def
	}
	v, ok := raw.(V)
	if !ok {
		panic(errors.Wrapf(ErrMetaType, "%s: %T", key, raw))
	}
	return v
}
