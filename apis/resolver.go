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
)

// Resolver coordinates strategies to produce operation tables.
type Resolver interface {
	// Resolve returns new ops for (cap, t), or an error wrapping ErrNoHandler.
	Resolve(cap Capability, t reflect.Type, env *Env) (any, error)
}

// OpsTable caches resolved operation tables. The same (cap, t) yields the same
// ops instance for the table's lifetime; construction happens exactly once.
type OpsTable interface {
	// Resolve returns the cached ops of (cap, t), building them on first use.
	Resolve(cap Capability, t reflect.Type, env *Env) (any, error)
	// Len returns the number of built entries.
	Len() int
}
