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

// Strategy is a pluggable step that builds the operation table of a shape.
// A Resolver chains strategies in order (e.g., explicit -> self -> scalar).
type Strategy interface {
	// TryBuild returns the ops of t for cap, or (nil, false) to fall through.
	// It must not resolve other shapes: composite ops look their element ops
	// up through env when they run.
	TryBuild(cap Capability, t reflect.Type, env *Env) (ops any, handled bool)
}
