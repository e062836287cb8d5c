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

package strategy

import (
	"reflect"

	"dirpx.dev/rfield/apis"
)

// NewExplicit creates an apis.Strategy that serves ops registered by
// third-party code.
func NewExplicit(reg apis.OpsRegistry) apis.Strategy {
	return &explicitStrategy{reg: reg}
}

// explicitStrategy consults a provided apis.OpsRegistry.
type explicitStrategy struct {
	reg apis.OpsRegistry
}

// Ensure explicitStrategy implements apis.Strategy.
var _ apis.Strategy = (*explicitStrategy)(nil)

// TryBuild looks up (cap, t) in the registry.
func (s *explicitStrategy) TryBuild(cap apis.Capability, t reflect.Type, _ *apis.Env) (any, bool) {
	if t == nil || s.reg == nil {
		return nil, false
	}
	return s.reg.Lookup(cap, t)
}
