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

package builder

import (
	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/registry"
	"dirpx.dev/rfield/resolver"
	"dirpx.dev/rfield/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds a new explicit ops registry. If a previous registry is
// provided, its entries are copied into the new one.
func (b *builder) BuildRegistry(_ apis.Config, prev apis.OpsRegistry) apis.OpsRegistry {
	nreg := registry.NewOps()
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e.Capability, e.Type, e.Ops)
		}
	}
	return nreg
}

// BuildResolver builds the default strategy chain over ops. Explicit
// registrations win, then self-implemented capabilities, then the built-in
// shape families; struct objects come last.
func (b *builder) BuildResolver(_ apis.Config, ops apis.OpsRegistry, _ apis.Resolver) apis.Resolver {
	return resolver.New(
		strategy.NewExplicit(ops),
		strategy.NewSelf(),
		strategy.NewEnum(),
		strategy.NewScalar(),
		strategy.NewPointer(),
		strategy.NewPolymorphic(),
		strategy.NewSequence(),
		strategy.NewArray(),
		strategy.NewMap(),
		strategy.NewObject(),
	)
}
