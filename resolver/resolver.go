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

package resolver

import (
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/rfield/apis"
	uref "dirpx.dev/rfield/utils/reflect"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryBuild calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Resolve runs strategies in order until one handles the shape.
func (r chain) Resolve(cap apis.Capability, t reflect.Type, env *apis.Env) (any, error) {
	if t == nil {
		return nil, apis.ErrNilType
	}
	for _, s := range r.strats {
		ops, ok := s.TryBuild(cap, t, env)
		if !ok {
			continue
		}
		if ops == nil {
			return nil, errors.Wrapf(apis.ErrBadOps, "%s: %s: %T produced nil", cap, uref.Name(t), s)
		}
		return ops, nil
	}
	return nil, errors.Wrapf(apis.ErrNoHandler, "%s: %s (%s)", cap, uref.Name(t), uref.Classify(t))
}
