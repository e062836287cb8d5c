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

package rfield

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/builder"
	"dirpx.dev/rfield/config"
	"dirpx.dev/rfield/fields"
	"dirpx.dev/rfield/optable"
	"dirpx.dev/rfield/registry"
)

// init publishes the default snapshot.
func init() {
	b := builder.New()
	cfg := config.DefaultConfig()
	reg := b.BuildRegistry(cfg, nil)
	st.Store(assemble(&state{
		cfg: cfg,
		bld: b,
		reg: reg,
		res: b.BuildResolver(cfg, reg, nil),
		log: slog.Default(),
	}))
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("rfield: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("rfield: builder returned nil resolver")
)

// Process-wide registries. They are filled during initialization and shared
// by every snapshot.
var (
	subclasses = registry.NewSubclasses()
	enums      = registry.NewEnums()
)

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot published atomically via st.Store. Writers
// derive a new state and swap it in; a published state is never mutated.
type state struct {
	cfg apis.Config
	bld apis.Builder
	// reg holds explicit ops; res chains the strategies over it.
	reg apis.OpsRegistry
	res apis.Resolver
	// preg and pres mark layers installed by hand; they survive rebuilds.
	preg bool
	pres bool
	log  *slog.Logger
	// env is derived from the fields above by assemble.
	env *apis.Env
}

// assemble derives the Env of s. The operation table is tied to the
// resolver, so it starts empty whenever the snapshot changes.
func assemble(s *state) *state {
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	s.env = &apis.Env{
		Config:     s.cfg,
		Ops:        optable.New(s.res, s.log),
		Fields:     fields.Default(),
		Subclasses: subclasses,
		Enums:      enums,
		Logger:     s.log,
	}
	return s
}

// update publishes a copy of the current state modified by fn. When rebuild is
// set, unpinned layers are rebuilt through the (possibly new) builder.
func update(rebuild bool, fn func(s *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	fn(&next)
	next.cfg = config.Normalize(next.cfg)
	if rebuild {
		if !next.preg {
			next.reg = next.bld.BuildRegistry(next.cfg, old.reg)
		}
		if !next.pres {
			next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res)
		}
	}
	st.Store(assemble(&next))
}

// Env returns the environment of the current snapshot. Callers should use one
// Env for a whole operation rather than calling Env repeatedly.
func Env() *apis.Env {
	return st.Load().env
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the configuration and rebuilds unpinned layers.
// cfg is published through config.Normalize.
func SetConfig(cfg apis.Config) {
	update(true, func(s *state) { s.cfg = cfg })
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the builder and rebuilds unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(true, func(s *state) { s.bld = b })
}

// Registry returns the explicit ops registry.
func Registry() apis.OpsRegistry {
	return st.Load().reg
}

// SetRegistry installs and pins reg, rebuilding the resolver unless pinned.
func SetRegistry(reg apis.OpsRegistry) {
	if reg == nil {
		return
	}
	update(false, func(s *state) {
		s.reg = reg
		s.preg = true
		if !s.pres {
			s.res = s.bld.BuildResolver(s.cfg, reg, s.res)
		}
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs and pins res.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(false, func(s *state) {
		s.res = res
		s.pres = true
	})
}

// SetAll replaces every layer in one step. Nil arguments fall back to the
// current builder and configuration; a nil registry or resolver is rebuilt
// and left unpinned. Tests use it to start from a known snapshot.
func SetAll(cfg *apis.Config, reg apis.OpsRegistry, res apis.Resolver, bld apis.Builder) {
	update(false, func(s *state) {
		if cfg != nil {
			s.cfg = config.Normalize(*cfg)
		}
		if bld != nil {
			s.bld = bld
		}
		s.preg, s.pres = reg != nil, res != nil
		if reg == nil {
			reg = s.bld.BuildRegistry(s.cfg, s.reg)
		}
		if res == nil {
			res = s.bld.BuildResolver(s.cfg, reg, s.res)
		}
		s.reg, s.res = reg, res
	})
}

// IsRegistryPinned reports whether the registry survives rebuilds.
func IsRegistryPinned() bool { return st.Load().preg }

// PinRegistry stops the registry from being rebuilt.
func PinRegistry() { update(false, func(s *state) { s.preg = true }) }

// UnpinRegistry lets the registry be rebuilt again.
func UnpinRegistry() { update(false, func(s *state) { s.preg = false }) }

// IsResolverPinned reports whether the resolver survives rebuilds.
func IsResolverPinned() bool { return st.Load().pres }

// PinResolver stops the resolver from being rebuilt.
func PinResolver() { update(false, func(s *state) { s.pres = true }) }

// UnpinResolver lets the resolver be rebuilt again.
func UnpinResolver() { update(false, func(s *state) { s.pres = false }) }

// Logger returns the logger of the current snapshot.
func Logger() *slog.Logger {
	return st.Load().log
}

// SetLogger replaces the logger. A nil logger restores slog.Default().
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	update(false, func(s *state) { s.log = l })
}
