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

package builder_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/builder"
	"dirpx.dev/rfield/config"
	"dirpx.dev/rfield/fields"
	"dirpx.dev/rfield/jsonx"
	"dirpx.dev/rfield/registry"
)

// userType declares a serialization table.
type userType struct{ N int }

// plainType declares nothing.
type plainType struct{}

// selfType serializes itself.
type selfType struct{}

func (*selfType) EncodeJSON(w *jsonx.Writer) error { w.Null(); return nil }
func (*selfType) DecodeJSON(*jsonx.Node) error     { return nil }

type level int

// explicitCodec is a registered handler.
type explicitCodec struct{}

func (explicitCodec) Encode(*apis.Env, *jsonx.Writer, reflect.Value) error { return nil }
func (explicitCodec) Decode(*apis.Env, *jsonx.Node, reflect.Value) error   { return nil }

func newEnv(t testing.TB) *apis.Env {
	t.Helper()
	ft := fields.NewRegistry()
	fields.DeclareIn(ft, apis.Serialization, func(d *fields.Decl[userType]) {
		fields.Add(d, "n", func(u *userType) *int { return &u.N })
	})
	enums := registry.NewEnums()
	require.NoError(t, enums.Register(reflect.TypeFor[level](), []string{"Low"}, []reflect.Value{reflect.ValueOf(level(0))}))
	return &apis.Env{
		Config:     config.DefaultConfig(),
		Fields:     ft,
		Subclasses: registry.NewSubclasses(),
		Enums:      enums,
	}
}

// TestBuildRegistry_CopiesPrevious asserts that entries survive a rebuild.
func TestBuildRegistry_CopiesPrevious(t *testing.T) {
	b := builder.New()

	prev := b.BuildRegistry(config.DefaultConfig(), nil)
	require.NotNil(t, prev)
	require.NoError(t, prev.Register(apis.Serialization, reflect.TypeFor[plainType](), explicitCodec{}))

	next := b.BuildRegistry(config.DefaultConfig(), prev)
	require.NotNil(t, next)
	assert.NotSame(t, prev, next)
	assert.Equal(t, 1, next.Count())
	_, ok := next.Lookup(apis.Serialization, reflect.TypeFor[plainType]())
	assert.True(t, ok)
}

// TestBuildResolver_Order verifies resolution priority: explicit registration,
// then self-implemented, then enum before scalar, then the shape families.
func TestBuildResolver_Order(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	ops := b.BuildRegistry(cfg, nil)
	require.NoError(t, ops.Register(apis.Serialization, reflect.TypeFor[int](), explicitCodec{}))

	res := b.BuildResolver(cfg, ops, nil)
	require.NotNil(t, res)
	env := newEnv(t)

	cases := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"explicit wins over scalar", reflect.TypeFor[int](), "builder_test.explicitCodec"},
		{"self", reflect.TypeFor[selfType](), "strategy.selfCodec"},
		{"enum before scalar", reflect.TypeFor[level](), "*strategy.enumOps"},
		{"scalar", reflect.TypeFor[float32](), "*strategy.scalarOps"},
		{"pointer", reflect.TypeFor[*userType](), "*strategy.pointerOps"},
		{"interface", reflect.TypeFor[any](), "*strategy.polyOps"},
		{"sequence", reflect.TypeFor[[]int](), "*strategy.sequenceOps"},
		{"array", reflect.TypeFor[[3]int](), "*strategy.arrayOps"},
		{"map", reflect.TypeFor[map[string]int](), "*strategy.mapOps"},
		{"object", reflect.TypeFor[userType](), "*strategy.objectOps"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := res.Resolve(apis.Serialization, tc.typ, env)
			require.NoError(t, err)
			assert.Equal(t, tc.want, reflect.TypeOf(got).String())
		})
	}
}

// TestBuildResolver_NoHandler covers shapes no family accepts.
func TestBuildResolver_NoHandler(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	ops := b.BuildRegistry(cfg, nil)
	res := b.BuildResolver(cfg, ops, nil)
	env := newEnv(t)

	for _, typ := range []reflect.Type{
		reflect.TypeFor[plainType](),
		reflect.TypeFor[map[int]string](),
		reflect.TypeFor[chan int](),
		reflect.TypeFor[complex64](),
	} {
		_, err := res.Resolve(apis.Serialization, typ, env)
		assert.ErrorIs(t, err, apis.ErrNoHandler, "%v", typ)
	}

	// Capabilities other than the built-ins fall through every family.
	_, err := res.Resolve("schema", reflect.TypeFor[int](), env)
	assert.ErrorIs(t, err, apis.ErrNoHandler)
}

// TestBuildResolver_Concurrency_Smoke hammers the resolver in parallel.
func TestBuildResolver_Concurrency_Smoke(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	ops := b.BuildRegistry(cfg, nil)
	res := b.BuildResolver(cfg, ops, nil)
	env := newEnv(t)

	types := []reflect.Type{
		reflect.TypeFor[userType](),
		reflect.TypeFor[*userType](),
		reflect.TypeFor[[]userType](),
		reflect.TypeFor[map[string]*userType](),
		reflect.TypeFor[level](),
	}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				tt := types[(i+id)%len(types)]
				if _, err := res.Resolve(apis.Serialization, tt, env); err != nil {
					t.Errorf("resolve %v: %v", tt, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()
