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

package reflect_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uref "dirpx.dev/rfield/utils/reflect"
)

// Local test types.
type A struct{}
type G[T any] struct{}
type I interface{ M() }
type Level int

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want uref.Family
	}{
		{"int", reflect.TypeFor[int](), uref.Scalar},
		{"named int", reflect.TypeFor[Level](), uref.Scalar},
		{"float32", reflect.TypeFor[float32](), uref.Scalar},
		{"string", reflect.TypeFor[string](), uref.Scalar},
		{"bool", reflect.TypeFor[bool](), uref.Scalar},
		{"ptr", reflect.TypeFor[*A](), uref.Pointer},
		{"iface", reflect.TypeFor[I](), uref.Interface},
		{"slice", reflect.TypeFor[[]A](), uref.Sequence},
		{"array", reflect.TypeFor[[3]float32](), uref.Array},
		{"map string key", reflect.TypeFor[map[string]int](), uref.Map},
		{"map int key", reflect.TypeFor[map[int]int](), uref.Unknown},
		{"struct", reflect.TypeFor[A](), uref.Struct},
		{"chan", reflect.TypeFor[chan int](), uref.Unknown},
		{"func", reflect.TypeFor[func()](), uref.Unknown},
		{"nil", nil, uref.Unknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, uref.Classify(tc.typ))
		})
	}
}

func TestFamilyString(t *testing.T) {
	assert.Equal(t, "polymorphic", uref.Interface.String())
	assert.Equal(t, "object", uref.Struct.String())
	assert.Equal(t, "unknown", uref.Family(200).String())
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want reflect.Type
	}{
		{"plain", reflect.TypeFor[A](), reflect.TypeFor[A]()},
		{"ptr", reflect.TypeFor[*A](), reflect.TypeFor[A]()},
		{"slice of ptr", reflect.TypeFor[[]*A](), reflect.TypeFor[A]()},
		{"map value", reflect.TypeFor[map[string][]A](), reflect.TypeFor[A]()},
		{"builtin", reflect.TypeFor[[]int](), reflect.TypeFor[int]()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := uref.Normalize(reflect.TypeFor[[]struct{}]())
	assert.ErrorIs(t, err, uref.ErrTypeNotNamed)
	_, err = uref.Normalize(nil)
	assert.ErrorIs(t, err, uref.ErrTypeNotNamed)
}

func TestName(t *testing.T) {
	assert.Equal(t, "reflect_test.A", uref.Name(reflect.TypeFor[A]()))
	assert.Equal(t, "reflect_test.G", uref.Name(reflect.TypeFor[G[int]]()))
	assert.Equal(t, "int", uref.Name(reflect.TypeFor[int]()))
	assert.Equal(t, "[]reflect_test.A", uref.Name(reflect.TypeFor[[]A]()))
	assert.Equal(t, "<nil>", uref.Name(nil))
}

// TestName_Concurrent verifies the memoized naming is race-free.
func TestName_Concurrent(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeFor[A](), reflect.TypeFor[*A](), reflect.TypeFor[G[string]](),
		reflect.TypeFor[map[string]A](), reflect.TypeFor[Level](),
	}
	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				if uref.Name(types[i%len(types)]) == "" {
					t.Errorf("empty name for %v", types[i%len(types)])
					return
				}
			}
		}()
	}
	wg.Wait()
}
