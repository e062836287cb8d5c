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

package resolver_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/resolver"
)

// kindStrategy handles one reflect.Kind and records that it was asked.
type kindStrategy struct {
	kind  reflect.Kind
	ops   any
	asked *[]string
	name  string
}

func (s kindStrategy) TryBuild(_ apis.Capability, t reflect.Type, _ *apis.Env) (any, bool) {
	*s.asked = append(*s.asked, s.name)
	if t.Kind() != s.kind {
		return nil, false
	}
	return s.ops, true
}

func TestChain_Order(t *testing.T) {
	var asked []string
	res := resolver.New(
		nil,
		kindStrategy{kind: reflect.Int, ops: "first", asked: &asked, name: "a"},
		kindStrategy{kind: reflect.Int, ops: "second", asked: &asked, name: "b"},
		kindStrategy{kind: reflect.String, ops: "str", asked: &asked, name: "c"},
	)

	ops, err := res.Resolve(apis.Serialization, reflect.TypeFor[int](), nil)
	require.NoError(t, err)
	assert.Equal(t, "first", ops)
	assert.Equal(t, []string{"a"}, asked, "chain stops at the first handler")

	asked = nil
	ops, err = res.Resolve(apis.Serialization, reflect.TypeFor[string](), nil)
	require.NoError(t, err)
	assert.Equal(t, "str", ops)
	assert.Equal(t, []string{"a", "b", "c"}, asked)
}

func TestChain_NoHandler(t *testing.T) {
	var asked []string
	res := resolver.New(kindStrategy{kind: reflect.Int, ops: 1, asked: &asked})

	_, err := res.Resolve(apis.Inspector, reflect.TypeFor[chan int](), nil)
	assert.ErrorIs(t, err, apis.ErrNoHandler)
	assert.Contains(t, err.Error(), "inspector")
	assert.Contains(t, err.Error(), "chan int")

	_, err = res.Resolve(apis.Inspector, nil, nil)
	assert.ErrorIs(t, err, apis.ErrNilType)
}

func TestChain_NilOps(t *testing.T) {
	var asked []string
	res := resolver.New(kindStrategy{kind: reflect.Int, ops: nil, asked: &asked})
	_, err := res.Resolve(apis.Serialization, reflect.TypeFor[int](), nil)
	assert.ErrorIs(t, err, apis.ErrBadOps)
}
