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

package schema_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/config"
	"dirpx.dev/rfield/fields"
	"dirpx.dev/rfield/registry"
	"dirpx.dev/rfield/schema"
)

type mode int

type shape interface{ isShape() }

type circle struct{}

func (*circle) isShape() {}

type square struct{}

func (*square) isShape() {}

type item struct{ N int }

func (*item) EntityDescription() string { return "a counted item" }

type holder struct {
	Shapes []shape
	Mode   mode
	Items  map[string]*item
}

func newEnv(t testing.TB) *apis.Env {
	t.Helper()
	ft := fields.NewRegistry()
	fields.DeclareIn(ft, apis.Serialization, func(d *fields.Decl[item]) {
		fields.Add(d, "n", func(i *item) *int { return &i.N })
	})
	fields.DeclareIn(ft, apis.Serialization, func(d *fields.Decl[holder]) {
		fields.Add(d, "shapes", func(h *holder) *[]shape { return &h.Shapes })
		fields.Add(d, "mode", func(h *holder) *mode { return &h.Mode })
		fields.Add(d, "items", func(h *holder) *map[string]*item { return &h.Items })
	})
	fields.DeclareIn(ft, apis.Inspector, func(d *fields.Decl[item]) {
		fields.Add(d, "n", func(i *item) *int { return &i.N },
			fields.With(apis.MetaMin, 0.0), fields.With(apis.MetaMax, 2.5))
	})

	subs := registry.NewSubclasses()
	base := reflect.TypeFor[shape]()
	require.NoError(t, subs.Register(base, "Circle", reflect.TypeFor[*circle](), func() reflect.Value { return reflect.ValueOf(&circle{}) }))
	require.NoError(t, subs.Register(base, "Square", reflect.TypeFor[*square](), func() reflect.Value { return reflect.ValueOf(&square{}) }))

	enums := registry.NewEnums()
	require.NoError(t, enums.Register(reflect.TypeFor[mode](), []string{"A", "B"},
		[]reflect.Value{reflect.ValueOf(mode(0)), reflect.ValueOf(mode(1))}))

	return &apis.Env{Config: config.DefaultConfig(), Fields: ft, Subclasses: subs, Enums: enums}
}

func TestBuild_AllTypes(t *testing.T) {
	env := newEnv(t)

	doc, err := schema.Build(env, apis.Serialization)
	require.NoError(t, err)

	want := &schema.Document{
		Capability: "serialization",
		Types: []schema.Type{
			{
				Name: "schema_test.holder",
				Fields: []schema.Field{
					{Name: "shapes", Type: "[]schema_test.shape", Shape: "sequence", Elem: "schema_test.shape", Subclasses: []string{"Circle", "Square"}},
					{Name: "mode", Type: "schema_test.mode", Shape: "enum", Enum: []string{"A", "B"}},
					{Name: "items", Type: "map[string]*schema_test.item", Shape: "map", Elem: "schema_test.item"},
				},
			},
			{
				Name:        "schema_test.item",
				Description: "a counted item",
				Fields:      []schema.Field{{Name: "n", Type: "int", Shape: "scalar"}},
			},
		},
	}
	assert.Equal(t, want, doc)
}

func TestYAML_RoundTrip(t *testing.T) {
	env := newEnv(t)

	data, err := schema.YAML(env, apis.Inspector, reflect.TypeFor[item]())
	require.NoError(t, err)
	assert.Contains(t, string(data), "capability: inspector")
	assert.Contains(t, string(data), "max: 2.5")
	assert.Contains(t, string(data), "description: a counted item")

	var doc schema.Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Len(t, doc.Types, 1)
	require.Len(t, doc.Types[0].Fields, 1)
	f := doc.Types[0].Fields[0]
	assert.Equal(t, "n", f.Name)
	assert.Equal(t, 2.5, f.Meta["max"])
	assert.EqualValues(t, 0, f.Meta["min"])
}

func TestBuild_MissingTable(t *testing.T) {
	env := newEnv(t)

	_, err := schema.Build(env, apis.Inspector, reflect.TypeFor[holder]())
	require.ErrorIs(t, err, apis.ErrNoFieldTable)
	assert.Contains(t, err.Error(), "schema_test.holder")
}
