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

package strategy_test

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/builder"
	"dirpx.dev/rfield/config"
	"dirpx.dev/rfield/fields"
	"dirpx.dev/rfield/jsonx"
	"dirpx.dev/rfield/optable"
	"dirpx.dev/rfield/registry"
	"dirpx.dev/rfield/ui"
)

// released counts Release calls on owned test instances.
var released atomic.Int64

type level int

const (
	low level = iota
	high
)

func (l level) String() string { return [...]string{"Low", "High"}[l] }

// item is an owned object with a release hook.
type item struct{ N int }

func (i *item) Release() { released.Add(1) }

type shape interface{ sides() int }

type circle struct{ Radius float32 }

func (*circle) sides() int { return 0 }
func (*circle) Release()   { released.Add(1) }

// dot is a value-held subclass.
type dot struct{ X int }

func (dot) sides() int { return 1 }

// node is self-referential through an owning pointer.
type node struct {
	Val  int
	Next *node
}

// stamp serializes and draws itself.
type stamp struct{ unix int64 }

func (s *stamp) EncodeJSON(w *jsonx.Writer) error {
	w.String("t" + strconv.FormatInt(s.unix, 10))
	return nil
}

func (s *stamp) DecodeJSON(n *jsonx.Node) error {
	if err := apis.ExpectKind(n, jsonx.String); err != nil {
		return err
	}
	u, err := strconv.ParseInt(strings.TrimPrefix(n.Str(), "t"), 10, 64)
	if err != nil {
		return err
	}
	s.unix = u
	return nil
}

func (s *stamp) DrawInspector(sf ui.Surface, label string, _ apis.Meta) error {
	ui.WithID(sf, label, func() { sf.Text(fmt.Sprintf("%s=%d", label, s.unix)) })
	return nil
}

// celsius gets explicit serialization ops and built-in inspector ops.
type celsius float64

type celsiusCodec struct{}

func (celsiusCodec) Encode(_ *apis.Env, w *jsonx.Writer, v reflect.Value) error {
	w.String(strconv.FormatFloat(v.Float(), 'f', -1, 64) + "C")
	return nil
}

func (celsiusCodec) Decode(_ *apis.Env, n *jsonx.Node, v reflect.Value) error {
	f, err := strconv.ParseFloat(strings.TrimSuffix(n.Str(), "C"), 64)
	if err != nil {
		return err
	}
	v.SetFloat(f)
	return nil
}

// model touches every family through DrawFields/EncodeFields.
type model struct {
	Level level
	Temp  celsius
	Stamp stamp
	Node  *node
	Shape shape
}

// crate owns instances below its own level.
type crate struct {
	Item  *item
	Shape shape
	Nodes []*node
}

// badMeta declares a range of the wrong Go type.
type badMeta struct{ N int }

func both[T any](ft *fields.Registry, fn func(d *fields.Decl[T])) {
	fields.DeclareIn(ft, apis.Serialization, fn)
	fields.DeclareIn(ft, apis.Inspector, fn)
}

func newEnv(t testing.TB) (*apis.Env, apis.OpsRegistry) {
	t.Helper()
	released.Store(0)

	ft := fields.NewRegistry()
	both(ft, func(d *fields.Decl[item]) {
		fields.Add(d, "n", func(i *item) *int { return &i.N })
	})
	both(ft, func(d *fields.Decl[circle]) {
		fields.Add(d, "radius", func(c *circle) *float32 { return &c.Radius })
	})
	both(ft, func(d *fields.Decl[dot]) {
		fields.Add(d, "x", func(p *dot) *int { return &p.X })
	})
	both(ft, func(d *fields.Decl[node]) {
		fields.Add(d, "val", func(n *node) *int { return &n.Val })
		fields.Add(d, "next", func(n *node) **node { return &n.Next })
	})
	both(ft, func(d *fields.Decl[model]) {
		fields.Add(d, "level", func(m *model) *level { return &m.Level })
		fields.Add(d, "temp", func(m *model) *celsius { return &m.Temp })
		fields.Add(d, "stamp", func(m *model) *stamp { return &m.Stamp })
		fields.Add(d, "node", func(m *model) **node { return &m.Node })
		fields.Add(d, "shape", func(m *model) *shape { return &m.Shape })
	})
	both(ft, func(d *fields.Decl[crate]) {
		fields.Add(d, "item", func(c *crate) **item { return &c.Item })
		fields.Add(d, "shape", func(c *crate) *shape { return &c.Shape })
		fields.Add(d, "nodes", func(c *crate) *[]*node { return &c.Nodes })
	})
	fields.DeclareIn(ft, apis.Inspector, func(d *fields.Decl[badMeta]) {
		fields.Add(d, "n", func(b *badMeta) *int { return &b.N }, fields.With(apis.MetaMin, 3))
	})

	base := reflect.TypeFor[shape]()
	subs := registry.NewSubclasses()
	require.NoError(t, subs.Register(base, "Circle", reflect.TypeFor[*circle](), func() reflect.Value {
		return reflect.ValueOf(&circle{})
	}))
	require.NoError(t, subs.Register(base, "Dot", reflect.TypeFor[dot](), func() reflect.Value {
		return reflect.ValueOf(dot{})
	}))

	enums := registry.NewEnums()
	require.NoError(t, enums.Register(reflect.TypeFor[level](),
		[]string{"Low", "High"},
		[]reflect.Value{reflect.ValueOf(low), reflect.ValueOf(high)},
	))

	cfg := config.NewConfig(config.WithIndent(""))
	b := builder.New()
	reg := b.BuildRegistry(cfg, nil)
	require.NoError(t, reg.Register(apis.Serialization, reflect.TypeFor[celsius](), celsiusCodec{}))

	env := &apis.Env{Config: cfg, Fields: ft, Subclasses: subs, Enums: enums}
	env.Ops = optable.New(b.BuildResolver(cfg, reg, nil), nil)
	return env, reg
}

// fullCrate owns two instances with release hooks.
func fullCrate() crate {
	return crate{
		Item:  &item{N: 1},
		Shape: &circle{Radius: 2},
		Nodes: []*node{{Val: 1, Next: &node{Val: 2}}},
	}
}

func parse(t testing.TB, s string) *jsonx.Node {
	t.Helper()
	n, err := jsonx.Parse([]byte(s))
	require.NoError(t, err)
	return n
}

func decode[T any](t testing.TB, env *apis.Env, in string, dst *T) error {
	t.Helper()
	c, err := env.Codec(reflect.TypeFor[T]())
	require.NoError(t, err)
	return c.Decode(env, parse(t, in), reflect.ValueOf(dst).Elem())
}

func encode[T any](t testing.TB, env *apis.Env, v *T) string {
	t.Helper()
	c, err := env.Codec(reflect.TypeFor[T]())
	require.NoError(t, err)
	w := jsonx.NewWriter("")
	require.NoError(t, c.Encode(env, w, reflect.ValueOf(v).Elem()))
	data, err := w.Bytes()
	require.NoError(t, err)
	return string(data)
}

func draw[T any](t testing.TB, env *apis.Env, s ui.Surface, label string, meta apis.Meta, v *T) {
	t.Helper()
	d, err := env.Drawer(reflect.TypeFor[T]())
	require.NoError(t, err)
	require.NoError(t, d.Draw(env, s, label, meta, reflect.ValueOf(v).Elem()))
}
