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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/ui/uitest"
)

func TestScalar_IntDecode(t *testing.T) {
	env, _ := newEnv(t)

	cases := []struct {
		in   string
		want int
	}{
		{"42", 42},
		{"-3", -3},
		{"50.0", 50},
		{"1e3", 1000},
	}
	for _, tc := range cases {
		var got int
		require.NoError(t, decode(t, env, tc.in, &got), tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	var i int
	require.ErrorIs(t, decode(t, env, "1.5", &i), apis.ErrNumberRange)
	require.ErrorIs(t, decode(t, env, `"7"`, &i), apis.ErrKindMismatch)

	var small int8
	require.ErrorIs(t, decode(t, env, "300", &small), apis.ErrNumberRange)
	require.NoError(t, decode(t, env, "-128", &small))
	assert.Equal(t, int8(-128), small)
}

func TestScalar_UintDecode(t *testing.T) {
	env, _ := newEnv(t)

	var u uint16
	require.NoError(t, decode(t, env, "65535", &u))
	assert.Equal(t, uint16(65535), u)
	require.ErrorIs(t, decode(t, env, "65536", &u), apis.ErrNumberRange)
	require.ErrorIs(t, decode(t, env, "-1", &u), apis.ErrNumberRange)
	require.NoError(t, decode(t, env, "2e1", &u))
	assert.Equal(t, uint16(20), u)
}

func TestScalar_FloatBoolString(t *testing.T) {
	env, _ := newEnv(t)

	var f float32
	require.NoError(t, decode(t, env, "0.1", &f))
	assert.Equal(t, float32(0.1), f)
	assert.Equal(t, "0.1", encode(t, env, &f))
	require.ErrorIs(t, decode(t, env, "1e39", &f), apis.ErrNumberRange)

	d := 2.0
	assert.Equal(t, "2.0", encode(t, env, &d))

	var b bool
	require.NoError(t, decode(t, env, "true", &b))
	assert.True(t, b)
	require.ErrorIs(t, decode(t, env, "1", &b), apis.ErrKindMismatch)

	var s string
	require.NoError(t, decode(t, env, `"a\tb"`, &s))
	assert.Equal(t, "a\tb", s)
	assert.Equal(t, `"a\tb"`, encode(t, env, &s))
	err := decode(t, env, "null", &s)
	require.ErrorIs(t, err, apis.ErrKindMismatch)
	assert.Equal(t, "expected string, got null", err.Error())
}

func TestScalar_Draw(t *testing.T) {
	env, _ := newEnv(t)
	r := uitest.New()

	i, u, f, b, s := 4, uint8(3), 0.5, false, "x"
	draw(t, env, r, "i", apis.Meta{apis.MetaMin: -100.0, apis.MetaMax: 100.0}, &i)
	draw(t, env, r, "u", apis.Meta{apis.MetaMin: -5.0, apis.MetaMax: 9.0}, &u)
	draw(t, env, r, "f", nil, &f)
	draw(t, env, r, "b", nil, &b)
	draw(t, env, r, "s", nil, &s)

	c, _ := r.Find("slider_int", "i")
	assert.Equal(t, "-100..100=4", c.Detail)
	c, _ = r.Find("slider_int", "u")
	assert.Equal(t, "0..9=3", c.Detail, "unsigned sliders never go below zero")
	c, _ = r.Find("slider_float", "f")
	assert.Equal(t, "0..1=0.5", c.Detail)
	assert.True(t, r.Drawn("checkbox", "b"))
	assert.True(t, r.Drawn("input", "s"))

	r.Frame()
	r.Set("i", -20)
	r.Set("u", 200)
	r.Set("b", true)
	r.Set("s", "y")
	draw(t, env, r, "i", nil, &i)
	draw(t, env, r, "u", nil, &u)
	draw(t, env, r, "b", nil, &b)
	draw(t, env, r, "s", nil, &s)
	assert.Equal(t, -20, i)
	assert.Equal(t, uint8(200), u)
	assert.True(t, b)
	assert.Equal(t, "y", s)

	small := int8(1)
	r.Set("small", 1000)
	draw(t, env, r, "small", nil, &small)
	assert.Equal(t, int8(1), small, "out of range edits are dropped")
	require.NoError(t, r.Check())
}

func TestScalar_BadMetaPanics(t *testing.T) {
	env, _ := newEnv(t)

	n := 1
	assert.Panics(t, func() {
		draw(t, env, uitest.New(), "n", apis.Meta{apis.MetaMax: 3}, &n)
	})
}
