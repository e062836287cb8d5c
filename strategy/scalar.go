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
	"math"
	"reflect"
	"strconv"

	"github.com/pkg/errors"

	"dirpx.dev/rfield/apis"
	"dirpx.dev/rfield/jsonx"
	"dirpx.dev/rfield/ui"
	uref "dirpx.dev/rfield/utils/reflect"
)

// NewScalar creates an apis.Strategy for bool, integer, float and string kinds.
func NewScalar() apis.Strategy {
	return scalarStrategy{}
}

type scalarStrategy struct{}

// Ensure scalarStrategy implements apis.Strategy.
var _ apis.Strategy = scalarStrategy{}

func (scalarStrategy) TryBuild(cap apis.Capability, t reflect.Type, _ *apis.Env) (any, bool) {
	if !builtin(cap) || !uref.IsScalarKind(t.Kind()) {
		return nil, false
	}
	return &scalarOps{typ: t}, true
}

// scalarOps encodes scalars directly and draws them as a slider, a checkbox or
// a text box.
type scalarOps struct {
	typ reflect.Type
}

func (o *scalarOps) Encode(_ *apis.Env, w *jsonx.Writer, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		w.Bool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.Int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		w.Uint(v.Uint())
	case reflect.Float32:
		w.Float(v.Float(), 32)
	case reflect.Float64:
		w.Float(v.Float(), 64)
	case reflect.String:
		w.String(v.String())
	}
	return w.Err()
}

func (o *scalarOps) Decode(_ *apis.Env, n *jsonx.Node, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		if err := apis.ExpectKind(n, jsonx.Bool); err != nil {
			return err
		}
		v.SetBool(n.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if err := apis.ExpectKind(n, jsonx.Number); err != nil {
			return err
		}
		i, ok := integral(n)
		if !ok || v.OverflowInt(i) {
			return errors.Wrapf(apis.ErrNumberRange, "%s does not fit %s", n.Literal(), uref.Name(o.typ))
		}
		v.SetInt(i)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if err := apis.ExpectKind(n, jsonx.Number); err != nil {
			return err
		}
		u, ok := unsigned(n)
		if !ok || v.OverflowUint(u) {
			return errors.Wrapf(apis.ErrNumberRange, "%s does not fit %s", n.Literal(), uref.Name(o.typ))
		}
		v.SetUint(u)

	case reflect.Float32, reflect.Float64:
		if err := apis.ExpectKind(n, jsonx.Number); err != nil {
			return err
		}
		f, err := n.Float(o.typ.Bits())
		if err != nil {
			return errors.Wrapf(apis.ErrNumberRange, "%s does not fit %s", n.Literal(), uref.Name(o.typ))
		}
		v.SetFloat(f)

	case reflect.String:
		if err := apis.ExpectKind(n, jsonx.String); err != nil {
			return err
		}
		v.SetString(n.Str())
	}
	return nil
}

// integral reads n as an int64. Integral literals in exponent or fraction form
// ("50.0", "1e3") are accepted.
func integral(n *jsonx.Node) (int64, bool) {
	if i, err := n.Int(); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(n.Literal(), 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// unsigned reads n as a uint64, with the same leniency as integral.
func unsigned(n *jsonx.Node) (uint64, bool) {
	if u, err := n.Uint(); err == nil {
		return u, true
	}
	f, err := strconv.ParseFloat(n.Literal(), 64)
	if err != nil || f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
		return 0, false
	}
	return uint64(f), true
}

func (o *scalarOps) Draw(env *apis.Env, s ui.Surface, label string, meta apis.Meta, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		b := v.Bool()
		if s.Checkbox(label, &b) {
			v.SetBool(b)
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		lo, hi := intRange(env, meta)
		x := clampInt(v.Int())
		if s.SliderInt(label, &x, lo, hi) && !v.OverflowInt(int64(x)) {
			v.SetInt(int64(x))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		lo, hi := intRange(env, meta)
		x := math.MaxInt
		if v.Uint() <= math.MaxInt {
			x = int(v.Uint())
		}
		if s.SliderInt(label, &x, max(lo, 0), hi) && x >= 0 && !v.OverflowUint(uint64(x)) {
			v.SetUint(uint64(x))
		}

	case reflect.Float32, reflect.Float64:
		lo, hi := floatRange(env, meta)
		x := v.Float()
		if s.SliderFloat(label, &x, lo, hi) && !v.OverflowFloat(x) {
			v.SetFloat(x)
		}

	case reflect.String:
		str := v.String()
		if s.InputText(label, &str) {
			v.SetString(str)
		}
	}
	return nil
}

func clampInt(i int64) int {
	switch {
	case i > math.MaxInt:
		return math.MaxInt
	case i < math.MinInt:
		return math.MinInt
	}
	return int(i)
}

// intRange returns the slider bounds of an integer field: its metadata, or the
// configured defaults.
func intRange(env *apis.Env, meta apis.Meta) (int, int) {
	lo := apis.MetaValue(meta, apis.MetaMin, float64(env.Config.IntMin))
	hi := apis.MetaValue(meta, apis.MetaMax, float64(env.Config.IntMax))
	return int(lo), int(hi)
}

// floatRange returns the slider bounds of a float field.
func floatRange(env *apis.Env, meta apis.Meta) (float64, float64) {
	lo := apis.MetaValue(meta, apis.MetaMin, env.Config.FloatMin)
	hi := apis.MetaValue(meta, apis.MetaMax, env.Config.FloatMax)
	return lo, hi
}
