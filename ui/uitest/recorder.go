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

// Package uitest provides a scripted, recording ui.Surface for tests.
//
// Widgets are addressed by key: the current ID path (PushID ids, open popup
// ids and open combo labels joined with "/") followed by the widget label.
// Tree nodes are open unless collapsed; popups and combos are closed unless
// opened. Presses and value edits are one-shot: they fire on the first
// matching widget and are then consumed.
package uitest

import (
	"fmt"
	"strings"

	"dirpx.dev/rfield/ui"
)

// Call is a single recorded widget or region call.
type Call struct {
	Kind   string
	Key    string
	Detail string
}

// String formats the call for failure messages.
func (c Call) String() string {
	if c.Detail == "" {
		return c.Kind + " " + c.Key
	}
	return c.Kind + " " + c.Key + " " + c.Detail
}

// Recorder is a ui.Surface that records every call and replays scripted input.
type Recorder struct {
	ids     []string
	regions []string
	calls   []Call
	err     error

	press     map[string]bool
	values    map[string]any
	popups    map[string]bool
	combos    map[string]bool
	collapsed map[string]bool
	buffers   map[string]*string
}

// Ensure Recorder implements ui.Surface.
var _ ui.Surface = (*Recorder)(nil)

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{
		press:     map[string]bool{},
		values:    map[string]any{},
		popups:    map[string]bool{},
		combos:    map[string]bool{},
		collapsed: map[string]bool{},
		buffers:   map[string]*string{},
	}
}

// Press makes the next Button, MenuItem or Selectable with key report a click.
func (r *Recorder) Press(key string) { r.press[key] = true }

// Set makes the next slider, checkbox or text input with key take v.
func (r *Recorder) Set(key string, v any) { r.values[key] = v }

// OpenPopup keeps the context popup with key open.
func (r *Recorder) OpenPopup(key string) { r.popups[key] = true }

// OpenCombo keeps the combo with key open.
func (r *Recorder) OpenCombo(key string) { r.combos[key] = true }

// Collapse closes the tree node with key.
func (r *Recorder) Collapse(key string) { r.collapsed[key] = true }

// Frame clears the call log and the scripted one-shot input.
func (r *Recorder) Frame() {
	r.calls = nil
	r.press = map[string]bool{}
	r.values = map[string]any{}
}

// Calls returns the calls recorded since the last Frame.
func (r *Recorder) Calls() []Call { return r.calls }

// Drawn reports whether a call of kind with key was recorded.
func (r *Recorder) Drawn(kind, key string) bool {
	_, ok := r.Find(kind, key)
	return ok
}

// Find returns the first recorded call of kind with key.
func (r *Recorder) Find(kind, key string) (Call, bool) {
	for _, c := range r.calls {
		if c.Kind == kind && c.Key == key {
			return c, true
		}
	}
	return Call{}, false
}

// Keys returns the keys of all recorded calls of kind, in call order.
func (r *Recorder) Keys(kind string) []string {
	var out []string
	for _, c := range r.calls {
		if c.Kind == kind {
			out = append(out, c.Key)
		}
	}
	return out
}

// Pending reports scripted input that no widget consumed.
func (r *Recorder) Pending() []string {
	var out []string
	for k := range r.press {
		out = append(out, "press "+k)
	}
	for k := range r.values {
		out = append(out, "set "+k)
	}
	return out
}

// Check returns the first misuse (unbalanced or mismatched region calls).
func (r *Recorder) Check() error {
	if r.err != nil {
		return r.err
	}
	if len(r.regions) != 0 {
		return fmt.Errorf("uitest: %d region(s) left open: %s", len(r.regions), strings.Join(r.regions, ","))
	}
	if len(r.ids) != 0 {
		return fmt.Errorf("uitest: ID stack not empty: %s", strings.Join(r.ids, "/"))
	}
	return nil
}

func (r *Recorder) key(label string) string {
	if len(r.ids) == 0 {
		return label
	}
	return strings.Join(r.ids, "/") + "/" + label
}

func (r *Recorder) record(kind, key, detail string) {
	r.calls = append(r.calls, Call{Kind: kind, Key: key, Detail: detail})
}

func (r *Recorder) open(region string) { r.regions = append(r.regions, region) }

func (r *Recorder) close(region string) {
	n := len(r.regions)
	if n == 0 || r.regions[n-1] != region {
		if r.err == nil {
			r.err = fmt.Errorf("uitest: close %s does not match open regions %v", region, r.regions)
		}
		return
	}
	r.regions = r.regions[:n-1]
}

func (r *Recorder) popID(region string) {
	r.close(region)
	if len(r.ids) > 0 {
		r.ids = r.ids[:len(r.ids)-1]
	}
}

func (r *Recorder) TreeNode(label string) bool {
	k := r.key(label)
	open := !r.collapsed[k]
	r.record("tree", k, fmt.Sprintf("open=%v", open))
	if open {
		r.open("tree")
	}
	return open
}

func (r *Recorder) TreePop() { r.close("tree") }

func (r *Recorder) BeginPopupContextItem(id string) bool {
	k := r.key(id)
	open := r.popups[k]
	r.record("popup", k, fmt.Sprintf("open=%v", open))
	if open {
		r.open("popup")
		r.ids = append(r.ids, id)
	}
	return open
}

func (r *Recorder) EndPopup() { r.popID("popup") }

func (r *Recorder) BeginCombo(label, preview string) bool {
	k := r.key(label)
	open := r.combos[k]
	r.record("combo", k, "preview="+preview)
	if open {
		r.open("combo")
		r.ids = append(r.ids, label)
	}
	return open
}

func (r *Recorder) EndCombo() { r.popID("combo") }

func (r *Recorder) PushID(id string) {
	r.open("id")
	r.ids = append(r.ids, id)
}

func (r *Recorder) PopID() { r.popID("id") }

func (r *Recorder) take(key string) (any, bool) {
	v, ok := r.values[key]
	if ok {
		delete(r.values, key)
	}
	return v, ok
}

func (r *Recorder) clicked(key string) bool {
	if r.press[key] {
		delete(r.press, key)
		return true
	}
	return false
}

func (r *Recorder) SliderInt(label string, v *int, min, max int) bool {
	k := r.key(label)
	changed := false
	if nv, ok := r.take(k); ok {
		*v = nv.(int)
		changed = true
	}
	r.record("slider_int", k, fmt.Sprintf("%d..%d=%d", min, max, *v))
	return changed
}

func (r *Recorder) SliderFloat(label string, v *float64, min, max float64) bool {
	k := r.key(label)
	changed := false
	if nv, ok := r.take(k); ok {
		*v = nv.(float64)
		changed = true
	}
	r.record("slider_float", k, fmt.Sprintf("%g..%g=%g", min, max, *v))
	return changed
}

func (r *Recorder) Checkbox(label string, v *bool) bool {
	k := r.key(label)
	changed := false
	if nv, ok := r.take(k); ok {
		*v = nv.(bool)
		changed = true
	}
	r.record("checkbox", k, fmt.Sprintf("%v", *v))
	return changed
}

func (r *Recorder) InputText(label string, buf *string) bool {
	k := r.key(label)
	changed := false
	if nv, ok := r.take(k); ok {
		*buf = nv.(string)
		changed = true
	}
	r.record("input", k, *buf)
	return changed
}

func (r *Recorder) Button(label string) bool {
	k := r.key(label)
	r.record("button", k, "")
	return r.clicked(k)
}

func (r *Recorder) Selectable(label string, selected bool) bool {
	k := r.key(label)
	r.record("selectable", k, fmt.Sprintf("selected=%v", selected))
	return r.clicked(k)
}

func (r *Recorder) MenuItem(label string) bool {
	k := r.key(label)
	r.record("menu", k, "")
	return r.clicked(k)
}

func (r *Recorder) Text(text string) { r.record("text", strings.Join(r.ids, "/"), text) }

func (r *Recorder) SameLine() {}

func (r *Recorder) SetItemDefaultFocus() {}

func (r *Recorder) TextBuffer(id string) *string {
	k := r.key(id)
	b, ok := r.buffers[k]
	if !ok {
		b = new(string)
		r.buffers[k] = b
	}
	return b
}
