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

package ui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rfield/ui"
	"dirpx.dev/rfield/ui/uitest"
)

func TestScopes_Balanced(t *testing.T) {
	r := uitest.New()
	r.OpenPopup("root/menu")
	r.OpenCombo("root/pick")
	r.Press("root/pick/b")

	picked := ""
	ui.WithID(r, "root", func() {
		ui.Tree(r, "root", func() {
			r.MenuItem("clear")
		}, func() {
			ui.Combo(r, "pick", "a", func() {
				for _, s := range []string{"a", "b"} {
					if r.Selectable(s, s == "a") {
						picked = s
					}
				}
			})
		})
	})

	require.NoError(t, r.Check())
	assert.Equal(t, "b", picked)
	assert.True(t, r.Drawn("tree", "root/root"))
	assert.True(t, r.Drawn("menu", "root/menu/clear"))
	assert.Equal(t, []string{"root/pick/a", "root/pick/b"}, r.Keys("selectable"))
}

func TestScopes_ClosedRegionsSkipBodies(t *testing.T) {
	r := uitest.New()
	r.Collapse("node")

	ran := false
	ui.Tree(r, "node", func() { ran = true }, func() { ran = true })
	ui.Combo(r, "combo", "", func() { ran = true })
	ui.ContextMenu(r, "menu", func() { ran = true })

	require.NoError(t, r.Check())
	assert.False(t, ran)
}

func TestScopes_ReleaseOnPanic(t *testing.T) {
	r := uitest.New()

	assert.Panics(t, func() {
		ui.WithID(r, "a", func() {
			ui.Tree(r, "t", nil, func() { panic("boom") })
		})
	})
	require.NoError(t, r.Check())
}

func TestRecorder_DetectsMisuse(t *testing.T) {
	r := uitest.New()
	r.TreeNode("open")
	assert.Error(t, r.Check())

	r = uitest.New()
	r.PushID("x")
	r.TreePop()
	assert.Error(t, r.Check())
}

func TestRecorder_OneShotInput(t *testing.T) {
	r := uitest.New()
	r.Press("ok")
	r.Set("n", 3)

	assert.True(t, r.Button("ok"))
	assert.False(t, r.Button("ok"))

	v := 1
	assert.True(t, r.SliderInt("n", &v, 0, 5))
	assert.Equal(t, 3, v)
	assert.False(t, r.SliderInt("n", &v, 0, 5))
	assert.Empty(t, r.Pending())

	r.Press("never")
	assert.Equal(t, []string{"press never"}, r.Pending())

	b := r.TextBuffer("key")
	*b = "kept"
	assert.Equal(t, "kept", *r.TextBuffer("key"))
	r.Frame()
	assert.Equal(t, "kept", *r.TextBuffer("key"))
	assert.Empty(t, r.Calls())
}
