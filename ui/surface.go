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

// Package ui defines the immediate-mode drawing surface the inspector draws on.
//
// Surface is implemented by a rendering backend (an immediate-mode GUI binding)
// and is consumed, never implemented, by rfield. Every Begin* call that returns
// true must be matched by its End* call, and every PushID by PopID; the scoped
// helpers in this package guarantee that on every exit path, including panics.
package ui

// Surface is an immediate-mode drawing surface. Widget calls return whether the
// user interacted with the widget this frame.
type Surface interface {
	// TreeNode draws a collapsible node and reports whether it is open.
	// An open node must be closed with TreePop.
	TreeNode(label string) bool
	TreePop()

	// BeginPopupContextItem opens the context menu attached to the last item.
	// A true result must be closed with EndPopup.
	BeginPopupContextItem(id string) bool
	EndPopup()

	// BeginCombo opens a drop-down. A true result must be closed with EndCombo.
	BeginCombo(label, preview string) bool
	EndCombo()

	PushID(id string)
	PopID()

	SliderInt(label string, v *int, min, max int) bool
	SliderFloat(label string, v *float64, min, max float64) bool
	Checkbox(label string, v *bool) bool
	InputText(label string, buf *string) bool
	Button(label string) bool
	Selectable(label string, selected bool) bool
	MenuItem(label string) bool
	Text(text string)
	SameLine()
	SetItemDefaultFocus()

	// TextBuffer returns the backend-owned transient buffer for a text box in
	// the current ID scope. It survives across frames; it is not model state.
	TextBuffer(id string) *string
}
