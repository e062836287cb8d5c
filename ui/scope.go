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

package ui

// WithID runs fn inside an ID scope.
func WithID(s Surface, id string, fn func()) {
	s.PushID(id)
	defer s.PopID()
	fn()
}

// Tree draws a tree node. menu, if non-nil, runs first as the node's context
// menu body; body runs only while the node is open.
func Tree(s Surface, label string, menu func(), body func()) {
	open := s.TreeNode(label)
	if open {
		defer s.TreePop()
	}
	if menu != nil {
		ContextMenu(s, "menu", menu)
	}
	if open && body != nil {
		body()
	}
}

// ContextMenu runs fn while the context popup attached to the last item is open.
func ContextMenu(s Surface, id string, fn func()) {
	if !s.BeginPopupContextItem(id) {
		return
	}
	defer s.EndPopup()
	fn()
}

// Combo runs fn while the drop-down is open.
func Combo(s Surface, label, preview string, fn func()) {
	if !s.BeginCombo(label, preview) {
		return
	}
	defer s.EndCombo()
	fn()
}
