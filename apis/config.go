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

package apis

// Config carries read-only knobs consulted by the operation tables.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// IntMin and IntMax bound integer sliders whose field declares no range.
	IntMin, IntMax int

	// FloatMin and FloatMax bound float sliders whose field declares no range.
	FloatMin, FloatMax float64

	// TypeKey and DataKey name the members of a polymorphic envelope.
	TypeKey, DataKey string

	// Indent is the per-level indentation of marshaled documents.
	// Empty produces compact output.
	Indent string
}
