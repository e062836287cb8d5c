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

// Capability names an orthogonal concern a type can opt into by declaring a
// field table for it. Capabilities are independent: a type may declare tables
// for zero, one or several of them.
type Capability string

const (
	// Serialization is the JSON encode/decode capability. Its ops implement Codec.
	Serialization Capability = "serialization"
	// Inspector is the property-inspector UI capability. Its ops implement Drawer.
	Inspector Capability = "inspector"
)

// String returns the capability name.
func (c Capability) String() string { return string(c) }
