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

// Package rfield lets Go types declare a table of named fields once and have
// that table drive two independent capabilities: JSON serialization (package
// serial) and an editable property inspector (package inspect).
//
// # Design
//
// Dispatch is open-ended. For every (capability, shape) pair, where a shape is
// a Go type such as float32, *Circle, []Shape or map[string]int, the engine
// builds one operation table on first use and caches it for the lifetime of
// the snapshot. Operation tables come from a chain of strategies:
//
//  1. ops registered explicitly (RegisterOps),
//  2. types implementing the capability themselves (apis.SelfCodec, apis.SelfDrawer),
//  3. registered enumerations (RegisterEnum),
//  4. scalars, owning pointers, interfaces holding registered subclasses,
//     slices, arrays and string-keyed maps,
//  5. structs with a declared field table (package fields).
//
// Third-party code adds shapes by registering ops or by installing a Builder
// with extra strategies; nothing in the core switches over a closed type list.
//
// # Snapshot
//
// The package keeps a read-mostly global snapshot holding the Config, the
// explicit ops registry, the resolver (strategy chain), the Builder that makes
// both, a logger, and the operation table derived from them. Readers load the
// snapshot atomically and never lock:
//
//	env := rfield.Env()
//
// Writers (SetConfig, SetBuilder, SetRegistry, SetResolver, SetLogger, SetAll)
// take a build lock, derive a new snapshot and publish it. SetRegistry and
// SetResolver pin their layer: later configuration changes rebuild the other
// layers only, until UnpinRegistry / UnpinResolver.
//
// Subclass and enumeration registries and the field tables are process-wide
// and shared by all snapshots. Fill them during initialization:
//
//	func init() {
//		rfield.MustRegisterSubclass[Shape]("Circle", func() *Circle { return &Circle{} })
//		rfield.MustRegisterEnum(E1, E2)
//	}
//
// # Ownership
//
// Pointer and interface fields own their targets. Whenever the engine discards
// an owned instance (decoding over it, a UI delete, clearing a container) it
// calls the instance's Release method if it implements apis.Releaser, exactly
// once. Owned graphs must be trees; cycles are not detected.
package rfield
