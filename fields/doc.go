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

// Package fields holds declared field tables.
//
// A type declares its reflected fields once, usually from init:
//
//	func init() {
//		fields.DeclareAll(func(d *fields.Decl[Circle]) {
//			fields.Embed(d, func(c *Circle) *ShapeBase { return &c.ShapeBase })
//			fields.Add(d, "radius", func(c *Circle) *float32 { return &c.Radius },
//				inspect.Range(0, 100))
//		})
//	}
//
// Declarations are recorded immediately; the merged table of a (type,
// capability) pair is built on first lookup and never changes afterwards.
package fields
