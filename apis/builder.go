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

// Builder assembles the replaceable layers of a snapshot.
type Builder interface {
	// BuildRegistry constructs the explicit ops registry. prev is the registry
	// being replaced, if any; its entries should carry over.
	BuildRegistry(cfg Config, prev OpsRegistry) OpsRegistry

	// BuildResolver constructs a Resolver over ops. prev is the resolver being
	// replaced, if any.
	BuildResolver(cfg Config, ops OpsRegistry, prev Resolver) Resolver
}
