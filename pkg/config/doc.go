// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package config loads the ordered list of edit descriptors for a run.

🎯 Purpose:
- Reads a descriptor file (YAML, JSON or HCL)
- Validates every descriptor up front
- Normalizes target paths relative to the project root

🔄 Flow:
1. Reads the descriptor file
2. Picks a parser by file extension
3. Decodes the top-level modifications list
4. Validates and cleans each entry in order

⚡ Rules:
- A missing file, unknown extension, malformed document or absent
  modifications key is a ConfigError
- An empty modifications list is valid and produces an empty batch
- Each entry needs a relative file and a non-empty instruction; the
  description is optional
- Order is preserved exactly as declared

🔍 Example:

	modifications:
	  - file: web/src/utils/base-path.ts
	    instruction: serve the app under /apps/memos
	    description: base path helper

	batch, err := config.Load(ctx, "configure_subpath.yaml")
	if err != nil {
		return err // always a *fault.Error of kind ConfigError
	}
*/
package config
