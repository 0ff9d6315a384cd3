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

package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name        string
		req         Request
		contains    []string
		notContains []string
	}{
		{
			name: "full_request",
			req: Request{
				Path:            "web/src/utils/base-path.ts",
				OriginalContent: "export const base = '/';",
				Instruction:     "serve under /apps/memos",
				Description:     "base path helper",
			},
			contains: []string{
				"Task: base path helper",
				"Instruction: serve under /apps/memos",
				"File: web/src/utils/base-path.ts",
				"export const base = '/';\n",
				"do not wrap the result in markdown or code fences",
			},
		},
		{
			name: "no_description",
			req: Request{
				OriginalContent: "def f(): pass\n",
				Instruction:     "rename f to g",
			},
			contains:    []string{"Instruction: rename f to g", "def f(): pass\n"},
			notContains: []string{"Task:", "File:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPrompt(tt.req)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, got, unwanted)
			}
			assert.Equal(t, 1, strings.Count(got, tt.req.OriginalContent), "original content should appear once")
		})
	}
}
