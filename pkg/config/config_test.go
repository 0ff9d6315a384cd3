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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/editrc/pkg/fault"
)

func writeDescriptorFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		errContains string
		check       func(t *testing.T, batch *EditBatch)
	}{
		{
			name:     "valid_yaml",
			filename: "configure_subpath.yaml",
			config: `
modifications:
  - file: web/src/utils/base-path.ts
    instruction: serve the app under /apps/memos
    description: base path helper
  - file: ./server/router/frontend/frontend.go
    instruction: mount the frontend under /apps/memos
`,
			check: func(t *testing.T, batch *EditBatch) {
				require.Equal(t, 2, batch.Len(), "should have 2 descriptors")
				assert.Equal(t, "web/src/utils/base-path.ts", batch.Descriptors[0].File)
				assert.Equal(t, "serve the app under /apps/memos", batch.Descriptors[0].Instruction)
				assert.Equal(t, "base path helper", batch.Descriptors[0].Description)
				assert.Equal(t, "server/router/frontend/frontend.go", batch.Descriptors[1].File, "path should be cleaned")
				assert.Empty(t, batch.Descriptors[1].Description, "description should default to empty")
			},
		},
		{
			name:     "empty_modifications",
			filename: "mods.yml",
			config:   "modifications: []\n",
			check: func(t *testing.T, batch *EditBatch) {
				assert.Equal(t, 0, batch.Len())
			},
		},
		{
			name:     "valid_json",
			filename: "mods.json",
			config:   `{"modifications": [{"file": "a.go", "instruction": "rename f to g"}]}`,
			check: func(t *testing.T, batch *EditBatch) {
				require.Equal(t, 1, batch.Len())
				assert.Equal(t, "a.go", batch.Descriptors[0].File)
			},
		},
		{
			name:     "valid_hcl",
			filename: "mods.hcl",
			config: `
modifications {
  modification {
    file        = "b.go"
    instruction = "second"
  }
  modification {
    file        = "a.go"
    instruction = "first"
    description = "keeps declared order"
  }
}
`,
			check: func(t *testing.T, batch *EditBatch) {
				require.Equal(t, 2, batch.Len())
				assert.Equal(t, "b.go", batch.Descriptors[0].File, "order should be preserved")
				assert.Equal(t, "a.go", batch.Descriptors[1].File, "order should be preserved")
				assert.Equal(t, "keeps declared order", batch.Descriptors[1].Description)
			},
		},
		{
			name:     "empty_hcl_block",
			filename: "mods.hcl",
			config:   "modifications {}\n",
			check: func(t *testing.T, batch *EditBatch) {
				assert.Equal(t, 0, batch.Len())
			},
		},
		{
			name:        "missing_modifications_yaml",
			filename:    "mods.yaml",
			config:      "modifications:\n",
			errContains: "top-level modifications is required",
		},
		{
			name:        "missing_modifications_json",
			filename:    "mods.json",
			config:      `{}`,
			errContains: "top-level modifications is required",
		},
		{
			name:        "missing_modifications_hcl",
			filename:    "mods.hcl",
			config:      "\n",
			errContains: "top-level modifications is required",
		},
		{
			name:        "malformed_yaml",
			filename:    "mods.yaml",
			config:      "modifications: [\n",
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_field",
			filename:    "mods.yaml",
			config:      "modifications: []\nextra: true\n",
			errContains: "parsing YAML",
		},
		{
			name:        "missing_file",
			filename:    "mods.yaml",
			config:      "modifications:\n  - instruction: do it\n",
			errContains: "modification 0: file is required",
		},
		{
			name:        "missing_instruction",
			filename:    "mods.yaml",
			config:      "modifications:\n  - file: a.go\n  - file: b.go\n    instruction: \"  \"\n",
			errContains: "modification 0 (a.go): instruction is required",
		},
		{
			name:        "absolute_path",
			filename:    "mods.yaml",
			config:      "modifications:\n  - file: /etc/passwd\n    instruction: no\n",
			errContains: "must be relative",
		},
		{
			name:        "escaping_path",
			filename:    "mods.yaml",
			config:      "modifications:\n  - file: web/../../secret\n    instruction: no\n",
			errContains: "escapes the project root",
		},
		{
			name:        "unsupported_extension",
			filename:    "mods.toml",
			config:      "",
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDescriptorFile(t, tt.filename, tt.config)

			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			batch, err := Load(ctx, path)

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.True(t, fault.Is(err, fault.KindConfig), "error should be a ConfigError")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, path, batch.Location)
			if tt.check != nil {
				tt.check(t, batch)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindConfig))
	assert.Contains(t, err.Error(), "reading descriptor file")
}

func TestFilter(t *testing.T) {
	batch := &EditBatch{
		Location: "mods.yaml",
		Descriptors: []EditDescriptor{
			{File: "web/src/utils/base-path.ts", Instruction: "a"},
			{File: "server/router/api/v1/auth.go", Instruction: "b"},
			{File: "web/src/store/user.ts", Instruction: "c"},
		},
	}

	tests := []struct {
		name        string
		patterns    []string
		want        []string
		errContains string
	}{
		{
			name:     "no_patterns",
			patterns: nil,
			want:     []string{"web/src/utils/base-path.ts", "server/router/api/v1/auth.go", "web/src/store/user.ts"},
		},
		{
			name:     "web_only",
			patterns: []string{"web/**"},
			want:     []string{"web/src/utils/base-path.ts", "web/src/store/user.ts"},
		},
		{
			name:     "multiple_patterns_keep_order",
			patterns: []string{"**/*.ts", "server/**/*.go"},
			want:     []string{"web/src/utils/base-path.ts", "server/router/api/v1/auth.go", "web/src/store/user.ts"},
		},
		{
			name:     "no_match",
			patterns: []string{"*.py"},
			want:     nil,
		},
		{
			name:        "invalid_pattern",
			patterns:    []string{"web/["},
			errContains: "invalid pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := batch.Filter(tt.patterns)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			var files []string
			for _, d := range got.Descriptors {
				files = append(files, d.File)
			}
			assert.Equal(t, tt.want, files)
			assert.Equal(t, batch.Location, got.Location)
		})
	}
}

func TestEditDescriptorString(t *testing.T) {
	assert.Equal(t, "a.go", EditDescriptor{File: "a.go"}.String())
	assert.Equal(t, "a.go (rename)", EditDescriptor{File: "a.go", Description: "rename"}.String())
}
