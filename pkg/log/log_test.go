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

package log

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/editrc/pkg/config"
	"github.com/walteh/editrc/pkg/fault"
	"github.com/walteh/editrc/pkg/operation"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	ctx := context.Background()
	desc := config.EditDescriptor{
		File:        "web/src/utils/base-path.ts",
		Instruction: "serve under /apps/memos",
		Description: "base path helper",
	}

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "begin_with_description",
			op: func(t *testing.T, logger *Logger) {
				logger.Begin(ctx, 0, 3, desc)
			},
			wantLogs: []string{
				"[1/3] web/src/utils/base-path.ts",
				"base path helper",
			},
		},
		{
			name: "begin_pads_counter",
			op: func(t *testing.T, logger *Logger) {
				logger.Begin(ctx, 2, 12, config.EditDescriptor{File: "a.go", Instruction: "x"})
			},
			wantLogs: []string{
				"[ 3/12] a.go",
			},
		},
		{
			name: "succeeded",
			op: func(t *testing.T, logger *Logger) {
				logger.Succeeded(ctx, 0, 1, desc)
			},
			wantLogs: []string{
				"✓ web/src/utils/base-path.ts                    modified",
			},
		},
		{
			name: "failed",
			op: func(t *testing.T, logger *Logger) {
				logger.Failed(ctx, 1, 2, desc, operation.StageTransforming, fault.Remote(500, fmt.Errorf("remote returned 500")))
			},
			wantLogs: []string{
				"✗ web/src/utils/base-path.ts                    failed while transforming",
				"RemoteError(500): remote returned 500",
			},
		},
		{
			name: "completed",
			op: func(t *testing.T, logger *Logger) {
				logger.Completed(ctx, operation.Report{Successes: 2, Total: 2})
			},
			wantLogs: []string{
				"applied 2/2 modifications",
				"✅ all modifications applied",
			},
		},
		{
			name: "summary_after_abort",
			op: func(t *testing.T, logger *Logger) {
				logger.Summary(operation.Report{Successes: 1, Total: 4}, fmt.Errorf("boom"))
			},
			wantLogs: []string{
				"applied 1/4 modifications",
				"❌ boom",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("applying configure_subpath.yaml")
			},
			wantLogs: []string{
				"editrc • applying configure_subpath.yaml",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match: %q", output)
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(&bytes.Buffer{}, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback, "FromContext should fall back to a discarding logger")
	assert.NotPanics(t, func() { fallback.Info("dropped") })
}

func TestPlan(t *testing.T) {
	color.NoColor = true
	pterm.DisableStyling()
	defer func() {
		color.NoColor = false
		pterm.EnableStyling()
	}()

	batch := &config.EditBatch{
		Location: "configure_subpath.yaml",
		Descriptors: []config.EditDescriptor{
			{File: "web/vite.config.mts", Instruction: "set base to /apps/memos/", Description: "vite base"},
			{File: "server/router.go", Instruction: strings.Repeat("long ", 30)},
		},
	}

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))
	require.NoError(t, logger.Plan(batch))

	out := buf.String()
	assert.Contains(t, out, "web/vite.config.mts")
	assert.Contains(t, out, "vite base")
	assert.Contains(t, out, "server/router.go")
	assert.Contains(t, out, "…")
	assert.Contains(t, out, "2 modifications from configure_subpath.yaml")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short", in: "abc", max: 10, want: "abc"},
		{name: "exact", in: "abcde", max: 5, want: "abcde"},
		{name: "long", in: "abcdefgh", max: 5, want: "abcd…"},
		{name: "multiline", in: "first\nsecond", max: 20, want: "first …"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.max))
		})
	}
}
