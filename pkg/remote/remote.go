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

// Package remote materializes missing project files from a hosted repository
// before a batch runs.
package remote

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/editrc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Source serves file contents from one repository at one ref
type Source interface {
	// Name returns a human readable identifier (e.g. "owner/repo@main")
	Name() string
	// GetFile returns the full content of the file at the repository-relative path
	GetFile(ctx context.Context, path string) (string, error)
}

// 💾 Store is the subset of the project store the fetcher needs
type Store interface {
	Exists(ctx context.Context, path string) (bool, error)
	Write(ctx context.Context, path string, content string) error
}

// 🔧 Options selects the repository a source reads from
type Options struct {
	Repo    string // owner/name
	Ref     string // branch, tag or commit; empty means the default branch
	Token   string // optional API token
	BaseURL string // optional API endpoint override
}

// 🏭 Factory creates a source for the given options
type Factory func(ctx context.Context, opts Options) (Source, error)

var (
	// 🗺️ registry maps provider names to factories
	registry = make(map[string]Factory)
)

// 📝 Register registers a provider factory
func Register(name string, factory Factory) {
	registry[name] = factory
}

// 🎯 Open creates a source from a registered provider
func Open(ctx context.Context, provider string, opts Options) (Source, error) {
	factory, ok := registry[provider]
	if !ok {
		options := []string{}
		for k := range registry {
			options = append(options, k)
		}
		sort.Strings(options)
		return nil, errors.Errorf("provider %s not found, options: %s", provider, strings.Join(options, ", "))
	}
	return factory(ctx, opts)
}

// 📊 FetchReport lists what a fetch did, in batch order
type FetchReport struct {
	Fetched []string
	Skipped []string // already present under the project root
}

// 📥 Fetch downloads every batch target that does not exist yet. Existing files
// are never overwritten. The first failure stops the fetch.
func Fetch(ctx context.Context, st Store, src Source, batch *config.EditBatch) (FetchReport, error) {
	logger := zerolog.Ctx(ctx)
	report := FetchReport{}

	if batch == nil {
		return report, nil
	}

	for _, d := range batch.Descriptors {
		if err := ctx.Err(); err != nil {
			return report, errors.Errorf("fetch cancelled: %w", err)
		}

		exists, err := st.Exists(ctx, d.File)
		if err != nil {
			return report, errors.Errorf("checking %s: %w", d.File, err)
		}
		if exists {
			logger.Debug().Str("file", d.File).Msg("target exists, not fetching")
			report.Skipped = append(report.Skipped, d.File)
			continue
		}

		content, err := src.GetFile(ctx, d.File)
		if err != nil {
			return report, errors.Errorf("fetching %s from %s: %w", d.File, src.Name(), err)
		}

		if err := st.Write(ctx, d.File, content); err != nil {
			return report, err
		}

		logger.Debug().Str("file", d.File).Str("source", src.Name()).Int("bytes", len(content)).Msg("fetched target")
		report.Fetched = append(report.Fetched, d.File)
	}

	return report, nil
}
