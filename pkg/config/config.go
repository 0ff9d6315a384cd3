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
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/editrc/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for descriptor file parsers
type Parser interface {
	// 📝 Parse decodes the raw descriptor list; it does not validate entries
	Parse(ctx context.Context, data []byte) ([]EditDescriptor, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// errMissingModifications is returned by parsers when the top-level key is absent.
var errMissingModifications = errors.New("top-level modifications is required")

// ✏️ EditDescriptor is a single declared edit request
type EditDescriptor struct {
	File        string `json:"file" yaml:"file"`                                   // project-relative target path
	Instruction string `json:"instruction" yaml:"instruction"`                     // natural-language directive
	Description string `json:"description,omitempty" yaml:"description,omitempty"` // optional human-readable summary
}

// String returns the target file and, when present, its description.
func (d EditDescriptor) String() string {
	if d.Description == "" {
		return d.File
	}
	return fmt.Sprintf("%s (%s)", d.File, d.Description)
}

// 📚 EditBatch is the ordered list of descriptors loaded for one run
type EditBatch struct {
	Descriptors []EditDescriptor
	Location    string // path of the descriptor file this batch came from
}

// Len returns the number of descriptors in the batch.
func (b *EditBatch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Descriptors)
}

// 🎯 Load reads, parses and validates a descriptor file
func Load(ctx context.Context, path string) (*EditBatch, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading modifications")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fault.New(fault.KindConfig, path, errors.Errorf("reading descriptor file: %w", err))
	}

	p := GetParser(path)
	if p == nil {
		return nil, fault.Config(path, "no parser found for file extension %q", filepath.Ext(path))
	}

	descriptors, err := p.Parse(ctx, data)
	if err != nil {
		return nil, fault.New(fault.KindConfig, path, err)
	}

	batch := &EditBatch{Descriptors: descriptors, Location: path}
	if err := batch.Validate(); err != nil {
		return nil, fault.New(fault.KindConfig, path, err)
	}

	logger.Debug().Int("count", batch.Len()).Msg("loaded modifications")

	return batch, nil
}

// 🔍 Validate checks every descriptor and normalizes its path
func (b *EditBatch) Validate() error {
	for i := range b.Descriptors {
		d := &b.Descriptors[i]

		file, err := cleanTarget(d.File)
		if err != nil {
			return errors.Errorf("modification %d: %w", i, err)
		}
		d.File = file

		if strings.TrimSpace(d.Instruction) == "" {
			return errors.Errorf("modification %d (%s): instruction is required", i, d.File)
		}
	}
	return nil
}

// cleanTarget normalizes a project-relative path and rejects anything that
// could land outside the project root.
func cleanTarget(file string) (string, error) {
	file = strings.TrimSpace(file)
	if file == "" {
		return "", errors.New("file is required")
	}

	slashed := filepath.ToSlash(file)
	if path.IsAbs(slashed) || filepath.IsAbs(file) {
		return "", errors.Errorf("file %q must be relative to the project root", file)
	}

	cleaned := path.Clean(slashed)
	switch {
	case cleaned == ".":
		return "", errors.New("file is required")
	case cleaned == "..", strings.HasPrefix(cleaned, "../"):
		return "", errors.Errorf("file %q escapes the project root", file)
	}

	return cleaned, nil
}

// 🔎 Filter returns a new batch holding only descriptors whose file matches one of the
// doublestar patterns. Order is preserved. An empty pattern list returns the batch unchanged.
func (b *EditBatch) Filter(patterns []string) (*EditBatch, error) {
	if len(patterns) == 0 {
		return b, nil
	}

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fault.Config(b.Location, "invalid pattern %q", pattern)
		}
	}

	out := &EditBatch{Location: b.Location}
	for _, d := range b.Descriptors {
		for _, pattern := range patterns {
			matched, err := doublestar.Match(pattern, d.File)
			if err != nil {
				return nil, fault.New(fault.KindConfig, b.Location, errors.Errorf("matching %q: %w", pattern, err))
			}
			if matched {
				out.Descriptors = append(out.Descriptors, d)
				break
			}
		}
	}

	return out, nil
}
