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

// Package store reads and writes project files relative to a project root.
package store

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/editrc/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

// 📊 Stats counts store calls made during a run
type Stats struct {
	Reads  int64
	Writes int64
}

// 💾 Store reads and writes text files under a project root
type Store struct {
	root   string
	reads  atomic.Int64
	writes atomic.Int64
}

// 🏭 New creates a store rooted at an existing directory
func New(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fault.New(fault.KindConfig, root, errors.Errorf("resolving project root: %w", err))
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fault.New(fault.KindConfig, root, errors.Errorf("project root not found: %w", err))
	}
	if !info.IsDir() {
		return nil, fault.Config(root, "project root is not a directory")
	}

	return &Store{root: abs}, nil
}

// Root returns the absolute project root.
func (s *Store) Root() string {
	return s.root
}

// 🔒 getAbsPath returns the absolute path for a given relative path
func (s *Store) getAbsPath(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(path))
}

// 📖 Read returns the full text of a project file
func (s *Store) Read(ctx context.Context, path string) (string, error) {
	s.reads.Add(1)

	content, err := os.ReadFile(s.getAbsPath(path))
	if err != nil {
		return "", fault.New(fault.KindRead, path, errors.Errorf("reading file: %w", err))
	}

	if !utf8.Valid(content) {
		return "", fault.New(fault.KindRead, path, errors.New("file is not valid UTF-8 text"))
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("size", len(content)).Msg("read file")

	return string(content), nil
}

// ✍️ Write replaces a project file's content, creating parent directories as needed
func (s *Store) Write(ctx context.Context, path string, content string) error {
	s.writes.Add(1)

	absPath := s.getAbsPath(path)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fault.New(fault.KindWrite, path, errors.Errorf("creating parent directories: %w", err))
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
	}

	if err := writeFileAtomic(absPath, []byte(content), mode); err != nil {
		return fault.New(fault.KindWrite, path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("size", len(content)).Msg("wrote file")

	return nil
}

// 🔍 Exists reports whether a project file exists
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(s.getAbsPath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fault.New(fault.KindRead, path, errors.Errorf("checking file existence: %w", err))
}

// Stats returns the number of reads and writes issued so far.
func (s *Store) Stats() Stats {
	return Stats{Reads: s.reads.Load(), Writes: s.writes.Load()}
}

// writeFileAtomic writes to a temp file in the target directory then renames it over the target.
func writeFileAtomic(absPath string, content []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
