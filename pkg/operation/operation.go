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

package operation

import (
	"context"
	"fmt"

	"github.com/walteh/editrc/pkg/config"
	"github.com/walteh/editrc/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// 💾 Store reads and writes project files by project-relative path
type Store interface {
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path string, content string) error
}

// 🤖 Transformer produces replacement content for a file
type Transformer interface {
	Transform(ctx context.Context, req transform.Request) (string, error)
}

// 📣 Reporter receives progress notifications while a batch runs
type Reporter interface {
	// Begin is called before a descriptor is processed
	Begin(ctx context.Context, index, total int, d config.EditDescriptor)
	// Succeeded is called after a descriptor's content was written
	Succeeded(ctx context.Context, index, total int, d config.EditDescriptor)
	// Failed is called when a descriptor aborts the run
	Failed(ctx context.Context, index, total int, d config.EditDescriptor, stage Stage, err error)
	// Completed is called once when every descriptor succeeded
	Completed(ctx context.Context, report Report)
}

// 🚦 Stage is the step a descriptor is in while being processed
type Stage int

const (
	StageReading Stage = iota
	StageTransforming
	StageWriting
)

func (s Stage) String() string {
	switch s {
	case StageReading:
		return "reading"
	case StageTransforming:
		return "transforming"
	case StageWriting:
		return "writing"
	default:
		return "unknown"
	}
}

// 📊 Report is the running tally of a batch
type Report struct {
	Successes int
	Total     int
}

// Done reports whether every descriptor was applied.
func (r Report) Done() bool {
	return r.Successes == r.Total
}

// 🛑 AbortError is returned when a descriptor fails and the run stops
type AbortError struct {
	Index      int // 0-based position in the batch
	Descriptor config.EditDescriptor
	Stage      Stage
	Err        error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("modification %d (%s) failed while %s: %v", e.Index+1, e.Descriptor.File, e.Stage, e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

// 🔧 Options contains the collaborators of an Executor
type Options struct {
	Store       Store
	Transformer Transformer
	Reporter    Reporter // optional
}

// 🏃 Executor applies a batch sequentially with fail-fast semantics
type Executor struct {
	store       Store
	transformer Transformer
	reporter    Reporter
}

// 🏭 New creates an executor with the given options
func New(opts Options) (*Executor, error) {
	if opts.Store == nil {
		return nil, errors.Errorf("store is required")
	}
	if opts.Transformer == nil {
		return nil, errors.Errorf("transformer is required")
	}
	if opts.Reporter == nil {
		opts.Reporter = nopReporter{}
	}
	return &Executor{
		store:       opts.Store,
		transformer: opts.Transformer,
		reporter:    opts.Reporter,
	}, nil
}

type nopReporter struct{}

func (nopReporter) Begin(context.Context, int, int, config.EditDescriptor)                {}
func (nopReporter) Succeeded(context.Context, int, int, config.EditDescriptor)            {}
func (nopReporter) Failed(context.Context, int, int, config.EditDescriptor, Stage, error) {}
func (nopReporter) Completed(context.Context, Report)                                     {}
