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

	"github.com/rs/zerolog"
	"github.com/walteh/editrc/pkg/config"
	"github.com/walteh/editrc/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Run applies every descriptor in order. It returns the tally so far and, if a
// descriptor failed, an *AbortError; no later descriptor is touched after a failure.
func (e *Executor) Run(ctx context.Context, batch *config.EditBatch) (Report, error) {
	logger := zerolog.Ctx(ctx)

	report := Report{Total: batch.Len()}
	if batch == nil {
		e.reporter.Completed(ctx, report)
		return report, nil
	}

	logger.Debug().Int("total", report.Total).Str("location", batch.Location).Msg("running modifications")

	for i, d := range batch.Descriptors {
		e.reporter.Begin(ctx, i, report.Total, d)

		stage, err := e.apply(ctx, d)
		if err != nil {
			logger.Debug().Int("index", i).Str("file", d.File).Stringer("stage", stage).Err(err).Msg("modification aborted")
			e.reporter.Failed(ctx, i, report.Total, d, stage, err)
			return report, &AbortError{Index: i, Descriptor: d, Stage: stage, Err: err}
		}

		report.Successes++
		e.reporter.Succeeded(ctx, i, report.Total, d)
	}

	logger.Debug().Int("successes", report.Successes).Int("total", report.Total).Msg("modifications complete")
	e.reporter.Completed(ctx, report)

	return report, nil
}

// 📄 apply runs one descriptor through read, transform and write; the returned
// stage is where it stopped
func (e *Executor) apply(ctx context.Context, d config.EditDescriptor) (Stage, error) {
	logger := zerolog.Ctx(ctx).With().Str("file", d.File).Logger()

	if err := ctx.Err(); err != nil {
		return StageReading, errors.Errorf("run cancelled: %w", err)
	}

	logger.Debug().Stringer("stage", StageReading).Msg("modification stage")
	original, err := e.store.Read(ctx, d.File)
	if err != nil {
		return StageReading, err
	}

	logger.Debug().Stringer("stage", StageTransforming).Msg("modification stage")
	content, err := e.transformer.Transform(ctx, transform.Request{
		Path:            d.File,
		OriginalContent: original,
		Instruction:     d.Instruction,
		Description:     d.Description,
	})
	if err != nil {
		return StageTransforming, err
	}

	logger.Debug().Stringer("stage", StageWriting).Msg("modification stage")
	if err := e.store.Write(ctx, d.File, content); err != nil {
		return StageWriting, err
	}

	return StageWriting, nil
}
