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

package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/editrc/cmd/editrc/opts"
	"github.com/walteh/editrc/pkg/operation"
	"github.com/walteh/editrc/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// 🔧 ApplyFlags are the flags of the apply command
type ApplyFlags struct {
	Model       string
	BaseURL     string
	APIKeyEnv   string
	Timeout     time.Duration
	Temperature float64
	Only        []string
}

// Bind registers the apply flags on cmd
func (f *ApplyFlags) Bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.Model, "model", transform.DefaultModel, "chat model used to rewrite files")
	fs.StringVar(&f.BaseURL, "base-url", transform.DefaultBaseURL, "base URL of the chat completions API")
	fs.StringVar(&f.APIKeyEnv, "api-key-env", "OPENAI_API_KEY", "environment variable holding the API key")
	fs.DurationVar(&f.Timeout, "timeout", transform.DefaultTimeout, "timeout for each remote call")
	fs.Float64Var(&f.Temperature, "temperature", transform.DefaultTemperature, "sampling temperature")
	fs.StringArrayVar(&f.Only, "only", nil, "only apply modifications whose file matches this glob (repeatable)")
}

// 🏗️ NewApplyCmd creates the apply command
func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	flags := &ApplyFlags{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply every modification in the descriptor file",
		Long: `Apply reads each target file under the project root, sends it with its
instruction to the chat completions API and writes the returned content back.

Modifications run in the order they are declared. The first failure stops the
run; files already written are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunApply(cmd, o, flags)
		},
	}

	flags.Bind(cmd)

	return cmd
}

// 🏃 RunApply loads the batch, opens the project and runs the executor
func RunApply(cmd *cobra.Command, o *opts.RootOpts, flags *ApplyFlags) error {
	ctx := cmd.Context()
	logger := o.Logger(ctx)

	batch, err := o.LoadBatch(ctx)
	if err != nil {
		logger.Errorf("invalid descriptor file: %v", err)
		return err
	}

	batch, err = batch.Filter(flags.Only)
	if err != nil {
		logger.Errorf("invalid --only pattern: %v", err)
		return err
	}

	st, err := o.OpenStore()
	if err != nil {
		logger.Errorf("project root missing: %v", err)
		return err
	}

	apiKey := o.Env(flags.APIKeyEnv)

	temperature := flags.Temperature
	client := transform.NewClient(transform.Options{
		APIKey:      apiKey,
		BaseURL:     flags.BaseURL,
		Model:       flags.Model,
		Temperature: &temperature,
		Timeout:     flags.Timeout,
	})

	exec, err := operation.New(operation.Options{
		Store:       st,
		Transformer: client,
		Reporter:    logger,
	})
	if err != nil {
		return errors.Errorf("creating executor: %w", err)
	}

	logger.Header(fmt.Sprintf("applying %s with %s", batch.Location, client.Model()))
	if apiKey == "" && batch.Len() > 0 {
		logger.Warningf("%s is not set, modifications will fail with MissingCredential", flags.APIKeyEnv)
	}
	zerolog.Ctx(ctx).Debug().Str("base_url", flags.BaseURL).Dur("timeout", flags.Timeout).Msg("transform client ready")

	report, err := exec.Run(ctx, batch)
	if err != nil {
		logger.Summary(report, err)
		return err
	}

	return nil
}
