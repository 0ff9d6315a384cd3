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
	"github.com/spf13/cobra"
	"github.com/walteh/editrc/cmd/editrc/opts"
)

// 🏗️ NewPlanCmd creates the plan command
func NewPlanCmd(o *opts.RootOpts) *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Validate the descriptor file and list its modifications",
		Long: `Plan loads and validates the descriptor file and prints the modifications
that apply would run, in order. It never calls the remote API and never
writes files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := o.Logger(ctx)

			batch, err := o.LoadBatch(ctx)
			if err != nil {
				logger.Errorf("invalid descriptor file: %v", err)
				return err
			}

			batch, err = batch.Filter(only)
			if err != nil {
				logger.Errorf("invalid --only pattern: %v", err)
				return err
			}

			return logger.Plan(batch)
		},
	}

	cmd.Flags().StringArrayVar(&only, "only", nil, "only list modifications whose file matches this glob (repeatable)")

	return cmd
}
