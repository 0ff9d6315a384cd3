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
	"github.com/walteh/editrc/pkg/remote"
	"gitlab.com/tozd/go/errors"

	_ "github.com/walteh/editrc/pkg/remote/github"
)

// 🏗️ NewFetchCmd creates the fetch command
func NewFetchCmd(o *opts.RootOpts) *cobra.Command {
	var (
		provider string
		repo     string
		ref      string
		baseURL  string
		tokenEnv string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download missing target files from a hosted repository",
		Long: `Fetch downloads every target file named in the descriptor file that does
not exist under the project root yet. Files that already exist are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := o.Logger(ctx)

			batch, err := o.LoadBatch(ctx)
			if err != nil {
				logger.Errorf("invalid descriptor file: %v", err)
				return err
			}

			st, err := o.OpenStore()
			if err != nil {
				logger.Errorf("project root missing: %v", err)
				return err
			}

			src, err := remote.Open(ctx, provider, remote.Options{
				Repo:    repo,
				Ref:     ref,
				Token:   o.Env(tokenEnv),
				BaseURL: baseURL,
			})
			if err != nil {
				return errors.Errorf("opening %s: %w", repo, err)
			}

			logger.Header("fetching from " + src.Name())

			report, err := remote.Fetch(ctx, st, src, batch)
			for _, f := range report.Skipped {
				logger.Infof("%s already exists", f)
			}
			for _, f := range report.Fetched {
				logger.Successf("fetched %s", f)
			}
			if err != nil {
				logger.Error(err.Error())
				return err
			}

			logger.Infof("fetched %d, skipped %d", len(report.Fetched), len(report.Skipped))
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "github", "repository provider")
	cmd.Flags().StringVar(&repo, "repo", "", "repository to fetch from (owner/name)")
	cmd.Flags().StringVar(&ref, "ref", "", "branch, tag or commit (default branch when empty)")
	cmd.Flags().StringVar(&baseURL, "api-url", "", "API base URL override (GitHub Enterprise)")
	cmd.Flags().StringVar(&tokenEnv, "token-env", "GITHUB_TOKEN", "environment variable holding the API token")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}
