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

package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/editrc/cmd/editrc/commands"
	"github.com/walteh/editrc/cmd/editrc/opts"
	"github.com/walteh/editrc/pkg/log"
)

// newRootCmd builds the command tree. Running the root command without a
// subcommand behaves like apply.
func newRootCmd(stdout, stderr io.Writer, getenv func(string) string) *cobra.Command {
	o := &opts.RootOpts{
		Getenv:  getenv,
		Console: stdout,
	}
	applyFlags := &commands.ApplyFlags{}

	rootCmd := &cobra.Command{
		Use:   "editrc",
		Short: "Apply natural-language source edits to a project tree",
		Long: `editrc reads a descriptor file listing target files and edit instructions,
asks a chat completions API to rewrite each file and writes the result back
under the project root.

Running editrc without a subcommand is the same as running editrc apply.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd, o, stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunApply(cmd, o, applyFlags)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	addRootFlags(rootCmd, o)
	applyFlags.Bind(rootCmd)

	rootCmd.AddCommand(
		commands.NewApplyCmd(o),
		commands.NewPlanCmd(o),
		commands.NewFetchCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "configure_subpath.yaml", "descriptor file path (.yaml, .yml, .json or .hcl)")
	cmd.PersistentFlags().StringVarP(&o.Root, "root", "r", "app", "project root the target files are relative to")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging installs the structured logger and the console logger on the
// command context
func setupLogging(cmd *cobra.Command, o *opts.RootOpts, stderr io.Writer) {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()

	ctx := zlog.WithContext(cmd.Context())
	ctx = log.NewContext(ctx, log.New(o.Console, zlog))
	cmd.SetContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), FormatVersion())
		},
	}
}
