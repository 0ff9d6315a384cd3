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

package opts

import (
	"context"
	"io"

	"github.com/walteh/editrc/pkg/config"
	"github.com/walteh/editrc/pkg/log"
	"github.com/walteh/editrc/pkg/store"
)

// 🎛️ RootOpts holds the persistent flags and process environment shared by every command
type RootOpts struct {
	ConfigFile string
	Root       string
	Debug      bool

	// Getenv looks up environment variables; swapped out in tests
	Getenv func(string) string
	// Console receives human-facing output
	Console io.Writer
}

// 📚 LoadBatch loads and validates the descriptor file
func (o *RootOpts) LoadBatch(ctx context.Context) (*config.EditBatch, error) {
	return config.Load(ctx, o.ConfigFile)
}

// 💾 OpenStore opens the project root
func (o *RootOpts) OpenStore() (*store.Store, error) {
	return store.New(o.Root)
}

// 📣 Logger returns the console logger installed by the root command
func (o *RootOpts) Logger(ctx context.Context) *log.Logger {
	return log.FromContext(ctx)
}

// Env returns the value of an environment variable, or "" when unset.
func (o *RootOpts) Env(name string) string {
	if o.Getenv == nil || name == "" {
		return ""
	}
	return o.Getenv(name)
}
