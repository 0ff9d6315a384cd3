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

package log

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/walteh/editrc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 📋 Plan renders the batch as a table without touching any file
func (l *Logger) Plan(batch *config.EditBatch) error {
	data := pterm.TableData{{"#", "File", "Description", "Instruction"}}
	if batch != nil {
		for i, d := range batch.Descriptors {
			data = append(data, []string{
				fmt.Sprint(i + 1),
				d.File,
				d.Description,
				truncate(d.Instruction, 60),
			})
		}
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering plan: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, table)
	fmt.Fprintf(l.console, "\n%d modifications from %s\n", batch.Len(), location(batch))

	l.zlog.Info().Int("total", batch.Len()).Msg("plan rendered")
	return nil
}

func location(batch *config.EditBatch) string {
	if batch == nil || batch.Location == "" {
		return "<unknown>"
	}
	return batch.Location
}

// truncate shortens single-line previews of long instructions
func truncate(s string, max int) string {
	runes := []rune(s)
	for i, r := range runes {
		if r == '\n' {
			runes = append(runes[:i:i], []rune(" …")...)
			break
		}
	}
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max-1]) + "…"
}
