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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/editrc/pkg/config"
	"github.com/walteh/editrc/pkg/fault"
	"github.com/walteh/editrc/pkg/operation"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent detail lines
	nameWidth  = 45 // width for the target file column
)

var _ operation.Reporter = (*Logger)(nil)

// 🎯 Logger writes human-facing progress to a console and mirrors it to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a discarding logger if none is set
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, zerolog.Nop())
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func counter(index, total int) string {
	width := len(fmt.Sprint(total))
	return fmt.Sprintf("[%*d/%d]", width, index+1, total)
}

// 📝 Begin prints the descriptor about to be processed
func (l *Logger) Begin(ctx context.Context, index, total int, d config.EditDescriptor) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s\n",
		color.New(color.Faint).Sprint(counter(index, total)),
		color.New(color.Bold).Sprint(d.File))
	if d.Description != "" {
		fmt.Fprintf(l.console, "%*s%s\n", fileIndent, "", color.New(color.FgCyan).Sprint(d.Description))
	}

	l.zlog.Info().
		Int("index", index).
		Int("total", total).
		Str("file", d.File).
		Str("description", d.Description).
		Msg("applying modification")
}

// 📝 Succeeded prints a success line for a descriptor
func (l *Logger) Succeeded(ctx context.Context, index, total int, d config.EditDescriptor) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%*s%s %-*s %s\n", fileIndent, "",
		color.New(color.FgGreen).Sprint("✓"),
		nameWidth, d.File,
		color.New(color.FgGreen).Sprint("modified"))

	l.zlog.Info().Int("index", index).Str("file", d.File).Msg("modification applied")
}

// 📝 Failed prints a failure line with the stage and error kind
func (l *Logger) Failed(ctx context.Context, index, total int, d config.EditDescriptor, stage operation.Stage, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%*s%s %-*s %s\n", fileIndent, "",
		color.New(color.FgRed).Sprint("✗"),
		nameWidth, d.File,
		color.New(color.FgRed).Sprintf("failed while %s", stage))
	fmt.Fprintf(l.console, "%*s%s\n", fileIndent*2, "", color.New(color.Faint).Sprint(err))

	l.zlog.Error().
		Err(err).
		Int("index", index).
		Str("file", d.File).
		Stringer("stage", stage).
		Stringer("kind", fault.KindOf(err)).
		Msg("modification failed")
}

// 📝 Completed prints the final tally and a success banner
func (l *Logger) Completed(ctx context.Context, report operation.Report) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "\napplied %d/%d modifications\n", report.Successes, report.Total)
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint("all modifications applied"))

	l.zlog.Info().Int("successes", report.Successes).Int("total", report.Total).Msg("modifications complete")
}

// 📝 Summary prints the tally after an aborted run
func (l *Logger) Summary(report operation.Report, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "\napplied %d/%d modifications\n", report.Successes, report.Total)
	if err != nil {
		fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(err))
		l.zlog.Error().Err(err).Int("successes", report.Successes).Int("total", report.Total).Msg("modifications aborted")
	}
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("editrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
