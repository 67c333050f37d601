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
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/scenereplace/pkg/replace"
)

// 🎨 Display configuration
const (
	editIndent = 4  // spaces to indent edit entries
	pathWidth  = 35 // Base width for the node path
	countWidth = 12 // Width for the match count
)

// 📄 DocumentOperation represents one document being processed
type DocumentOperation struct {
	Path    string // Document file path
	Request string // Human readable request
	DryRun  bool   // Whether changes are discarded
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *DocumentOperation
	edits     []replace.Edit
}

// 🏭 New creates a new logger; console gets the human readable lines and
// errOut the structured event stream
func New(console io.Writer, errOut io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = errOut
		w.NoColor = true
	})).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a logger that discards
// everything when none was attached
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return logger
	}
	return New(io.Discard, io.Discard, zerolog.Disabled)
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatEdit formats an edited text leaf for display
func (l *Logger) formatEdit(edit replace.Edit) string {
	symbol := '⟳'
	symbolColor := color.FgBlue
	if edit.NameSynced {
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	noun := "matches"
	if edit.Count == 1 {
		noun = "match"
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", editIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", pathWidth, strings.Join(edit.Path, "/")),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", countWidth, fmt.Sprintf("%d %s", edit.Count, noun))))

	if edit.NameSynced {
		line += color.New(color.Faint).Sprint("name synced")
	}
	return line
}

// 📝 LogEdit logs one edited text leaf
func (l *Logger) LogEdit(ctx context.Context, edit replace.Edit) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.edits = append(l.edits, edit)

	fmt.Fprintln(l.console, l.formatEdit(edit))

	l.zlog.Info().
		Str("node", strings.Join(edit.Path, "/")).
		Int("matches", edit.Count).
		Bool("name_synced", edit.NameSynced).
		Msg("text replaced")
}

// 📝 StartDocument starts a new document operation
func (l *Logger) StartDocument(ctx context.Context, op DocumentOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.edits = nil

	verb := "replacing in"
	if op.DryRun {
		verb = "previewing"
	}
	fmt.Fprintf(l.console, "[%s %s]\n", verb, color.New(color.FgCyan).Sprint(op.Path))

	fmt.Fprintf(l.console, "%s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Request))

	l.zlog.Info().
		Str("document", op.Path).
		Str("request", op.Request).
		Bool("dry_run", op.DryRun).
		Msg("starting document")
}

// 📝 EndDocument ends the current document operation and returns the edits logged for it
func (l *Logger) EndDocument(ctx context.Context) []replace.Edit {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return nil
	}

	edits := l.edits
	total := 0
	for _, e := range edits {
		total += e.Count
	}

	l.zlog.Info().
		Str("document", l.currentOp.Path).
		Int("nodes", len(edits)).
		Int("matches", total).
		Msg("document complete")

	l.currentOp = nil
	l.edits = nil
	return edits
}

// 📊 Summary prints the closing line of a run
func (l *Logger) Summary(count, nodes int) {
	if count == 0 {
		l.Warning("No occurrences of find text found")
		return
	}
	l.Successf("Replaced %d occurrence(s) in %d text layer(s)", count, nodes)
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	appText := color.New(color.Bold, color.FgCyan).Sprint("scenereplace")
	fmt.Fprintf(l.console, "\n%s %s\n\n", appText, color.New(color.Faint).Sprint("• "+msg))
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
