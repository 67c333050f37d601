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
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/scenereplace/pkg/replace"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_edit",
			op: func(t *testing.T, logger *Logger) {
				logger.LogEdit(context.Background(), replace.Edit{
					Path:       []string{"document", "Home", "Hello"},
					Before:     "Hello",
					After:      "Hi",
					NameSynced: true,
					Count:      1,
				})
			},
			wantLogs: []string{
				"    ✓ document/Home/Hello                 1 match     name synced",
			},
		},
		{
			name: "log_document",
			op: func(t *testing.T, logger *Logger) {
				logger.StartDocument(context.Background(), DocumentOperation{
					Path:    "/tmp/home.yaml",
					Request: `"Hello" -> "Hi" (match case, wholeDocument)`,
				})
			},
			wantLogs: []string{
				"[replacing in /tmp/home.yaml]",
				`◆ "Hello" -> "Hi" (match case, wholeDocument)`,
			},
		},
		{
			name: "log_dry_run_document",
			op: func(t *testing.T, logger *Logger) {
				logger.StartDocument(context.Background(), DocumentOperation{
					Path:    "/tmp/home.yaml",
					Request: "req",
					DryRun:  true,
				})
			},
			wantLogs: []string{
				"[previewing /tmp/home.yaml]",
				"◆ req",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_summary",
			op: func(t *testing.T, logger *Logger) {
				logger.Summary(4, 3)
				logger.Summary(0, 0)
			},
			wantLogs: []string{
				"✅ Replaced 4 occurrence(s) in 3 text layer(s)",
				"⚠️  No occurrences of find text found",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("find and replace")
			},
			wantLogs: []string{
				"scenereplace • find and replace",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, io.Discard, zerolog.Disabled)

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, strings.TrimSpace(want), strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	// Create logger
	logger := New(io.Discard, io.Discard, zerolog.InfoLevel)

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	// Missing logger falls back to one that discards output
	fallback := FromContext(context.Background())
	require.NotNil(t, fallback)
	assert.NotPanics(t, func() {
		fallback.Info("dropped")
	}, "fallback logger should be usable")
}

func TestLoggerStructuredOutput(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	console := &bytes.Buffer{}
	events := &bytes.Buffer{}
	logger := New(console, events, zerolog.InfoLevel)

	logger.Info("structured event")

	assert.Equal(t, "ℹ️  structured event", strings.TrimSpace(console.String()), "console should only carry the human readable line")
	assert.Contains(t, events.String(), "structured event", "event stream should go to the given writer")
	assert.NotContains(t, console.String(), "INF", "event stream should not leak into the console")
}

func TestEndDocument(t *testing.T) {
	logger := New(io.Discard, io.Discard, zerolog.Disabled)
	ctx := context.Background()

	assert.Nil(t, logger.EndDocument(ctx), "no document in progress")

	logger.StartDocument(ctx, DocumentOperation{Path: "a.yaml"})
	logger.LogEdit(ctx, replace.Edit{Path: []string{"a"}, Count: 2})
	logger.LogEdit(ctx, replace.Edit{Path: []string{"b"}, Count: 1})

	edits := logger.EndDocument(ctx)
	require.Len(t, edits, 2)
	assert.Equal(t, 2, edits[0].Count)

	logger.StartDocument(ctx, DocumentOperation{Path: "b.yaml"})
	assert.Empty(t, logger.EndDocument(ctx), "edits should reset per document")
}

func TestEditFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		edit replace.Edit
		want string
	}{
		{
			name: "name_synced",
			edit: replace.Edit{Path: []string{"document", "Home", "Hello"}, NameSynced: true, Count: 1},
			want: "    ✓ document/Home/Hello                 1 match     name synced",
		},
		{
			name: "independent_name",
			edit: replace.Edit{Path: []string{"document", "Home", "group", "subtitle"}, Count: 2},
			want: "    ⟳ document/Home/group/subtitle        2 matches   ",
		},
		{
			name: "many_matches",
			edit: replace.Edit{Path: []string{"About", "body"}, Count: 12},
			want: "    ⟳ About/body                          12 matches  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(io.Discard, io.Discard, zerolog.Disabled)
			assert.Equal(t, tt.want, logger.formatEdit(tt.edit), "formatted output should match")
		})
	}
}
