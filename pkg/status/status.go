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

package status

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/scenereplace/pkg/replace"
)

// 📊 DocumentStatus represents what a run did to one document
type DocumentStatus int

const (
	StatusUnknown   DocumentStatus = iota
	StatusModified                 // At least one text leaf changed and was saved
	StatusPreviewed                // Changes were computed but discarded (dry run)
	StatusUnchanged                // No occurrences found
	StatusFailed                   // Loading, replacing or saving failed
)

// String returns a string representation of DocumentStatus
func (s DocumentStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusPreviewed:
		return "previewed"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 DocumentInfo contains the outcome for one document
type DocumentInfo struct {
	Path   string         // Document file path
	Status DocumentStatus // Outcome
	Count  int            // Matches replaced
	Edits  []replace.Edit // Edited text leaves, in document order
	Error  error          // Any error associated with this document
}

// 🔧 Tracker collects per-document outcomes from concurrent jobs
type Tracker struct {
	logger    *zerolog.Logger
	formatter Formatter

	mu   sync.RWMutex
	docs map[string]DocumentInfo

	// Progress tracking
	total     int
	processed int
}

// 🏭 New creates a new tracker
func New(logger *zerolog.Logger) *Tracker {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Tracker{
		logger:    logger,
		formatter: NewDefaultFormatter(),
		docs:      make(map[string]DocumentInfo),
	}
}

// Track records the outcome of a document and advances progress
func (t *Tracker) Track(ctx context.Context, info DocumentInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if info.Count == 0 && info.Status == StatusUnknown {
		info.Status = StatusUnchanged
	}
	t.docs[info.Path] = info
	t.processed++

	if info.Error != nil {
		t.logger.Warn().
			Str("document", info.Path).
			Msg(t.formatter.FormatError(info.Error))
	}

	t.logger.Debug().
		Str("document", info.Path).
		Str("status", info.Status.String()).
		Int("matches", info.Count).
		Msg(t.formatter.FormatProgress(t.processed, t.total))
}

// List returns every recorded outcome sorted by path
func (t *Tracker) List() []DocumentInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]DocumentInfo, 0, len(t.docs))
	for _, info := range t.docs {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

// 📈 Start sets the number of documents expected
func (t *Tracker) Start(ctx context.Context, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total = total
	t.processed = 0
	t.logger.Debug().Int("total", total).Msg("starting documents")
}

// Totals returns the matches replaced and text leaves edited across all documents
func (t *Tracker) Totals() (count, nodes int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, info := range t.docs {
		count += info.Count
		nodes += len(info.Edits)
	}
	return count, nodes
}

// AllUnchanged reports whether every tracked document finished with no occurrences
func (t *Tracker) AllUnchanged() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.docs) == 0 {
		return false
	}
	for _, info := range t.docs {
		if info.Status != StatusUnchanged {
			return false
		}
	}
	return true
}
