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
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/scenereplace/pkg/replace"
)

// 🎨 Display configuration
const (
	editIndent = 4 // spaces to indent diff entries
)

// 🔍 InlineDiff renders before/after as a single line, deletions red and insertions green
func InlineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(color.New(color.FgRed, color.CrossedOut).Sprint("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			b.WriteString(color.New(color.FgGreen).Sprint("{+" + d.Text + "+}"))
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

// Delta encodes the change from before to after in diff-match-patch delta form
func Delta(before, after string) string {
	dmp := diffmatchpatch.New()
	return dmp.DiffToDelta(dmp.DiffMain(before, after, false))
}

// 🎯 Render formats every edit as a path header followed by its inline diff
func Render(edits []replace.Edit) string {
	var b strings.Builder
	for _, e := range edits {
		header := strings.Join(e.Path, "/")
		if e.NameSynced {
			header += color.New(color.Faint).Sprint(" (name synced)")
		}
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat(" ", editIndent), color.New(color.Bold).Sprint(header))
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat(" ", editIndent*2), InlineDiff(e.Before, e.After))
	}
	return b.String()
}
