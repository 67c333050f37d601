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

package scene

import (
	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// ErrArtboardNotFound is returned when no artboard matches a glob
var ErrArtboardNotFound = errors.Base("no artboard matches pattern")

// 🎯 Selection exposes what the host currently has focused
type Selection interface {
	// FocusedArtboard returns the focused artboard, or nil when nothing is focused
	FocusedArtboard() *Node
}

// 📄 Document is a materialized scenegraph plus the host's focus state
type Document struct {
	Root  *Node  `json:"root" yaml:"root"`
	Focus string `json:"focus,omitempty" yaml:"focus,omitempty"` // name of the focused artboard
}

// Artboards returns every artboard in document order
func (d *Document) Artboards() []*Node {
	if d == nil || d.Root == nil {
		return nil
	}
	var boards []*Node
	d.Root.Walk(func(_ []string, node *Node) bool {
		if node.IsContainer() && node.Artboard {
			boards = append(boards, node)
		}
		return true
	})
	return boards
}

// FocusedArtboard implements Selection using the document's focus name
func (d *Document) FocusedArtboard() *Node {
	if d == nil || d.Focus == "" {
		return nil
	}
	for _, board := range d.Artboards() {
		if board.Name == d.Focus {
			return board
		}
	}
	return nil
}

// 🔍 FindArtboard returns the first artboard whose name matches the glob.
// It returns ErrArtboardNotFound when nothing matches.
func (d *Document) FindArtboard(glob string) (*Node, error) {
	if !doublestar.ValidatePattern(glob) {
		return nil, errors.Errorf("invalid artboard pattern %q", glob)
	}
	for _, board := range d.Artboards() {
		matched, err := doublestar.Match(glob, board.Name)
		if err != nil {
			return nil, errors.Errorf("matching artboard %q: %w", board.Name, err)
		}
		if matched {
			return board, nil
		}
	}
	return nil, errors.Errorf("%w: %q", ErrArtboardNotFound, glob)
}

// Validate checks the document has a container root and a valid tree
func (d *Document) Validate() error {
	if d.Root == nil {
		return errors.Errorf("root is required")
	}
	if !d.Root.IsContainer() {
		return errors.Errorf("root must be a container, got %s", d.Root.Kind)
	}
	if err := d.Root.Validate(); err != nil {
		return errors.Errorf("validating tree: %w", err)
	}
	return nil
}

// 📌 FixedSelection is a Selection pinned to a specific node
type FixedSelection struct {
	Artboard *Node
}

func (s FixedSelection) FocusedArtboard() *Node {
	return s.Artboard
}
