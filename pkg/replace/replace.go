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

// Package replace walks a scenegraph and rewrites the text of every text leaf.
package replace

import (
	"github.com/walteh/scenereplace/pkg/scene"
)

// 🔌 Substituter applies a global substitution to one string.
// *text.Pattern satisfies it.
type Substituter interface {
	Substitute(s, replacement string) (string, int)
}

// ✏️ Edit describes one text leaf that had at least one match
type Edit struct {
	Path       []string // names from the traversal root down to the leaf
	Before     string   // text before substitution
	After      string   // text after substitution
	NameSynced bool     // name mirrored text and was rewritten with it
	Count      int      // matches replaced in this leaf
}

// 🎛️ Option configures an Engine
type Option func(*Engine)

// WithObserver registers a callback invoked once per edited text leaf, in document order
func WithObserver(fn func(Edit)) Option {
	return func(e *Engine) {
		e.observe = fn
	}
}

// 🔁 Engine performs replace-all traversals
type Engine struct {
	observe func(Edit)
}

// 🏭 NewEngine creates an engine with the given options
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ReplaceAll substitutes every match of p in the text leaves below root and
// returns the number of matches replaced. A root that is not a container is
// left alone and yields 0.
func ReplaceAll(root *scene.Node, p Substituter, replacement string) int {
	return NewEngine().ReplaceAll(root, p, replacement)
}

// ReplaceAll is the engine form of the package-level ReplaceAll
func (e *Engine) ReplaceAll(root *scene.Node, p Substituter, replacement string) int {
	if !root.IsContainer() {
		return 0
	}
	return e.replaceChildren([]string{root.Name}, root, p, replacement)
}

func (e *Engine) replaceChildren(path []string, parent *scene.Node, p Substituter, replacement string) int {
	total := 0
	for _, child := range parent.Children {
		if child == nil {
			continue
		}
		childPath := append(path[:len(path):len(path)], child.Name)
		switch child.Kind {
		case scene.KindText:
			total += e.replaceText(childPath, child, p, replacement)
		case scene.KindContainer:
			total += e.replaceChildren(childPath, child, p, replacement)
		case scene.KindOther:
			// shapes, images and the like carry no text
		}
	}
	return total
}

func (e *Engine) replaceText(path []string, leaf *scene.Node, p Substituter, replacement string) int {
	// must be read before leaf.Text is written
	mirrored := leaf.Name == leaf.Text

	before := leaf.Text
	after, count := p.Substitute(before, replacement)
	if count == 0 {
		return 0
	}

	leaf.Text = after
	if mirrored {
		leaf.Name = after
	}

	if e.observe != nil {
		e.observe(Edit{
			Path:       path,
			Before:     before,
			After:      after,
			NameSynced: mirrored,
			Count:      count,
		})
	}

	return count
}
