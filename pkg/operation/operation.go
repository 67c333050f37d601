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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/scenereplace/pkg/replace"
	"github.com/walteh/scenereplace/pkg/request"
	"github.com/walteh/scenereplace/pkg/scene"
	"github.com/walteh/scenereplace/pkg/text"
	"gitlab.com/tozd/go/errors"
)

var (
	ErrNoFocusedScope     = errors.Base("no focused artboard")
	ErrNoOccurrencesFound = errors.Base("no occurrences of find text found")
)

// 🔧 Options contains configuration for the operator
type Options struct {
	// Document is the scenegraph to edit in place
	Document *scene.Document
	// Selection reports the focused artboard; defaults to the document's own focus
	Selection scene.Selection
	// Collector gathers the request; only required by Run
	Collector request.Collector
	// OnEdit is called for every text leaf that changed
	OnEdit func(replace.Edit)
}

// 📊 Result is the outcome of one find-and-replace
type Result struct {
	Request   *request.Request
	Count     int
	Edits     []replace.Edit
	Cancelled bool
}

// 🎮 Operator runs find-and-replace requests against one document
type Operator struct {
	doc       *scene.Document
	selection scene.Selection
	collector request.Collector
	onEdit    func(replace.Edit)
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (*Operator, error) {
	if opts.Document == nil {
		return nil, errors.Errorf("document is required")
	}
	if opts.Document.Root == nil {
		return nil, errors.Errorf("document root is required")
	}
	sel := opts.Selection
	if sel == nil {
		sel = opts.Document
	}
	return &Operator{
		doc:       opts.Document,
		selection: sel,
		collector: opts.Collector,
		onEdit:    opts.OnEdit,
	}, nil
}

// 🏃 Run collects a request and applies it. A dismissed prompt yields a
// cancelled result and no error.
func (o *Operator) Run(ctx context.Context) (*Result, error) {
	if o.collector == nil {
		return nil, errors.Errorf("collector is required")
	}

	req, err := o.collector.Collect(ctx)
	if errors.Is(err, request.ErrUserCancelled) {
		zerolog.Ctx(ctx).Debug().Msg("request cancelled")
		return &Result{Cancelled: true}, nil
	}
	if err != nil {
		return nil, errors.Errorf("collecting request: %w", err)
	}

	return o.Apply(ctx, req)
}

// ✏️ Apply validates req, resolves its scope and replaces every occurrence.
//
// Every error except ErrNoOccurrencesFound is returned before the tree is
// touched. ErrNoOccurrencesFound comes with a non-nil result.
func (o *Operator) Apply(ctx context.Context, req *request.Request) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	pattern, err := text.Compile(req.Find, req.MatchCase)
	if err != nil {
		return nil, err
	}

	root, err := ResolveScope(o.doc, o.selection, req.Scope)
	if err != nil {
		return nil, err
	}

	result := &Result{Request: req}
	engine := replace.NewEngine(replace.WithObserver(func(e replace.Edit) {
		result.Edits = append(result.Edits, e)
		if o.onEdit != nil {
			o.onEdit(e)
		}
	}))

	result.Count = engine.ReplaceAll(root, pattern, req.Replace)

	logger.Debug().
		Str("pattern", pattern.String()).
		Bool("match_case", pattern.MatchCase()).
		Str("scope", req.Scope.String()).
		Str("root", root.Name).
		Int("occurrences", result.Count).
		Int("nodes", len(result.Edits)).
		Msg("replace all complete")

	if result.Count == 0 {
		return result, ErrNoOccurrencesFound
	}

	return result, nil
}

// 🗺️ ResolveScope picks the traversal root for a scope
func ResolveScope(doc *scene.Document, sel scene.Selection, scope request.Scope) (*scene.Node, error) {
	switch scope {
	case request.ScopeCurrentArtboard:
		if sel == nil {
			return nil, ErrNoFocusedScope
		}
		board := sel.FocusedArtboard()
		if board == nil {
			return nil, ErrNoFocusedScope
		}
		return board, nil
	default:
		if doc == nil || doc.Root == nil {
			return nil, errors.Errorf("document root is required")
		}
		return doc.Root, nil
	}
}
