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

package request

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎤 Collector gathers a request from the user.
// It returns ErrUserCancelled when the user dismisses the prompt.
type Collector interface {
	Collect(ctx context.Context) (*Request, error)
}

// 📌 StaticCollector returns a request that was resolved up front (flags, config)
type StaticCollector struct {
	Request Request
}

func (c StaticCollector) Collect(ctx context.Context) (*Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("collecting request: %w", err)
	}
	req := c.Request
	return &req, nil
}

const (
	buttonCancel     = "Cancel"
	buttonReplaceAll = "Replace All"
)

// 🖥️ Prompter is the set of terminal widgets the prompt collector needs
type Prompter interface {
	TextInput(label, defaultValue string) (string, error)
	Select(label string, options []string, defaultOption string) (string, error)
	Confirm(label string, defaultValue bool) (bool, error)
}

// 💬 PromptCollector asks for a request on an interactive terminal
type PromptCollector struct {
	Prompter Prompter
	Defaults Request
}

// 🏭 NewPromptCollector creates a collector backed by pterm widgets.
// Defaults pre-fill the form.
func NewPromptCollector(defaults Request) *PromptCollector {
	return &PromptCollector{
		Prompter: PTermPrompter{},
		Defaults: defaults,
	}
}

func (c *PromptCollector) Collect(ctx context.Context) (*Request, error) {
	logger := zerolog.Ctx(ctx)

	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("collecting request: %w", err)
	}

	find, err := c.Prompter.TextInput("Find", c.Defaults.Find)
	if err != nil {
		return nil, errors.Errorf("reading find text: %w", err)
	}

	replacement, err := c.Prompter.TextInput("Replace", c.Defaults.Replace)
	if err != nil {
		return nil, errors.Errorf("reading replace text: %w", err)
	}

	scopeLabel, err := c.Prompter.Select("Scope",
		[]string{ScopeWholeDocument.Label(), ScopeCurrentArtboard.Label()},
		c.Defaults.Scope.Label())
	if err != nil {
		return nil, errors.Errorf("reading scope: %w", err)
	}
	scope, err := ParseScope(scopeLabel)
	if err != nil {
		return nil, errors.Errorf("reading scope: %w", err)
	}

	matchCase, err := c.Prompter.Confirm("Match case", c.Defaults.MatchCase)
	if err != nil {
		return nil, errors.Errorf("reading match case: %w", err)
	}

	button, err := c.Prompter.Select("Find And Replace", []string{buttonReplaceAll, buttonCancel}, buttonReplaceAll)
	if err != nil {
		return nil, errors.Errorf("reading action: %w", err)
	}
	if button != buttonReplaceAll {
		logger.Debug().Str("button", button).Msg("prompt dismissed")
		return nil, ErrUserCancelled
	}

	return &Request{
		Find:      find,
		Replace:   replacement,
		MatchCase: matchCase,
		Scope:     scope,
	}, nil
}

// 🎨 PTermPrompter renders prompts with pterm's interactive printers
type PTermPrompter struct{}

func (PTermPrompter) TextInput(label, defaultValue string) (string, error) {
	return pterm.DefaultInteractiveTextInput.
		WithDefaultValue(defaultValue).
		Show(label)
}

func (PTermPrompter) Select(label string, options []string, defaultOption string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultOption(defaultOption).
		Show(label)
}

func (PTermPrompter) Confirm(label string, defaultValue bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(defaultValue).
		Show(label)
}
