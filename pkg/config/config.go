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

package config

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/scenereplace/pkg/request"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎛️ Defaults fill in whatever a command line or rule leaves unset
type Defaults struct {
	MatchCase *bool  `json:"match_case,omitempty" yaml:"match_case,omitempty"` // nil means true
	Scope     string `json:"scope,omitempty" yaml:"scope,omitempty"`           // wholeDocument or currentArtboard
	Artboard  string `json:"artboard,omitempty" yaml:"artboard,omitempty"`     // glob overriding the document focus
	Jobs      int    `json:"jobs,omitempty" yaml:"jobs,omitempty"`             // documents processed at once
}

// 🔄 Rule is one find/replace pair applied by the batch command
type Rule struct {
	Find      string `json:"find" yaml:"find"`
	Replace   string `json:"replace" yaml:"replace"`
	MatchCase *bool  `json:"match_case,omitempty" yaml:"match_case,omitempty"`
	Scope     string `json:"scope,omitempty" yaml:"scope,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Defaults Defaults `json:"defaults" yaml:"defaults"`
	Rules    []Rule   `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOptional is Load, except a missing file yields an empty config
func LoadOptional(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no configuration file")
		return &Config{}, nil
	}
	return Load(ctx, path)
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if _, err := request.ParseScope(cfg.Defaults.Scope); err != nil {
		return errors.Errorf("defaults.scope: %w", err)
	}
	if cfg.Defaults.Artboard != "" && !doublestar.ValidatePattern(cfg.Defaults.Artboard) {
		return errors.Errorf("defaults.artboard: invalid pattern %q", cfg.Defaults.Artboard)
	}
	if cfg.Defaults.Jobs < 0 {
		return errors.Errorf("defaults.jobs must not be negative")
	}

	for i, rule := range cfg.Rules {
		if strings.TrimSpace(rule.Find) == "" {
			return errors.Errorf("rule %d: find is required", i)
		}
		if strings.TrimSpace(rule.Replace) == "" {
			return errors.Errorf("rule %d: replace is required", i)
		}
		if _, err := request.ParseScope(rule.Scope); err != nil {
			return errors.Errorf("rule %d: %w", i, err)
		}
	}

	return nil
}

// DefaultRequest returns a request carrying the configured defaults
func (cfg *Config) DefaultRequest() request.Request {
	scope, _ := request.ParseScope(cfg.Defaults.Scope)
	return request.Request{
		MatchCase: boolOr(cfg.Defaults.MatchCase, true),
		Scope:     scope,
	}
}

// 📋 Requests turns the rules into requests, filling unset fields from the defaults
func (cfg *Config) Requests() []request.Request {
	base := cfg.DefaultRequest()
	reqs := make([]request.Request, 0, len(cfg.Rules))
	for _, rule := range cfg.Rules {
		req := base
		req.Find = rule.Find
		req.Replace = rule.Replace
		req.MatchCase = boolOr(rule.MatchCase, base.MatchCase)
		if rule.Scope != "" {
			req.Scope, _ = request.ParseScope(rule.Scope)
		}
		reqs = append(reqs, req)
	}
	return reqs
}

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".yaml" || ext == ".yml"
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}
