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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/scenereplace/pkg/request"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "valid_yaml_config",
			filename: "config.yaml",
			config: `
defaults:
  match_case: false
  scope: currentArtboard
  artboard: "Home*"
  jobs: 4
rules:
  - find: Hello
    replace: Hi
  - find: Colour
    replace: Color
    match_case: true
    scope: wholeDocument
`,
			check: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.Defaults.MatchCase, "match_case should be set")
				assert.False(t, *cfg.Defaults.MatchCase, "match_case should match")
				assert.Equal(t, "currentArtboard", cfg.Defaults.Scope, "scope should match")
				assert.Equal(t, "Home*", cfg.Defaults.Artboard, "artboard should match")
				assert.Equal(t, 4, cfg.Defaults.Jobs, "jobs should match")
				require.Len(t, cfg.Rules, 2, "should have 2 rules")
				assert.Equal(t, "Hello", cfg.Rules[0].Find, "first rule find should match")
				assert.Nil(t, cfg.Rules[0].MatchCase, "first rule match_case should be nil")
				assert.Equal(t, "Color", cfg.Rules[1].Replace, "second rule replace should match")
			},
		},
		{
			name:     "minimal_yaml_config",
			filename: "config.yml",
			config:   "",
			check: func(t *testing.T, cfg *Config) {
				assert.Nil(t, cfg.Defaults.MatchCase, "match_case should be unset")
				assert.Empty(t, cfg.Rules, "rules should be empty")
			},
		},
		{
			name:     "valid_json_config",
			filename: "config.json",
			config:   `{"defaults":{"scope":"artboard"},"rules":[{"find":"a","replace":"b"}]}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "artboard", cfg.Defaults.Scope, "scope should match")
				require.Len(t, cfg.Rules, 1, "should have 1 rule")
			},
		},
		{
			name:     "valid_hcl_config",
			filename: "config.hcl",
			config: `
defaults {
  match_case = false
  scope      = "wholeDocument"
}

rule {
  find    = "Hello"
  replace = "Hi"
}

rule {
  find       = "ACME"
  replace    = "Initech"
  match_case = true
  scope      = "currentArtboard"
}
`,
			check: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.Defaults.MatchCase, "match_case should be set")
				assert.False(t, *cfg.Defaults.MatchCase, "match_case should match")
				require.Len(t, cfg.Rules, 2, "should have 2 rules")
				assert.Equal(t, "Initech", cfg.Rules[1].Replace, "second rule replace should match")
				require.NotNil(t, cfg.Rules[1].MatchCase)
				assert.True(t, *cfg.Rules[1].MatchCase)
				assert.Equal(t, "currentArtboard", cfg.Rules[1].Scope)
			},
		},
		{
			name:        "unknown_yaml_field",
			filename:    "config.yaml",
			config:      "defaults:\n  colour: red\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "missing_rule_find",
			filename:    "config.yaml",
			config:      "rules:\n  - replace: Hi\n",
			wantErr:     true,
			errContains: "rule 0: find is required",
		},
		{
			name:        "blank_rule_replace",
			filename:    "config.yaml",
			config:      "rules:\n  - find: Hello\n    replace: '  '\n",
			wantErr:     true,
			errContains: "rule 0: replace is required",
		},
		{
			name:        "bad_default_scope",
			filename:    "config.yaml",
			config:      "defaults:\n  scope: selection\n",
			wantErr:     true,
			errContains: "defaults.scope",
		},
		{
			name:        "bad_rule_scope",
			filename:    "config.json",
			config:      `{"rules":[{"find":"a","replace":"b","scope":"page"}]}`,
			wantErr:     true,
			errContains: "rule 0: unknown scope",
		},
		{
			name:        "bad_artboard_glob",
			filename:    "config.yaml",
			config:      "defaults:\n  artboard: 'Home['\n",
			wantErr:     true,
			errContains: "defaults.artboard",
		},
		{
			name:        "negative_jobs",
			filename:    "config.yaml",
			config:      "defaults:\n  jobs: -1\n",
			wantErr:     true,
			errContains: "defaults.jobs",
		},
		{
			name:        "hcl_missing_replace",
			filename:    "config.hcl",
			config:      "rule {\n  find = \"x\"\n}\n",
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "unknown_extension",
			filename:    "config.toml",
			config:      "",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temporary config file
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, tt.filename)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			// Load config
			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	ctx := context.Background()

	cfg, err := LoadOptional(ctx, filepath.Join(t.TempDir(), ".scenereplace.yaml"))
	require.NoError(t, err, "missing file should not be an error")
	assert.Equal(t, &Config{}, cfg)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  scope: nope\n"), 0644))
	_, err = LoadOptional(ctx, path)
	require.Error(t, err, "existing invalid file should still fail")
}

func TestHCLParser_Env(t *testing.T) {
	p := &HCLParser{Environ: func() []string {
		return []string{"BRAND=Initech", "BROKEN", "=nameless"}
	}}

	cfg, err := p.Parse(context.Background(), []byte(`
rule {
  find    = "ACME"
  replace = env.BRAND
}
`))
	require.NoError(t, err)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "Initech", cfg.Rules[0].Replace)

	_, err = (&HCLParser{Environ: func() []string { return nil }}).Parse(context.Background(), []byte(`
rule {
  find    = "ACME"
  replace = env.BRAND
}
`))
	require.Error(t, err, "unknown env variables should fail to decode")
}

func TestConfigRequests(t *testing.T) {
	f := false
	tr := true

	tests := []struct {
		name string
		cfg  Config
		want []request.Request
	}{
		{
			name: "defaults_apply",
			cfg: Config{
				Rules: []Rule{{Find: "a", Replace: "b"}},
			},
			want: []request.Request{
				{Find: "a", Replace: "b", MatchCase: true, Scope: request.ScopeWholeDocument},
			},
		},
		{
			name: "configured_defaults",
			cfg: Config{
				Defaults: Defaults{MatchCase: &f, Scope: "currentArtboard"},
				Rules:    []Rule{{Find: "a", Replace: "b"}},
			},
			want: []request.Request{
				{Find: "a", Replace: "b", MatchCase: false, Scope: request.ScopeCurrentArtboard},
			},
		},
		{
			name: "rule_overrides_defaults",
			cfg: Config{
				Defaults: Defaults{MatchCase: &f, Scope: "currentArtboard"},
				Rules:    []Rule{{Find: "a", Replace: "b", MatchCase: &tr, Scope: "wholeDocument"}},
			},
			want: []request.Request{
				{Find: "a", Replace: "b", MatchCase: true, Scope: request.ScopeWholeDocument},
			},
		},
		{
			name: "no_rules",
			cfg:  Config{},
			want: []request.Request{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Requests())
		})
	}
}

func TestConfigDefaultRequest(t *testing.T) {
	req := (&Config{}).DefaultRequest()
	assert.True(t, req.MatchCase, "match case defaults to on")
	assert.Equal(t, request.ScopeWholeDocument, req.Scope)
}
