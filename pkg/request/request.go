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
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	ErrEmptyFindText    = errors.Base("find field is empty")
	ErrEmptyReplaceText = errors.Base("replace field is empty")
	ErrUserCancelled    = errors.Base("cancelled by user")
)

// 🗺️ Scope selects the subtree a request applies to
type Scope int

const (
	ScopeWholeDocument Scope = iota
	ScopeCurrentArtboard
)

func (s Scope) String() string {
	switch s {
	case ScopeCurrentArtboard:
		return "currentArtboard"
	default:
		return "wholeDocument"
	}
}

// Label is the human-facing name of the scope
func (s Scope) Label() string {
	switch s {
	case ScopeCurrentArtboard:
		return "Current Artboard"
	default:
		return "Whole Document"
	}
}

// ParseScope parses a scope name. The empty string is the whole document.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wholedocument", "whole", "document", "whole document":
		return ScopeWholeDocument, nil
	case "currentartboard", "artboard", "current", "current artboard":
		return ScopeCurrentArtboard, nil
	default:
		return ScopeWholeDocument, errors.Errorf("unknown scope %q", s)
	}
}

func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Scope) UnmarshalText(b []byte) error {
	parsed, err := ParseScope(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// 📝 Request is the resolved input of one find-and-replace
type Request struct {
	Find      string
	Replace   string
	MatchCase bool
	Scope     Scope
}

// 🔍 Validate rejects requests whose find or replace text is blank.
// The values themselves are not trimmed.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Find) == "" {
		return ErrEmptyFindText
	}
	if strings.TrimSpace(r.Replace) == "" {
		return ErrEmptyReplaceText
	}
	return nil
}

func (r *Request) String() string {
	mode := "match case"
	if !r.MatchCase {
		mode = "ignore case"
	}
	return fmt.Sprintf("%q -> %q (%s, %s)", r.Find, r.Replace, mode, r.Scope)
}
