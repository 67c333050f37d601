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

package text

import (
	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidPattern is returned when the search text is not a valid expression
var ErrInvalidPattern = errors.Base("invalid search pattern")

// 🔎 Pattern is a compiled, global search expression.
//
// The search text is compiled as an ECMAScript regular expression without
// escaping, so characters like ( ) . * + ? keep their pattern meaning.
// Matching works on runes, so . consumes a whole astral character such as an
// emoji where a UTF-16 engine would see two code units.
type Pattern struct {
	source    string
	matchCase bool
	re        *regexp2.Regexp
}

// 🏭 Compile builds a pattern that matches every occurrence of find
func Compile(find string, matchCase bool) (*Pattern, error) {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if !matchCase {
		opts |= regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(find, opts)
	if err != nil {
		return nil, errors.Errorf("%w %q: %s", ErrInvalidPattern, find, err.Error())
	}

	return &Pattern{
		source:    find,
		matchCase: matchCase,
		re:        re,
	}, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(find string, matchCase bool) *Pattern {
	p, err := Compile(find, matchCase)
	if err != nil {
		panic(err)
	}
	return p
}

// Substitute replaces every non-overlapping match in s with replacement and
// returns the new string with the number of matches. The replacement is used
// verbatim: "$1" or "$&" are not expanded.
func (p *Pattern) Substitute(s, replacement string) (string, int) {
	count := 0
	out, err := p.re.ReplaceFunc(s, func(regexp2.Match) string {
		count++
		return replacement
	}, -1, -1)
	if err != nil {
		// only reachable through a match timeout, which is never set
		return s, 0
	}
	return out, count
}

// String returns the search text the pattern was compiled from
func (p *Pattern) String() string {
	return p.source
}

// MatchCase reports whether the pattern is case-sensitive
func (p *Pattern) MatchCase() bool {
	return p.matchCase
}
