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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🧩 Kind is the closed set of node variants in a scenegraph
type Kind int

const (
	KindOther     Kind = iota // non-text, non-container leaf (shapes, images)
	KindContainer             // group, artboard or document root
	KindText                  // text leaf with a name label
)

// String returns the wire name of the kind
func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindText:
		return "text"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// ParseKind parses a wire name into a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "container", "group":
		return KindContainer, nil
	case "text":
		return KindText, nil
	case "other", "shape", "":
		return KindOther, nil
	default:
		return KindOther, errors.Errorf("unknown node kind %q", s)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// 🌳 Node is a member of the document tree.
//
// Text and Name are only meaningful for KindText. Children are only meaningful
// for KindContainer, and their order is the z-order of the document.
type Node struct {
	Kind     Kind    `json:"kind" yaml:"kind"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"`
	Artboard bool    `json:"artboard,omitempty" yaml:"artboard,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// 🏭 NewContainer creates a group node
func NewContainer(name string, children ...*Node) *Node {
	return &Node{Kind: KindContainer, Name: name, Children: children}
}

// 🏭 NewArtboard creates a container marked as an artboard
func NewArtboard(name string, children ...*Node) *Node {
	return &Node{Kind: KindContainer, Name: name, Artboard: true, Children: children}
}

// 🏭 NewText creates a text leaf
func NewText(name, text string) *Node {
	return &Node{Kind: KindText, Name: name, Text: text}
}

// 🏭 NewOther creates a leaf that carries no text
func NewOther(name string) *Node {
	return &Node{Kind: KindOther, Name: name}
}

// IsContainer reports whether the node may hold children
func (n *Node) IsContainer() bool {
	return n != nil && n.Kind == KindContainer
}

// 🚶 Walk visits n and every descendant depth-first, pre-order, in children order.
// The path passed to fn lists the names from the root down to the visited node.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(path []string, node *Node) bool) {
	n.walk(nil, fn)
}

func (n *Node) walk(parent []string, fn func(path []string, node *Node) bool) {
	if n == nil {
		return
	}
	path := append(parent[:len(parent):len(parent)], n.Name)
	if !fn(path, n) {
		return
	}
	if !n.IsContainer() {
		return
	}
	for _, child := range n.Children {
		child.walk(path, fn)
	}
}

// 🔍 Validate checks that the subtree honours the node variants
func (n *Node) Validate() error {
	var err error
	n.Walk(func(path []string, node *Node) bool {
		if err != nil {
			return false
		}
		switch node.Kind {
		case KindContainer:
			if node.Text != "" {
				err = errors.Errorf("%s: container nodes cannot carry text", strings.Join(path, "/"))
			}
			for i, child := range node.Children {
				if child == nil {
					err = errors.Errorf("%s: child %d is nil", strings.Join(path, "/"), i)
				}
			}
		case KindText, KindOther:
			if len(node.Children) > 0 {
				err = errors.Errorf("%s: %s nodes cannot have children", strings.Join(path, "/"), node.Kind)
			}
			if node.Artboard {
				err = errors.Errorf("%s: only containers can be artboards", strings.Join(path, "/"))
			}
		default:
			err = errors.Errorf("%s: unknown node kind %d", strings.Join(path, "/"), int(node.Kind))
		}
		return err == nil
	})
	return err
}
