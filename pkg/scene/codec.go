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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Codec reads and writes documents in one file format
type Codec interface {
	Decode(ctx context.Context, data []byte) (*Document, error)
	Encode(ctx context.Context, doc *Document) ([]byte, error)
	CanHandle(filename string) bool
}

var codecs []Codec

// RegisterCodec adds a codec to the lookup list
func RegisterCodec(c Codec) {
	codecs = append(codecs, c)
}

// CodecFor returns the codec for a file name, or nil
func CodecFor(filename string) Codec {
	for _, c := range codecs {
		if c.CanHandle(filename) {
			return c
		}
	}
	return nil
}

func init() {
	RegisterCodec(&YAMLCodec{})
	RegisterCodec(&JSONCodec{})
}

// 📥 LoadFile reads, decodes and validates a document
func LoadFile(ctx context.Context, path string) (*Document, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading document")

	c := CodecFor(path)
	if c == nil {
		return nil, errors.Errorf("no codec found for file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading document: %w", err)
	}

	doc, err := c.Decode(ctx, data)
	if err != nil {
		return nil, errors.Errorf("decoding %s: %w", path, err)
	}

	if err := doc.Validate(); err != nil {
		return nil, errors.Errorf("validating %s: %w", path, err)
	}

	return doc, nil
}

// 💾 SaveFile encodes a document and writes it through a temp file + rename
func SaveFile(ctx context.Context, path string, doc *Document) error {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("saving document")

	c := CodecFor(path)
	if c == nil {
		return errors.Errorf("no codec found for file: %s", path)
	}

	data, err := c.Encode(ctx, doc)
	if err != nil {
		return errors.Errorf("encoding %s: %w", path, err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// 🔧 YAMLCodec handles .yaml and .yml documents
type YAMLCodec struct{}

func (c *YAMLCodec) CanHandle(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".yaml" || ext == ".yml"
}

func (c *YAMLCodec) Decode(ctx context.Context, data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &doc, nil
}

func (c *YAMLCodec) Encode(ctx context.Context, doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, errors.Errorf("encoding YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Errorf("flushing YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// 🔧 JSONCodec handles .json documents
type JSONCodec struct{}

func (c *JSONCodec) CanHandle(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".json")
}

func (c *JSONCodec) Decode(ctx context.Context, data []byte) (*Document, error) {
	var doc Document
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &doc, nil
}

func (c *JSONCodec) Encode(ctx context.Context, doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Errorf("encoding JSON: %w", err)
	}
	return append(data, '\n'), nil
}
