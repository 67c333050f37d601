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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/scenereplace/pkg/request"
	"gitlab.com/tozd/go/errors"
)

func TestOperator_ApplyBatch(t *testing.T) {
	t.Run("rules_apply_in_order", func(t *testing.T) {
		doc := testDocument()
		op, err := New(Options{Document: doc})
		require.NoError(t, err)

		batch, err := op.ApplyBatch(testContext(), []request.Request{
			{Find: "Hello", Replace: "Hi", MatchCase: true},
			{Find: "Hi World", Replace: "Hi Earth", MatchCase: true},
			{Find: "Zebra", Replace: "Horse", MatchCase: true},
		})
		require.NoError(t, err)

		assert.Equal(t, 3, batch.Total)
		assert.Len(t, batch.Results, 3)
		require.Len(t, batch.Missed, 1)
		assert.Equal(t, "Zebra", batch.Missed[0].Find)
		assert.Equal(t, "Hi Earth", doc.Root.Children[0].Children[1].Text, "second rule should see the first rule's output")
	})

	t.Run("nothing_matched", func(t *testing.T) {
		op, err := New(Options{Document: testDocument()})
		require.NoError(t, err)

		batch, err := op.ApplyBatch(testContext(), []request.Request{
			{Find: "Zebra", Replace: "Horse"},
		})
		assert.True(t, errors.Is(err, ErrNoOccurrencesFound))
		assert.Equal(t, 0, batch.Total)
	})

	t.Run("invalid_rule_stops_batch", func(t *testing.T) {
		doc := testDocument()
		op, err := New(Options{Document: doc})
		require.NoError(t, err)

		batch, err := op.ApplyBatch(testContext(), []request.Request{
			{Find: "World", Replace: "There", MatchCase: true},
			{Find: "", Replace: "x"},
			{Find: "Hello", Replace: "Hi", MatchCase: true},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, request.ErrEmptyFindText))
		assert.Contains(t, err.Error(), "rule 1")
		assert.Equal(t, 1, batch.Total)
		assert.Equal(t, "Hello There", doc.Root.Children[0].Children[1].Text, "earlier rules stay applied")
		assert.Equal(t, "Hello", doc.Root.Children[0].Children[0].Text, "later rules never run")
	})
}
