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
	"github.com/walteh/scenereplace/pkg/request"
	"gitlab.com/tozd/go/errors"
)

// 📚 BatchResult collects the results of several requests applied in order
type BatchResult struct {
	Results []*Result
	Missed  []*request.Request // requests that matched nothing
	Total   int
}

// 🔁 ApplyBatch applies each request in order against the same document.
//
// A request that matches nothing is recorded in Missed and does not stop the
// batch. Any other error stops the batch; earlier requests stay applied.
// ErrNoOccurrencesFound is returned when the whole batch matched nothing.
func (o *Operator) ApplyBatch(ctx context.Context, reqs []request.Request) (*BatchResult, error) {
	logger := zerolog.Ctx(ctx)
	batch := &BatchResult{}

	for i := range reqs {
		req := &reqs[i]
		result, err := o.Apply(ctx, req)
		switch {
		case errors.Is(err, ErrNoOccurrencesFound):
			logger.Debug().Int("rule", i).Str("find", req.Find).Msg("rule matched nothing")
			batch.Missed = append(batch.Missed, req)
		case err != nil:
			return batch, errors.Errorf("rule %d (%s): %w", i, req.Find, err)
		}
		if result != nil {
			batch.Results = append(batch.Results, result)
			batch.Total += result.Count
		}
	}

	if batch.Total == 0 {
		return batch, ErrNoOccurrencesFound
	}

	return batch, nil
}
