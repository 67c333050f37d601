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
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📦 Job is one unit of work, usually one document file.
// A job must own every tree it touches.
type Job struct {
	Name    string
	Execute func(ctx context.Context) error
}

// 🏃 Runner executes jobs, one at a time or with bounded concurrency
type Runner struct {
	logger *zerolog.Logger
	limit  int
}

// 🏗️ NewRunner creates a new runner. A limit below 2 runs jobs sequentially.
func NewRunner(logger *zerolog.Logger, limit int) *Runner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Runner{
		logger: logger,
		limit:  limit,
	}
}

// 🏃 Run executes every job and returns the first error
func (r *Runner) Run(ctx context.Context, jobs ...Job) error {
	if r.limit < 2 || len(jobs) < 2 {
		return r.runSync(ctx, jobs)
	}
	return r.runAsync(ctx, jobs)
}

// 🔄 runSync runs jobs in order and stops at the first failure
func (r *Runner) runSync(ctx context.Context, jobs []Job) error {
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		r.logger.Debug().Str("job", job.Name).Msg("running job")
		if err := job.Execute(ctx); err != nil {
			return errors.Errorf("%s: %w", job.Name, err)
		}
	}
	return nil
}

// ⚡ runAsync runs jobs concurrently, at most limit at a time
func (r *Runner) runAsync(ctx context.Context, jobs []Job) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("operation cancelled: %w", err)
			}
			r.logger.Debug().Str("job", job.Name).Msg("running job")
			if err := job.Execute(gctx); err != nil {
				return errors.Errorf("%s: %w", job.Name, err)
			}
			return nil
		})
	}

	return g.Wait()
}
