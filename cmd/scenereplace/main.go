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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/walteh/scenereplace/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string) int {
	rootCmd, rootOpts := newRootCmd()
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	// the summary already warned about it
	if errors.Is(err, operation.ErrNoOccurrencesFound) {
		return 1
	}

	if rootOpts.Console != nil {
		rootOpts.Console.Errorf("command failed: %v", err)
	} else {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "❌ %s\n", err)
	}
	return 1
}
