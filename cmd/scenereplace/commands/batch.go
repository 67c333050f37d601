package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/scenereplace/cmd/scenereplace/opts"
	"github.com/walteh/scenereplace/pkg/log"
	"github.com/walteh/scenereplace/pkg/operation"
	"github.com/walteh/scenereplace/pkg/replace"
	"github.com/walteh/scenereplace/pkg/request"
	"gitlab.com/tozd/go/errors"
)

// NewBatchCmd creates a new batch command
func NewBatchCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		artboard string
		dryRun   bool
		jobs     int
	)

	cmd := &cobra.Command{
		Use:   "batch [files...]",
		Short: "Apply every rule from the config file to the given documents",
		Long: `Batch applies the rules listed in the config file, in order, to each document.
A rule that matches nothing in a document is skipped; the document is saved if any rule matched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			reqs := rootOpts.Config.Requests()
			if len(reqs) == 0 {
				return errors.Errorf("no rules configured")
			}

			table, err := rulesTable(reqs)
			if err != nil {
				return err
			}
			log.FromContext(ctx).Header("batch replace")
			fmt.Fprintln(cmd.OutOrStdout(), table)

			p := &processor{
				out:      cmd.OutOrStdout(),
				label:    fmt.Sprintf("%d rule(s)", len(reqs)),
				artboard: stringFlag(cmd, "artboard", artboard, rootOpts.Config.Defaults.Artboard),
				dryRun:   dryRun,
				jobs:     intFlag(cmd, "jobs", jobs, rootOpts.Config.Defaults.Jobs),
			}

			return p.run(ctx, args, func(ctx context.Context, op *operation.Operator) (int, []replace.Edit, error) {
				// each document gets its own copy of the rules
				batch, err := op.ApplyBatch(ctx, append([]request.Request(nil), reqs...))
				if batch == nil {
					return 0, nil, err
				}
				var edits []replace.Edit
				for _, r := range batch.Results {
					edits = append(edits, r.Edits...)
				}
				return batch.Total, edits, err
			})
		},
	}

	cmd.Flags().StringVarP(&artboard, "artboard", "a", "", "artboard glob to use as the current artboard")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print changes without saving")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "documents to process at once")

	return cmd
}

func rulesTable(reqs []request.Request) (string, error) {
	data := pterm.TableData{{"#", "Find", "Replace", "Case", "Scope"}}
	for i, req := range reqs {
		mode := "match"
		if !req.MatchCase {
			mode = "ignore"
		}
		data = append(data, []string{
			fmt.Sprint(i),
			req.Find,
			req.Replace,
			mode,
			req.Scope.String(),
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering rules: %w", err)
	}
	return out, nil
}
