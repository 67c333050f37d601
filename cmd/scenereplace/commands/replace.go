package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/walteh/scenereplace/cmd/scenereplace/opts"
	"github.com/walteh/scenereplace/pkg/log"
	"github.com/walteh/scenereplace/pkg/operation"
	"github.com/walteh/scenereplace/pkg/replace"
	"github.com/walteh/scenereplace/pkg/request"
	"github.com/walteh/scenereplace/pkg/text"
	"gitlab.com/tozd/go/errors"
)

type replaceFlags struct {
	find        string
	replace     string
	matchCase   bool
	scope       string
	artboard    string
	interactive bool
	dryRun      bool
	jobs        int
}

// NewReplaceCmd creates a new replace command
func NewReplaceCmd(rootOpts *opts.RootOpts) *cobra.Command {
	flags := &replaceFlags{}

	cmd := &cobra.Command{
		Use:   "replace [files...]",
		Short: "Replace text in every text layer of the given documents",
		Long: `Replace rewrites every match of the find text in the text layers of each document.
It will:
1. Resolve the request from flags, config defaults or an interactive prompt
2. Load each document and pick the whole document or the focused artboard
3. Replace all matches, renaming layers whose name mirrors their text
4. Save the document (or print a diff with --dry-run)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			req, err := flags.resolve(ctx, cmd, rootOpts)
			if errors.Is(err, request.ErrUserCancelled) {
				log.FromContext(ctx).Info("Cancelled")
				return nil
			}
			if err != nil {
				return err
			}

			p := &processor{
				out:       cmd.OutOrStdout(),
				label:     req.String(),
				artboard:  stringFlag(cmd, "artboard", flags.artboard, rootOpts.Config.Defaults.Artboard),
				dryRun:    flags.dryRun,
				jobs:      intFlag(cmd, "jobs", flags.jobs, rootOpts.Config.Defaults.Jobs),
				collector: request.StaticCollector{Request: *req},
			}

			log.FromContext(ctx).Header("find and replace")
			return p.run(ctx, args, func(ctx context.Context, op *operation.Operator) (int, []replace.Edit, error) {
				result, err := op.Run(ctx)
				if err != nil {
					if result != nil {
						return result.Count, result.Edits, err
					}
					return 0, nil, err
				}
				return result.Count, result.Edits, nil
			})
		},
	}

	cmd.Flags().StringVarP(&flags.find, "find", "f", "", "text or pattern to find")
	cmd.Flags().StringVarP(&flags.replace, "replace", "r", "", "replacement text")
	cmd.Flags().BoolVar(&flags.matchCase, "match-case", true, "match case when finding")
	cmd.Flags().StringVarP(&flags.scope, "scope", "s", "", "wholeDocument or currentArtboard")
	cmd.Flags().StringVarP(&flags.artboard, "artboard", "a", "", "artboard glob to use as the current artboard")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "prompt for the request")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "print changes without saving")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 1, "documents to process at once")

	return cmd
}

// resolve builds the request from config defaults, flags and, if asked, the prompt.
// Requests that would fail for every document are rejected before any file is opened.
func (f *replaceFlags) resolve(ctx context.Context, cmd *cobra.Command, rootOpts *opts.RootOpts) (*request.Request, error) {
	req := rootOpts.Config.DefaultRequest()
	req.Find = f.find
	req.Replace = f.replace

	if cmd.Flags().Changed("match-case") {
		req.MatchCase = f.matchCase
	}
	if cmd.Flags().Changed("scope") {
		scope, err := request.ParseScope(f.scope)
		if err != nil {
			return nil, err
		}
		req.Scope = scope
	} else if cmd.Flags().Changed("artboard") {
		req.Scope = request.ScopeCurrentArtboard
	}

	if f.interactive {
		collected, err := request.NewPromptCollector(req).Collect(ctx)
		if err != nil {
			return nil, err
		}
		req = *collected
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := text.Compile(req.Find, req.MatchCase); err != nil {
		return nil, err
	}

	return &req, nil
}

func stringFlag(cmd *cobra.Command, name, value, fallback string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}

func intFlag(cmd *cobra.Command, name string, value, fallback int) int {
	if cmd.Flags().Changed(name) || fallback == 0 {
		return value
	}
	return fallback
}
