package commands

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/scenereplace/pkg/log"
	"github.com/walteh/scenereplace/pkg/operation"
	"github.com/walteh/scenereplace/pkg/replace"
	"github.com/walteh/scenereplace/pkg/request"
	"github.com/walteh/scenereplace/pkg/scene"
	"github.com/walteh/scenereplace/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// applyFunc runs one operation against a loaded document
type applyFunc func(ctx context.Context, op *operation.Operator) (count int, edits []replace.Edit, err error)

// 🗂️ processor loads, edits and saves a set of documents, one job per document
type processor struct {
	out       io.Writer
	label     string            // request description shown per document
	artboard  string            // glob overriding the document focus
	dryRun    bool              // render diffs instead of saving
	jobs      int               // documents processed at once
	collector request.Collector // handed to every operator

	tracker *status.Tracker
	printMu sync.Mutex
}

func (p *processor) run(ctx context.Context, files []string, apply applyFunc) error {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	p.tracker = status.New(logger)
	p.tracker.Start(ctx, len(files))
	console.Infof("Processing %d document(s)", len(files))

	jobs := make([]operation.Job, 0, len(files))
	for _, file := range files {
		file := file
		jobs = append(jobs, operation.Job{
			Name: file,
			Execute: func(ctx context.Context) error {
				return p.processDocument(ctx, file, apply)
			},
		})
	}

	runner := operation.NewRunner(logger, p.jobs)
	if err := runner.Run(ctx, jobs...); err != nil {
		return err
	}

	console.LogNewline()
	p.outcomes(console)

	count, nodes := p.tracker.Totals()
	console.Summary(count, nodes)

	if p.tracker.AllUnchanged() {
		return operation.ErrNoOccurrencesFound
	}
	return nil
}

func (p *processor) processDocument(ctx context.Context, file string, apply applyFunc) error {
	logger := zerolog.Ctx(ctx).With().Str("document", file).Logger()
	ctx = logger.WithContext(ctx)

	doc, err := scene.LoadFile(ctx, file)
	if err != nil {
		return p.fail(ctx, file, err)
	}

	sel, err := p.selection(doc)
	if err != nil {
		return p.fail(ctx, file, err)
	}

	op, err := operation.New(operation.Options{
		Document:  doc,
		Selection: sel,
		Collector: p.collector,
		OnEdit: func(e replace.Edit) {
			logger.Trace().
				Strs("path", e.Path).
				Int("matches", e.Count).
				Str("delta", status.Delta(e.Before, e.After)).
				Msg("text leaf edited")
		},
	})
	if err != nil {
		return p.fail(ctx, file, err)
	}

	count, edits, err := apply(ctx, op)
	if err != nil && !errors.Is(err, operation.ErrNoOccurrencesFound) {
		return p.fail(ctx, file, err)
	}

	info := status.DocumentInfo{
		Path:   file,
		Status: status.StatusUnchanged,
		Count:  count,
		Edits:  edits,
	}

	if count > 0 {
		info.Status = status.StatusPreviewed
		if !p.dryRun {
			if err := scene.SaveFile(ctx, file, doc); err != nil {
				return p.fail(ctx, file, err)
			}
			info.Status = status.StatusModified
		}
	}

	p.tracker.Track(ctx, info)
	p.report(ctx, info)
	return nil
}

func (p *processor) selection(doc *scene.Document) (scene.Selection, error) {
	if p.artboard == "" {
		return doc, nil
	}
	board, err := doc.FindArtboard(p.artboard)
	if err != nil {
		return nil, err
	}
	return scene.FixedSelection{Artboard: board}, nil
}

func (p *processor) fail(ctx context.Context, file string, err error) error {
	p.tracker.Track(ctx, status.DocumentInfo{
		Path:   file,
		Status: status.StatusFailed,
		Error:  err,
	})
	return err
}

// report prints one document's block; blocks from concurrent jobs never interleave
func (p *processor) report(ctx context.Context, info status.DocumentInfo) {
	p.printMu.Lock()
	defer p.printMu.Unlock()

	console := log.FromContext(ctx)
	console.StartDocument(ctx, log.DocumentOperation{
		Path:    info.Path,
		Request: p.label,
		DryRun:  p.dryRun,
	})
	for _, e := range info.Edits {
		console.LogEdit(ctx, e)
	}
	console.EndDocument(ctx)

	if p.dryRun && len(info.Edits) > 0 {
		fmt.Fprint(p.out, status.Render(info.Edits))
	}
}

// outcomes prints one line per document, sorted by path
func (p *processor) outcomes(console *log.Logger) {
	formatter := status.NewDefaultFormatter()
	for _, info := range p.tracker.List() {
		if info.Status == status.StatusUnchanged {
			console.Warningf("No occurrences of find text in %s", info.Path)
			continue
		}
		fmt.Fprintln(p.out, formatter.FormatDocument(info))
	}
}
