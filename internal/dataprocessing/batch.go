package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"golang.org/x/sync/errgroup"

	"ceabcli/internal/dataset"
	apperrors "ceabcli/internal/errors"
	"ceabcli/internal/files"
	"ceabcli/internal/validation"
)

// LoadTree loads every workbook under root whose path relative to root
// matches pattern and combines them into one Dataset, in discovery order.
// The pattern is anchored at the start of the relative path, so "2024"
// matches "2024/a.xlsx" but not "archive2024/b.xlsx". An empty pattern
// treats root as a single workbook file. No matches yield the empty
// Dataset. Workbooks are read concurrently, bounded by the configured
// worker count; the first fatal error aborts the whole batch.
func (l *Loader) LoadTree(ctx context.Context, root, pattern string, diags *validation.Diagnostics) (*dataset.Dataset, error) {
	if pattern == "" {
		return l.LoadWorkbook(ctx, root, diags)
	}

	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, apperrors.NewInvalidArgument(
			fmt.Sprintf("invalid path pattern %q", pattern), err)
	}

	paths, err := files.NewDiscovery(root).FindWorkbooks(re)
	if err != nil {
		return nil, apperrors.NewSourceFormat(
			fmt.Sprintf("failed to scan %s for workbooks", root), err)
	}
	if len(paths) == 0 {
		l.logger.InfoContext(ctx, "no workbooks matched",
			slog.String("root", root),
			slog.String("pattern", pattern))
		return dataset.New(), nil
	}

	l.logger.InfoContext(ctx, "loading workbook tree",
		slog.String("root", root),
		slog.String("pattern", pattern),
		slog.Int("matches", len(paths)),
		slog.Int("workers", l.workers))

	// Loads are independent, so they run in parallel; combining afterwards
	// in discovery order keeps the result identical to a sequential batch.
	results := make([]*dataset.Dataset, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			ds, err := l.LoadWorkbook(gctx, path, diags)
			if err != nil {
				return fmt.Errorf("loading %s: %w", path, err)
			}
			results[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	combined := results[0]
	for _, ds := range results[1:] {
		combined = dataset.Combine(combined, ds)
	}
	return combined, nil
}
