package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrentReads bounds how many files are parsed at once.
const DefaultConcurrentReads = 4

// FileResult holds the raw rows read from one file.
type FileResult struct {
	Path string
	Rows []model.RawSale
}

// ReadFile reads a single .xlsx or .csv file.
func ReadFile(path string) ([]model.RawSale, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadWorkbook(path)
	case ".csv":
		f, err := os.Open(path) //nolint:gosec // path comes from the command line
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return ReadCSV(f, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ReadFiles reads every path concurrently. Results keep the order of paths;
// the first error cancels the remaining reads.
func ReadFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	return ReadFilesWithLimit(ctx, paths, DefaultConcurrentReads)
}

// ReadFilesWithLimit is ReadFiles with at most limit files parsed at once.
func ReadFilesWithLimit(ctx context.Context, paths []string, limit int) ([]FileResult, error) {
	if limit < 1 {
		limit = 1
	}
	results := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows, err := ReadFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = FileResult{Path: path, Rows: rows}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
