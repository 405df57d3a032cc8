package titles

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"phototitles/internal/library"
	"phototitles/internal/logging"
)

// FillOptions configures FillFromFileNames.
type FillOptions struct {
	Verbose bool
	Absent  library.AbsentConvention
	// NormalizeUnicode converts derived titles to NFC.
	NormalizeUnicode bool
	Logger           *slog.Logger
}

// TitleFromFileName drops everything from the last dot onward. Names without
// an extension, including dot files such as ".hidden", are returned whole.
func TitleFromFileName(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx <= 0 {
		return fileName
	}
	// A run of leading dots is part of the name, not an extension separator.
	if strings.Trim(fileName[:idx], ".") == "" {
		return fileName
	}
	return fileName[:idx]
}

// FillFromFileNames sets every absent destination title to the title derived
// from the version's file name.
func FillFromFileNames(ctx context.Context, dst *library.Store, opts FillOptions) (Result, error) {
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "titles")).
		With(logging.String(logging.FieldStep, "fill"))

	// Collect first so the cursor never sees the updates made below.
	var pending []library.Version
	for version, err := range dst.Versions(ctx, library.WithoutTitle, opts.Absent) {
		if err != nil {
			return Result{}, fmt.Errorf("read untitled versions: %w", err)
		}
		pending = append(pending, version)
	}

	var result Result
	for _, version := range pending {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Inspected++
		result.Matched++

		title := TitleFromFileName(version.FileName)
		if opts.NormalizeUnicode {
			title = norm.NFC.String(title)
		}
		if _, err := dst.SetTitle(ctx, version.UUID, title); err != nil {
			return result, err
		}
		result.Updated++
		logger.Debug("title derived from file name",
			logging.String(logging.FieldUUID, version.UUID),
			logging.String("file_name", version.FileName),
			logging.String("title", title),
		)

		if opts.Verbose {
			change, err := traceChange(ctx, dst, version, true)
			if err != nil {
				return result, err
			}
			result.Trace = append(result.Trace, change)
		}
	}

	logger.Info("title fill finished", logging.Int("updated", result.Updated))
	return result, nil
}
