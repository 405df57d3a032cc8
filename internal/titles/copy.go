package titles

import (
	"context"
	"fmt"
	"log/slog"

	"phototitles/internal/library"
	"phototitles/internal/logging"
)

// CopyOptions configures CopyByIdentifier.
type CopyOptions struct {
	Verbose           bool
	SourceAbsent      library.AbsentConvention
	DestinationAbsent library.AbsentConvention
	Logger            *slog.Logger
}

// DefaultCopyOptions returns the conventions of an iPhoto source and a
// Photos destination.
func DefaultCopyOptions() CopyOptions {
	return CopyOptions{
		SourceAbsent:      library.AbsentIsEmptyString,
		DestinationAbsent: library.AbsentIsNull,
	}
}

// CopyByIdentifier copies each titled source version's title onto the
// destination version with the same uuid, when that destination title is
// absent. Source versions without a match are skipped, and so are
// destinations that already carry a title.
func CopyByIdentifier(ctx context.Context, src, dst *library.Store, opts CopyOptions) (Result, error) {
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "titles")).
		With(logging.String(logging.FieldStep, "copy"))

	var result Result
	for source, err := range src.Versions(ctx, library.WithTitle, opts.SourceAbsent) {
		if err != nil {
			return result, fmt.Errorf("read source titles: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Inspected++

		target, found, err := dst.Lookup(ctx, source.UUID)
		if err != nil {
			return result, err
		}
		if !found {
			continue
		}
		result.Matched++

		updated := false
		if opts.DestinationAbsent.IsAbsent(target) {
			if _, err := dst.SetTitle(ctx, source.UUID, source.Title); err != nil {
				return result, err
			}
			updated = true
			result.Updated++
			logger.Debug("title copied",
				logging.String(logging.FieldUUID, source.UUID),
				logging.String("title", source.Title),
			)
		}

		if opts.Verbose {
			change, err := traceChange(ctx, dst, target, updated)
			if err != nil {
				return result, err
			}
			result.Trace = append(result.Trace, change)
		}
	}

	logger.Info("title copy finished",
		logging.Int("inspected", result.Inspected),
		logging.Int("matched", result.Matched),
		logging.Int("updated", result.Updated),
	)
	return result, nil
}

// traceChange reads the destination version back so the trace reflects what
// the store now holds.
func traceChange(ctx context.Context, dst *library.Store, before library.Version, updated bool) (Change, error) {
	after, found, err := dst.Lookup(ctx, before.UUID)
	if err != nil {
		return Change{}, err
	}
	if !found {
		after = before
	}
	return Change{
		UUID:     before.UUID,
		FileName: before.FileName,
		Before:   before.TitleValue(),
		After:    after.TitleValue(),
		Updated:  updated,
	}, nil
}
