package migrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"phototitles/internal/library"
)

// resolveLibrary returns the database path for label. A preset path is
// resolved once and must be valid; otherwise the operator is asked until an
// entered path resolves.
func resolveLibrary(ctx context.Context, opts Options, label, preset string) (string, error) {
	if strings.TrimSpace(preset) != "" {
		path, err := library.ResolvePath(preset)
		if err != nil {
			return "", fmt.Errorf("%s library %q: %w", strings.ToLower(label), preset, err)
		}
		opts.Reporter.Notice(foundMessage(label, path))
		return path, nil
	}

	for {
		input, err := opts.Prompter.LibraryPath(ctx, label)
		if err != nil {
			return "", err
		}
		path, err := library.ResolvePath(input)
		if err == nil {
			opts.Reporter.Notice(foundMessage(label, path))
			return path, nil
		}
		if !errors.Is(err, library.ErrStoreUnavailable) {
			return "", err
		}
		opts.Reporter.Notice("No library was found at that location. Please try again.")
	}
}

func foundMessage(label, path string) string {
	return fmt.Sprintf("OK, the %s library database was found at %q", strings.ToLower(label), path)
}

func sameFile(a, b string) bool {
	if a == b {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
