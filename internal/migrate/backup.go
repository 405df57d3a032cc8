package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"phototitles/internal/fileutil"
	"phototitles/internal/library"
	"phototitles/internal/logging"
)

const backupStampFormat = "20060102T150405.000Z"

// backupLibraries snapshots both databases into a fresh timestamped directory
// under root and returns that directory.
func backupLibraries(ctx context.Context, root, oldPath, newPath string, logger *slog.Logger) (string, error) {
	dir := filepath.Join(root, time.Now().UTC().Format(backupStampFormat))
	copies := []struct {
		src  string
		name string
	}{
		{oldPath, "old-" + filepath.Base(oldPath)},
		{newPath, "new-" + filepath.Base(newPath)},
	}
	for _, c := range copies {
		dst := filepath.Join(dir, c.name)
		versions, err := library.Snapshot(ctx, c.src, dst)
		if err != nil {
			return "", fmt.Errorf("back up %s: %w", c.src, err)
		}
		digest, err := fileutil.Digest(dst)
		if err != nil {
			return "", fmt.Errorf("back up %s: %w", c.src, err)
		}
		logger.Info("library backed up",
			logging.String(logging.FieldLibrary, c.src),
			logging.String("backup", dst),
			logging.Int("versions", versions),
			logging.String("sha256", digest),
		)
	}
	return dir, nil
}
