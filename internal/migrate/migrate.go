package migrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"phototitles/internal/config"
	"phototitles/internal/library"
	"phototitles/internal/logging"
	"phototitles/internal/preflight"
	"phototitles/internal/titles"
)

var (
	// ErrLibraryBusy reports a library locked by another phototitles run.
	ErrLibraryBusy = errors.New("library is in use by another phototitles run")
	// ErrAborted reports that the operator declined to start the run.
	ErrAborted = errors.New("migration aborted by operator")
)

// Step names passed to Reporter.Result.
const (
	StepCopy = "copy"
	StepFill = "fill"
)

const introduction = `This tool copies image titles from an old iPhoto library to a new Photos library.
Image versions are matched by uuid; titles are only copied to images that have no title in the new library.
Remaining untitled images in the new library can then be titled from their file names.

Make sure both photo libraries are backed up before continuing.
Continue?`

// Prompter collects operator input.
type Prompter interface {
	// LibraryPath returns the raw path the operator entered for label.
	LibraryPath(ctx context.Context, label string) (string, error)
	Confirm(ctx context.Context, question string) (bool, error)
}

// Reporter presents run progress to the operator.
type Reporter interface {
	Summary(titles.Summary)
	Result(step string, result titles.Result)
	Notice(message string)
}

// Options configures Run.
type Options struct {
	Config   *config.Config
	Prompter Prompter
	Reporter Reporter
	Logger   *slog.Logger
	// Discard answers the save confirmation with no.
	Discard bool
}

// Outcome describes what a run did.
type Outcome struct {
	RunID     string
	OldPath   string
	NewPath   string
	Copied    *titles.Result
	Filled    *titles.Result
	Saved     bool
	BackupDir string
}

// Run performs one migration. Uncommitted changes are rolled back whenever
// Run returns an error.
func Run(ctx context.Context, opts Options) (Outcome, error) {
	if opts.Config == nil || opts.Prompter == nil || opts.Reporter == nil {
		return Outcome{}, errors.New("migrate requires config, prompter, and reporter")
	}
	cfg := opts.Config

	outcome := Outcome{RunID: uuid.NewString()}
	ctx = logging.WithRunID(ctx, outcome.RunID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "migrate"))

	oldConvention, err := library.ParseAbsentConvention(cfg.Libraries.OldAbsent)
	if err != nil {
		return outcome, fmt.Errorf("libraries.old_absent: %w", err)
	}
	newConvention, err := library.ParseAbsentConvention(cfg.Libraries.NewAbsent)
	if err != nil {
		return outcome, fmt.Errorf("libraries.new_absent: %w", err)
	}

	proceed, err := opts.Prompter.Confirm(ctx, introduction)
	if err != nil {
		return outcome, err
	}
	if !proceed {
		return outcome, ErrAborted
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return outcome, err
	}

	outcome.OldPath, err = resolveLibrary(ctx, opts, "OLD", cfg.Libraries.OldPath)
	if err != nil {
		return outcome, err
	}
	outcome.NewPath, err = resolveLibrary(ctx, opts, "NEW", cfg.Libraries.NewPath)
	if err != nil {
		return outcome, err
	}
	if sameFile(outcome.OldPath, outcome.NewPath) {
		return outcome, fmt.Errorf("%w: old and new library are the same database %s", library.ErrStoreUnavailable, outcome.NewPath)
	}
	logger.Info("migration started",
		logging.String("old_library", outcome.OldPath),
		logging.String("new_library", outcome.NewPath),
	)

	if failure, failed := preflight.FirstFailure(preflight.RunAll(cfg, outcome.OldPath, outcome.NewPath)); failed {
		return outcome, fmt.Errorf("%w: %s: %s", library.ErrStoreUnavailable, failure.Name, failure.Detail)
	}

	locks, err := acquireLocks(cfg.LockDir(), outcome.OldPath, outcome.NewPath)
	if err != nil {
		return outcome, err
	}
	defer locks.release(logger)

	if cfg.Migration.Backup {
		outcome.BackupDir, err = backupLibraries(ctx, cfg.Paths.BackupDir, outcome.OldPath, outcome.NewPath, logger)
		if err != nil {
			return outcome, err
		}
		opts.Reporter.Notice(fmt.Sprintf("Both libraries were backed up to %s", outcome.BackupDir))
	}

	oldStore, err := library.Open(ctx, outcome.OldPath, library.Options{ReadOnly: true, Logger: opts.Logger})
	if err != nil {
		return outcome, err
	}
	defer oldStore.Close()

	newStore, err := library.Open(ctx, outcome.NewPath, library.Options{Logger: opts.Logger})
	if err != nil {
		return outcome, err
	}
	defer newStore.Close()

	session := &session{
		opts:          opts,
		logger:        logger,
		oldStore:      oldStore,
		newStore:      newStore,
		oldConvention: oldConvention,
		newConvention: newConvention,
	}
	if err := session.run(ctx, &outcome); err != nil {
		logger.Error("migration failed; changes rolled back", logging.Error(err))
		return outcome, err
	}
	return outcome, nil
}

type session struct {
	opts          Options
	logger        *slog.Logger
	oldStore      *library.Store
	newStore      *library.Store
	oldConvention library.AbsentConvention
	newConvention library.AbsentConvention
}

func (s *session) run(ctx context.Context, outcome *Outcome) error {
	cfg := s.opts.Config

	if err := s.inspect(ctx, s.oldStore, "OLD", s.oldConvention); err != nil {
		return err
	}
	copyTitles, err := s.opts.Prompter.Confirm(ctx, "Copy titles from the old library to the new?")
	if err != nil {
		return err
	}
	if copyTitles {
		result, err := titles.CopyByIdentifier(ctx, s.oldStore, s.newStore, titles.CopyOptions{
			Verbose:           cfg.Migration.Verbose,
			SourceAbsent:      s.oldConvention,
			DestinationAbsent: s.newConvention,
			Logger:            s.opts.Logger,
		})
		if err != nil {
			return fmt.Errorf("copy titles: %w", err)
		}
		outcome.Copied = &result
		s.opts.Reporter.Result(StepCopy, result)
	}

	if err := s.inspect(ctx, s.newStore, "NEW", s.newConvention); err != nil {
		return err
	}
	fill, err := s.opts.Prompter.Confirm(ctx, "Create the remaining titles in the new library based on the file names?")
	if err != nil {
		return err
	}
	if fill {
		result, err := titles.FillFromFileNames(ctx, s.newStore, titles.FillOptions{
			Verbose:          cfg.Migration.Verbose,
			Absent:           s.newConvention,
			NormalizeUnicode: cfg.Migration.NormalizeUnicode,
			Logger:           s.opts.Logger,
		})
		if err != nil {
			return fmt.Errorf("fill titles: %w", err)
		}
		outcome.Filled = &result
		s.opts.Reporter.Result(StepFill, result)
	}

	if err := s.inspect(ctx, s.newStore, "NEW", s.newConvention); err != nil {
		return err
	}

	save := false
	if !s.opts.Discard {
		save, err = s.opts.Prompter.Confirm(ctx, "Save changes?")
		if err != nil {
			return err
		}
	}
	if save {
		if err := s.newStore.Commit(); err != nil {
			return err
		}
		outcome.Saved = true
		s.opts.Reporter.Notice("Changes were saved to the new library.")
		s.logger.Info("migration saved", logging.Bool("saved", true))
		return nil
	}

	if err := s.newStore.Rollback(); err != nil {
		return err
	}
	s.opts.Reporter.Notice("All changes were discarded.")
	s.logger.Info("migration discarded", logging.Bool("saved", false))
	return s.inspect(ctx, s.newStore, "NEW", s.newConvention)
}

func (s *session) inspect(ctx context.Context, store *library.Store, label string, convention library.AbsentConvention) error {
	summary, err := titles.Inspect(ctx, store, label, convention)
	if err != nil {
		return err
	}
	s.opts.Reporter.Summary(summary)
	return nil
}
