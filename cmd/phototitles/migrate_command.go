package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"phototitles/internal/migrate"
	"phototitles/internal/prompt"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var (
		oldPath string
		newPath string
		yes     bool
		verbose bool
		backup  bool
		discard bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy titles from an old library into a new one",
		Long: `Interactively copy image titles from an old iPhoto library to a new Photos
library, then title the remaining images from their file names.

Nothing is written until the final "Save changes?" confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if oldPath != "" {
				cfg.Libraries.OldPath = oldPath
			}
			if newPath != "" {
				cfg.Libraries.NewPath = newPath
			}
			if verbose {
				cfg.Migration.Verbose = true
			}
			if backup {
				cfg.Migration.Backup = true
			}

			out := cmd.OutOrStdout()
			outcome, err := migrate.Run(cmd.Context(), migrate.Options{
				Config:   cfg,
				Prompter: prompt.New(cmd.InOrStdin(), out, prompt.Options{AssumeYes: yes}),
				Reporter: newTerminalReporter(out),
				Logger:   logger,
				Discard:  discard,
			})
			if errors.Is(err, migrate.ErrAborted) {
				fmt.Fprintln(out, "Nothing was changed.")
				return nil
			}
			if err != nil {
				return err
			}
			if outcome.BackupDir != "" {
				fmt.Fprintf(out, "Backups: %s\n", outcome.BackupDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&oldPath, "old", "", "Old (iPhoto) library or Library.apdb path")
	cmd.Flags().StringVar(&newPath, "new", "", "New (Photos) library or Library.apdb path")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Answer yes to every confirmation")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show before and after titles for every matched image")
	cmd.Flags().BoolVar(&backup, "backup", false, "Back up both library databases before the run")
	cmd.Flags().BoolVar(&discard, "discard", false, "Discard all changes at the end of the run (dry run)")
	return cmd
}
