package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"phototitles/internal/config"
	"phototitles/internal/library"
	"phototitles/internal/titles"
)

type checkOutput struct {
	Path         string `json:"path"`
	Convention   string `json:"absent_convention"`
	Total        int    `json:"total"`
	WithTitle    int    `json:"with_title"`
	WithoutTitle int    `json:"without_title"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var (
		absent  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "check PATH",
		Short: "Report title coverage of one library without changing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			convention, err := library.ParseAbsentConvention(absent)
			if err != nil {
				return err
			}

			path, err := library.ResolvePath(args[0])
			if err != nil {
				return err
			}
			store, err := library.Open(cmd.Context(), path, library.Options{ReadOnly: true, Logger: logger})
			if err != nil {
				return err
			}
			defer store.Close()

			summary, err := titles.Inspect(cmd.Context(), store, "Library", convention)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, checkOutput{
					Path:         path,
					Convention:   convention.String(),
					Total:        summary.Total,
					WithTitle:    summary.WithTitle,
					WithoutTitle: summary.WithoutTitle,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Library database: %s\n", path)
			fmt.Fprintln(out, renderSummaryTable(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&absent, "absent", config.AbsentNull, "How the library stores a missing title: null (Photos) or empty (iPhoto)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
