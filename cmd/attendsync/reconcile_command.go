package main

import (
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/attendsync/internal/app"
)

func newReconcileCommand(cc *commandContext) *cobra.Command {
	var (
		source, roster, output, unmatched string
		scorer                            string
		matchThreshold, durationThreshold float64
		skipRows, workers                 int
		quiet                             bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Mark roster attendance from a meeting export and write the updated roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cc.ensureConfig(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("source") {
				cfg.SourceFile = source
			}
			if flags.Changed("roster") {
				cfg.RosterFile = roster
			}
			if flags.Changed("output") {
				cfg.OutputFile = output
			}
			if flags.Changed("unmatched") {
				cfg.UnmatchedFile = unmatched
			}
			if flags.Changed("scorer") {
				cfg.Scorer = scorer
			}
			if flags.Changed("match-threshold") {
				cfg.MatchThreshold = matchThreshold
			}
			if flags.Changed("duration-threshold") {
				cfg.DurationThreshold = durationThreshold
			}
			if flags.Changed("skip-rows") {
				cfg.SkipRows = skipRows
			}
			if flags.Changed("workers") {
				cfg.WorkerCount = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			svc, err := buildService(cfg, cc.log)
			if err != nil {
				return err
			}

			run, err := svc.ReconcileFiles(cmd.Context(), service.Files{
				Source:    cfg.SourceFile,
				Roster:    cfg.RosterFile,
				Output:    cfg.OutputFile,
				Unmatched: cfg.UnmatchedFile,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !quiet {
				fmt.Fprintln(out, renderDecisions(run))
			}
			fmt.Fprintln(out, renderSummary(run))
			if cfg.OutputFile != "" {
				fmt.Fprintf(out, "Updated roster: %s\n", cfg.OutputFile)
			}
			if cfg.UnmatchedFile != "" {
				fmt.Fprintf(out, "Unmatched report: %s\n", cfg.UnmatchedFile)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&source, "source", "", "Meeting export CSV (config: source_file)")
	flags.StringVar(&roster, "roster", "", "Roster CSV (config: roster_file)")
	flags.StringVar(&output, "output", "", "Updated roster CSV to write (config: output_file)")
	flags.StringVar(&unmatched, "unmatched", "", "Unmatched attendee report to write (config: unmatched_file)")
	flags.StringVar(&scorer, "scorer", "", "Similarity algorithm: token_sort or ratio")
	flags.Float64Var(&matchThreshold, "match-threshold", 0, "Minimum name similarity, 0-100 (config: match_threshold)")
	flags.Float64Var(&durationThreshold, "duration-threshold", 0, "Minimum minutes attended for Successful (config: duration_threshold)")
	flags.IntVar(&skipRows, "skip-rows", 0, "Metadata lines before the export header (config: skip_rows)")
	flags.IntVar(&workers, "workers", 0, "Goroutines resolving roster entries; 0 uses all CPUs (config: worker_count)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Print only the summary")

	return cmd
}
