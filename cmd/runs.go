package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studydeck/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent deck processing runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.EventRepo().QueryRunEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No processing runs recorded.")
			return nil
		}

		tw := newTable(out)
		fmt.Fprintln(tw, "TIME\tDECK\tSLIDES\tIMAGES\tQUESTIONS\tMS\tOK")
		for _, r := range runs {
			ok := mark(r.Success)
			switch {
			case !r.Success:
				ok += " " + r.ErrorMessage
			case r.SummaryDegraded || r.QuizDegraded:
				ok += " (degraded)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
				r.Timestamp.Local().Format(timeLayout), truncate(r.DeckPath, 28),
				r.SlideCount, r.ImageCount, r.QuestionCount, r.DurationMs, ok)
		}
		return tw.Flush()
	},
}

func init() {
	runsCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
}
