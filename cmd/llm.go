package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/studydeck/internal/llm"
	"github.com/abhisek/studydeck/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded model calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query model calls: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No model calls recorded.")
			return nil
		}

		tw := newTable(out)
		fmt.Fprintln(tw, "ID\tTIME\tPURPOSE\tMODEL\tIN\tOUT\tMS\tOK")
		for _, e := range events {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
				e.ID, e.Timestamp.Local().Format(timeLayout), e.Purpose, truncate(e.Model, 28),
				e.InputTokens, e.OutputTokens, e.LatencyMs, mark(e.Success))
		}
		return tw.Flush()
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the captured request and response of one model call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid call id %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get model call: %w", err)
		}
		if e == nil {
			return fmt.Errorf("model call %d not found", id)
		}

		out := cmd.OutOrStdout()
		tw := newTable(out)
		fmt.Fprintf(tw, "ID:\t%d\n", e.ID)
		fmt.Fprintf(tw, "Time:\t%s\n", e.Timestamp.Local().Format(timeLayout))
		fmt.Fprintf(tw, "Provider:\t%s\n", e.Provider)
		fmt.Fprintf(tw, "Model:\t%s\n", e.Model)
		fmt.Fprintf(tw, "Purpose:\t%s\n", e.Purpose)
		fmt.Fprintf(tw, "Tokens:\t%d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Fprintf(tw, "Latency:\t%dms\n", e.LatencyMs)
		fmt.Fprintf(tw, "Success:\t%v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Fprintf(tw, "Error:\t%s\n", e.ErrorMessage)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		writeSection(out, "Request", e.RequestBody)
		writeSection(out, "Response", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No model usage recorded yet.")
			return nil
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}

		if err := writePurposeUsage(out, byPurpose); err != nil {
			return err
		}
		fmt.Fprintln(out)
		return writeModelCost(out, byModel)
	},
}

func writePurposeUsage(w io.Writer, usage []store.PurposeUsage) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "PURPOSE\tCALLS\tINPUT\tOUTPUT\tAVG MS")
	var calls, in, outTokens int
	for _, u := range usage {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		outTokens += u.OutputTokens
	}
	fmt.Fprintf(tw, "total\t%d\t%d\t%d\t\n", calls, in, outTokens)
	return tw.Flush()
}

// writeModelCost prices successful calls per model. Models missing from
// the pricing table are listed and left out of the total.
func writeModelCost(w io.Writer, usage []store.ModelUsage) error {
	if len(usage) == 0 {
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "MODEL\tCALLS\tINPUT\tOUTPUT\tCOST")
	var total float64
	var unpriced []string
	for _, u := range usage {
		price := "?"
		if p, ok := llm.PriceFor(u.Model); ok {
			c := p.Cost(u.InputTokens, u.OutputTokens)
			total += c
			price = formatCost(c)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, price)
	}
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	fmt.Fprintf(tw, "%s\t\t\t\t%s\n", label, formatCost(total))
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
	return nil
}

func writeSection(w io.Writer, title, body string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintln(w, body)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// openStore opens the event database named by --db or the default path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (quiz, summary, feedback, vision, tutor, suggestions)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
