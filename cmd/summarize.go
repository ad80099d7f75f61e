package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studydeck/internal/deck"
	"github.com/abhisek/studydeck/internal/summary"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <deck.pptx>",
	Short: "Print a summary and keywords for a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slides, err := deck.Open(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		e, err := openEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.store.Close()

		s := summary.New(e.provider, e.study.Level).Summarize(ctx, slides)
		if s.Degraded {
			return errors.New("summary generation failed")
		}

		fmt.Println(s.OneLine)
		if len(s.Keywords) > 0 {
			fmt.Printf("\nKeywords: %s\n", strings.Join(s.Keywords, ", "))
		}
		for _, sl := range s.Slides {
			fmt.Printf("\n[Slide %d] %s\n", sl.Slide, sl.Title)
			for _, p := range sl.KeyPoints {
				fmt.Printf("  • %s\n", p)
			}
		}
		return nil
	},
}
