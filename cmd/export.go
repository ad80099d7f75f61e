package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studydeck/internal/deck"
	"github.com/abhisek/studydeck/internal/export"
	"github.com/abhisek/studydeck/internal/quiz"
)

var exportCmd = &cobra.Command{
	Use:   "export <deck.pptx>",
	Short: "Generate a quiz for a deck and write it as a printable PDF exam",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		out, _ := cmd.Flags().GetString("output")
		answers, _ := cmd.Flags().GetBool("answers")
		title, _ := cmd.Flags().GetString("title")
		if out == "" {
			out = strings.TrimSuffix(path, filepath.Ext(path)) + "-exam.pdf"
		}
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		slides, err := deck.Open(path)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		e, err := openEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.store.Close()

		set := quiz.NewGenerator(e.provider, e.study.QuizOptions()).Generate(ctx, slides)
		if set.Fallback {
			return errors.New("quiz generation failed; nothing exported")
		}

		var opts []export.Option
		if e.study.FontPath != "" {
			opts = append(opts, export.WithFont(e.study.FontPath))
		}
		data, err := export.Exam(set, title, answers, opts...)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}

		fmt.Printf("Wrote %d questions to %s\n", set.Count(), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output PDF path (default <deck>-exam.pdf)")
	exportCmd.Flags().Bool("answers", false, "Include the answer key")
	exportCmd.Flags().String("title", "", "Exam title (default deck file name)")
}
