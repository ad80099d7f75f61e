package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studydeck/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI on
// the deck at path.
func runApp(cmd *cobra.Command, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open deck: %w", err)
	}

	ctx := cmd.Context()
	e, err := openEnv(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.store.Close()

	return app.Run(ctx, app.Deps{
		Processor: e.processor,
		Provider:  e.provider,
		Config:    e.study,
		Path:      path,
	})
}
