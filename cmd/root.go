package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/studydeck/internal/config"
	"github.com/abhisek/studydeck/internal/llm"
	"github.com/abhisek/studydeck/internal/pipeline"
	"github.com/abhisek/studydeck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studydeck [deck.pptx]",
	Short: "Study a slide deck with AI",
	Long:  "StudyDeck turns a PowerPoint deck into a summary, a staged quiz, feedback on weak areas and a tutor you can chat with.",
	Args:  cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal, so its logs go to a file.
		return setupLogging(cmd, cmd == cmd.Root())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runApp(cmd, args[0])
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYDECK_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to study preferences YAML (default $XDG_CONFIG_HOME/studydeck/config.yaml)")
	rootCmd.PersistentFlags().String("level", "", "Learner level: middle school, high school, university or expert")
	rootCmd.PersistentFlags().Int("questions", 0, fmt.Sprintf("Number of quiz questions (%d-%d)", config.MinQuestions, config.MaxQuestions))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYDECK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadStudyConfig reads the preferences file and applies flag overrides.
func loadStudyConfig(cmd *cobra.Command) (config.Study, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Study{}, err
	}

	if cmd.Flags().Changed("level") {
		cfg.Level, _ = cmd.Flags().GetString("level")
	}
	if cmd.Flags().Changed("questions") {
		cfg.NumQuestions, _ = cmd.Flags().GetInt("questions")
	}
	if err := cfg.Validate(); err != nil {
		return config.Study{}, fmt.Errorf("invalid study preferences: %w", err)
	}
	return cfg, nil
}

// setupLogging installs the default slog logger. With toFile the log is
// appended to studydeck.log in the data directory.
func setupLogging(cmd *cobra.Command, toFile bool) error {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if toFile {
		dir, err := store.DataDir()
		if err != nil {
			return err
		}
		path := filepath.Join(dir, "studydeck.log")
		if err := store.EnsureDir(path); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// env bundles what the deck commands share.
type env struct {
	store     *store.Store
	provider  llm.Provider
	processor *pipeline.Processor
	study     config.Study
}

// openEnv opens the store, loads preferences and builds the provider.
// The caller closes env.store.
func openEnv(ctx context.Context, cmd *cobra.Command) (*env, error) {
	study, err := loadStudyConfig(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	repo := st.EventRepo()
	provider, llmCfg, err := llm.NewProviderFromEnv(ctx, repo)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	provider = llm.WithTimeout(provider, study.Timeout)
	if study.VisionTimeout == 0 {
		study.VisionTimeout = llmCfg.VisionTimeout
	}
	slog.Debug("provider ready", "provider", llmCfg.Provider, "model", provider.ModelID())

	return &env{
		store:     st,
		provider:  provider,
		processor: pipeline.New(provider, repo),
		study:     study,
	}, nil
}
