package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"wcag-reviewer/internal/config"
	"wcag-reviewer/internal/observability"
)

var (
	envFile string
	profile string
	cfg     *config.Config
	logger  *observability.Logger
)

var rootCmd = &cobra.Command{
	Use:           "wcag-reviewer",
	Short:         "WCAG accessibility review service",
	Long:          `Sends HTML to a language model for a WCAG review and renders the answer as grouped issues, suggestions and ideas.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "review profile (overrides REVIEW_PROFILE)")
}

func initConfig() {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", envFile, err)
		os.Exit(1)
	}

	cfg = config.Load()
	if profile != "" {
		cfg.ReviewProfile = profile
	}

	logger = observability.NewLogger(cfg.LogLevel, cfg.Env)
}
