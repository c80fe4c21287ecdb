package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"wcag-reviewer/internal/app"
	"wcag-reviewer/internal/review"
)

var checkCmd = &cobra.Command{
	Use:   "check [file|-]",
	Short: "Review one HTML file (or stdin) and print the feedback HTML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	svc, err := app.NewReviewService(cfg, logger)
	if err != nil {
		return err
	}

	res, err := svc.Review(context.Background(), input)
	if err != nil {
		var re *review.Error
		if errors.As(err, &re) {
			return errors.New(re.Message())
		}
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Feedback)
	return err
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}
