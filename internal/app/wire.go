package app

import (
	"fmt"

	"wcag-reviewer/internal/ai"
	"wcag-reviewer/internal/budget"
	"wcag-reviewer/internal/config"
	"wcag-reviewer/internal/observability"
	"wcag-reviewer/internal/review"
)

// NewReviewService builds the provider chain, segmenter, profile and spend
// cap from cfg. Shared by the server and the check command.
func NewReviewService(cfg *config.Config, logger *observability.Logger) (*review.Service, error) {

	profile, err := cfg.Profile()
	if err != nil {
		return nil, err
	}

	provider, err := ai.NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	segmenter, err := review.NewSegmenter(cfg.Segmenter)
	if err != nil {
		return nil, fmt.Errorf("segmenter: %w", err)
	}

	return review.NewService(
		ai.NewCircuitBreaker(provider),
		segmenter,
		profile,
		cfg.MaxInputBytes,
		logger,
	).WithBudget(budget.NewGuard(cfg.BudgetDailyUSD, cfg.BudgetClientUSD, budget.NewMemoryStore())), nil
}
