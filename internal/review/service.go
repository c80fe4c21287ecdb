package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wcag-reviewer/internal/ai"
	"wcag-reviewer/internal/budget"
	"wcag-reviewer/internal/config"
	"wcag-reviewer/internal/cost"
	"wcag-reviewer/internal/observability"
)

const (
	noFeedback = "No feedback received."

	// completion size assumed when projecting the cost of a call
	projectedCompletionTokens = 800
)

// Result is the response body: exactly one field is set.
type Result struct {
	Feedback string `json:"feedback,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Service struct {
	provider  ai.Provider
	segmenter Segmenter
	profile   config.Profile
	maxInput  int
	budget    *budget.Guard
	logger    *observability.Logger
}

func NewService(
	p ai.Provider,
	s Segmenter,
	profile config.Profile,
	maxInput int,
	l *observability.Logger,
) *Service {

	return &Service{
		provider:  p,
		segmenter: s,
		profile:   profile,
		maxInput:  maxInput,
		logger:    l,
	}
}

// WithBudget caps estimated model spend. A nil guard disables the cap.
func (s *Service) WithBudget(g *budget.Guard) *Service {
	s.budget = g
	return s
}

func (s *Service) Profile() config.Profile { return s.profile }

// Review runs one submission through validation, the model call and
// formatting. On failure the returned error is a *Error.
func (s *Service) Review(ctx context.Context, text string) (Result, error) {

	log := s.logger.With("request_id", observability.RequestID(ctx))

	stage := StageValidating
	advance := func(next Stage) {
		log.Debug("review stage", "from", stage, "to", next)
		stage = next
	}
	fail := func(e *Error) (Result, error) {
		advance(StageFailed)
		observability.Reviews.WithLabelValues(e.Kind.String()).Inc()
		log.Warn("review failed", "kind", e.Kind, "stage", e.Stage, "err", e.Err)
		return Result{}, e
	}

	if strings.TrimSpace(text) == "" {
		return fail(InvalidInputError(ErrEmptyText))
	}
	if s.maxInput > 0 && len(text) > s.maxInput {
		return fail(InvalidInputError(fmt.Errorf("%w: %d > %d bytes", ErrTextTooLarge, len(text), s.maxInput)))
	}

	advance(StagePrompting)
	req := ai.ReviewRequest{
		System:      ai.SystemPrompt,
		Prompt:      ai.BuildPrompt(text, s.profile.Verbosity, s.segmenter.Instructions()),
		Model:       s.profile.Model,
		Temperature: 0,
		JSONMode:    s.segmenter.Structured(),
	}

	client := observability.ClientIP(ctx)
	projected := cost.EstimateUSD(req.Model, ai.EstimateTokens(req.System+req.Prompt), projectedCompletionTokens)
	allowed, reason, err := s.budget.Allow(ctx, client, projected, time.Now())
	if err != nil {
		return fail(&Error{Kind: ServerError, Stage: StagePrompting, Err: fmt.Errorf("budget check: %w", err)})
	}
	if !allowed {
		return fail(&Error{Kind: BudgetExceeded, Stage: StagePrompting, Err: errors.New(reason)})
	}

	advance(StageAwaitingModel)
	resp, usd, err := s.call(ctx, req)
	if err != nil {
		return fail(&Error{Kind: upstreamKind(err), Stage: StageAwaitingModel, Err: err})
	}
	if err := s.budget.Record(ctx, client, usd, time.Now()); err != nil {
		log.Error("record spend failed", "err", err)
	}

	advance(StageFormatting)
	html, err := s.format(resp.Content, text)
	if err != nil {
		return fail(&Error{Kind: ServerError, Stage: StageFormatting, Err: err})
	}

	advance(StageResponding)
	observability.Reviews.WithLabelValues("ok").Inc()
	log.Info("review done",
		"provider", resp.Provider,
		"model", resp.Model,
		"profile", s.profile.Name,
		"tokens", resp.Usage.TotalTokens,
		"cost_usd", usd,
	)

	return Result{Feedback: html}, nil
}

func (s *Service) call(ctx context.Context, req ai.ReviewRequest) (ai.ReviewResponse, float64, error) {

	ctx, cancel := context.WithTimeout(ctx, s.profile.Timeout)
	defer cancel()

	provider := s.provider.Name()

	start := time.Now()
	resp, err := s.provider.Review(ctx, req)
	duration := time.Since(start).Seconds()

	observability.AICalls.WithLabelValues(provider).Inc()
	observability.AILatency.WithLabelValues(provider).Observe(duration)

	if err != nil {
		observability.AIErrors.WithLabelValues(provider, upstreamKind(err).String()).Inc()
		return ai.ReviewResponse{}, 0, err
	}

	model := resp.Model
	if model == "" {
		model = req.Model
	}
	observability.AITokens.WithLabelValues(provider, model, "prompt").Add(float64(resp.Usage.PromptTokens))
	observability.AITokens.WithLabelValues(provider, model, "completion").Add(float64(resp.Usage.CompletionTokens))
	usd := cost.EstimateUSD(model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	observability.AICostUSD.WithLabelValues(provider, model).Add(usd)

	return resp, usd, nil
}

func (s *Service) format(reply, input string) (html string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("formatting panicked: %v", r)
		}
	}()

	if strings.TrimSpace(reply) == "" {
		reply = noFeedback
	}

	seg := s.segmenter.Segment(reply)

	result := "structured"
	if seg.Empty() {
		result = "fallback"
	}
	observability.Segmentation.WithLabelValues(s.segmenter.Name(), result).Inc()

	return Assemble(seg, ExtractImageSuggestions(input), reply), nil
}

func upstreamKind(err error) Kind {
	var se *ai.StatusError
	switch {
	case errors.Is(err, ai.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return UpstreamTimeout
	case errors.As(err, &se), errors.Is(err, ai.ErrUnavailable):
		return UpstreamError
	default:
		return NetworkError
	}
}
