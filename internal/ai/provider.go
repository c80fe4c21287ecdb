package ai

import "context"

// ReviewRequest is one completion call: a system instruction plus the
// user prompt. JSONMode asks the provider for a JSON object reply.
type ReviewRequest struct {
	System      string
	Prompt      string
	Model       string
	Temperature float32
	JSONMode    bool
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type ReviewResponse struct {
	Content  string
	Provider string
	Model    string
	Usage    Usage
}

//go:generate mockery --name Provider --output ../mocks --with-expecter
type Provider interface {
	Name() string
	Review(ctx context.Context, r ReviewRequest) (ReviewResponse, error)
}
