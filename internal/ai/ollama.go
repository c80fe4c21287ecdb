package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type OllamaProvider struct {
	url    string
	model  string
	client *http.Client
}

func NewOllama(url, model string) *OllamaProvider {
	return &OllamaProvider{
		url:    strings.TrimRight(url, "/"),
		model:  model,
		client: &http.Client{},
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
}

type ollamaResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

func (o *OllamaProvider) Name() string { return "ollama" }

func (o *OllamaProvider) Review(
	ctx context.Context,
	r ReviewRequest,
) (ReviewResponse, error) {

	model := r.Model
	if model == "" {
		model = o.model
	}

	reqBody := ollamaRequest{
		Model:   model,
		System:  r.System,
		Prompt:  r.Prompt,
		Stream:  false,
		Options: ollamaOptions{Temperature: r.Temperature},
	}
	if r.JSONMode {
		reqBody.Format = "json"
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		o.url+"/api/generate",
		bytes.NewBuffer(b),
	)
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("build ollama request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return ReviewResponse{}, classify(ctx, o.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return ReviewResponse{}, &StatusError{Provider: o.Name(), Code: resp.StatusCode, Body: string(msg)}
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if ctx.Err() != nil {
			return ReviewResponse{}, classify(ctx, o.Name(), err)
		}
		return ReviewResponse{}, fmt.Errorf("%w: decode ollama response: %v", ErrUnavailable, err)
	}

	usage := Usage{
		PromptTokens:     out.PromptEvalCount,
		CompletionTokens: out.EvalCount,
		TotalTokens:      out.PromptEvalCount + out.EvalCount,
	}
	if usage.TotalTokens == 0 {
		usage = estimateUsage(reqBody.System+reqBody.Prompt, out.Response)
	}

	return ReviewResponse{
		Content:  out.Response,
		Provider: o.Name(),
		Model:    model,
		Usage:    usage,
	}, nil
}

func estimateUsage(prompt, completion string) Usage {
	promptTokens := EstimateTokens(prompt)
	completionTokens := EstimateTokens(completion)
	return Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
	}
}

// EstimateTokens is a rough ~4 chars/token count for providers that do
// not report usage.
func EstimateTokens(s string) int {
	if len(s) == 0 {
		return 0
	}
	n := len(s) / 4
	if n == 0 {
		return 1
	}
	return n
}
