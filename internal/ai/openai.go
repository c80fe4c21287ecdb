package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

type OpenAI struct {
	Key   string
	Model string
	URL   string

	client *http.Client
}

func NewOpenAI(key, model, url string) *OpenAI {
	if url == "" {
		url = defaultOpenAIURL
	}
	// No client timeout: the caller's context bounds the call.
	return &OpenAI{Key: key, Model: model, URL: url, client: &http.Client{}}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Review(ctx context.Context, r ReviewRequest) (ReviewResponse, error) {
	model := r.Model
	if model == "" {
		model = o.Model
	}

	body, err := o.buildBody(model, r)
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("build openai body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.URL, strings.NewReader(body))
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("build openai request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+o.Key)
	req.Header.Set("Content-Type", "application/json")

	res, err := o.client.Do(req)
	if err != nil {
		return ReviewResponse{}, classify(ctx, o.Name(), err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return ReviewResponse{}, classify(ctx, o.Name(), err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := gjson.GetBytes(raw, "error.message").String()
		if msg == "" {
			msg = truncate(string(raw), 4096)
		}
		return ReviewResponse{}, &StatusError{Provider: o.Name(), Code: res.StatusCode, Body: msg}
	}

	if !gjson.ValidBytes(raw) {
		return ReviewResponse{}, fmt.Errorf("%w: openai: invalid json body", ErrUnavailable)
	}

	out := gjson.ParseBytes(raw)
	if n := out.Get("choices.#").Int(); n == 0 {
		return ReviewResponse{}, fmt.Errorf("%w: openai: no choices", ErrUnavailable)
	}

	resp := ReviewResponse{
		Content:  out.Get("choices.0.message.content").String(),
		Provider: o.Name(),
		Model:    model,
		Usage: Usage{
			PromptTokens:     int(out.Get("usage.prompt_tokens").Int()),
			CompletionTokens: int(out.Get("usage.completion_tokens").Int()),
			TotalTokens:      int(out.Get("usage.total_tokens").Int()),
		},
	}
	if m := out.Get("model").String(); m != "" {
		resp.Model = m
	}
	if resp.Usage.TotalTokens == 0 {
		resp.Usage = estimateUsage(r.System+r.Prompt, resp.Content)
	}

	return resp, nil
}

func (o *OpenAI) buildBody(model string, r ReviewRequest) (string, error) {
	messages := []chatMessage{
		{Role: "system", Content: r.System},
		{Role: "user", Content: r.Prompt},
	}

	body, err := sjson.Set(`{}`, "model", model)
	if err != nil {
		return "", err
	}
	if body, err = sjson.Set(body, "messages", messages); err != nil {
		return "", err
	}
	if body, err = sjson.Set(body, "temperature", r.Temperature); err != nil {
		return "", err
	}
	if r.JSONMode {
		if body, err = sjson.Set(body, "response_format.type", "json_object"); err != nil {
			return "", err
		}
	}
	return body, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
