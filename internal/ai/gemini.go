package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

type Gemini struct {
	APIKey string
	Model  string

	opts []option.ClientOption

	once  sync.Once
	cl    *genai.Client
	clErr error
}

func NewGemini(apiKey, model string, opts ...option.ClientOption) *Gemini {
	return &Gemini{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
		opts:   opts,
	}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Review(ctx context.Context, r ReviewRequest) (ReviewResponse, error) {
	if g.APIKey == "" {
		return ReviewResponse{}, fmt.Errorf("%w: GEMINI_API_KEY is empty", ErrUnavailable)
	}

	model := r.Model
	if model == "" {
		model = g.Model
	}

	cl, err := g.client()
	if err != nil {
		return ReviewResponse{}, classify(ctx, g.Name(), err)
	}

	m := cl.GenerativeModel(model)
	m.SetTemperature(r.Temperature)
	if r.JSONMode {
		m.ResponseMIMEType = "application/json"
	}
	if r.System != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(r.System)},
		}
	}

	resp, err := m.GenerateContent(ctx, genai.Text(r.Prompt))
	if err != nil {
		return ReviewResponse{}, g.mapError(ctx, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ReviewResponse{}, fmt.Errorf("%w: gemini: no candidates", ErrUnavailable)
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}

	out := ReviewResponse{
		Content:  b.String(),
		Provider: g.Name(),
		Model:    model,
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	} else {
		out.Usage = estimateUsage(r.System+r.Prompt, out.Content)
	}

	return out, nil
}

// client builds the SDK client on first use and shares it across reviews.
// Request contexts bound the calls, not the client.
func (g *Gemini) client() (*genai.Client, error) {
	g.once.Do(func() {
		opts := append([]option.ClientOption{option.WithAPIKey(g.APIKey)}, g.opts...)
		g.cl, g.clErr = genai.NewClient(context.Background(), opts...)
	})
	return g.cl, g.clErr
}

// Close releases the shared client, if one was built.
func (g *Gemini) Close() error {
	if g.cl == nil {
		return nil
	}
	return g.cl.Close()
}

func (g *Gemini) mapError(ctx context.Context, err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("%w: gemini: %v", ErrUnavailable, err)
	}

	apiErr, ok := apierror.FromError(err)
	if !ok {
		return classify(ctx, g.Name(), err)
	}

	code := apiErr.HTTPCode()
	if code <= 0 && apiErr.GRPCStatus() != nil {
		if apiErr.GRPCStatus().Code() == codes.DeadlineExceeded {
			return classify(ctx, g.Name(), context.DeadlineExceeded)
		}
		code = grpcToHTTP(apiErr.GRPCStatus().Code())
	}

	return &StatusError{Provider: g.Name(), Code: code, Body: apiErr.Error()}
}

func grpcToHTTP(c codes.Code) int {
	switch c {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
