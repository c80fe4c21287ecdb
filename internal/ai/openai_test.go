package ai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestOpenAI_Review(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "gpt-4-0613",
			"choices": [{"message": {"role": "assistant", "content": "Issues:\n1. Missing alt"}}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 30, "total_tokens": 150}
		}`))
	}))
	defer srv.Close()

	p := NewOpenAI("sk-test", "gpt-4", srv.URL)

	resp, err := p.Review(context.Background(), ReviewRequest{
		System: "sys",
		Prompt: "review this",
	})
	require.NoError(t, err)
	require.Equal(t, "Issues:\n1. Missing alt", resp.Content)
	require.Equal(t, "gpt-4-0613", resp.Model)
	require.Equal(t, "openai", resp.Provider)
	require.Equal(t, 150, resp.Usage.TotalTokens)

	sent := gjson.ParseBytes(body)
	require.Equal(t, "gpt-4", sent.Get("model").String())
	require.Equal(t, "system", sent.Get("messages.0.role").String())
	require.Equal(t, "sys", sent.Get("messages.0.content").String())
	require.Equal(t, "review this", sent.Get("messages.1.content").String())
	require.True(t, sent.Get("temperature").Exists())
	require.Zero(t, sent.Get("temperature").Float())
	require.False(t, sent.Get("response_format").Exists())
}

func TestOpenAI_JSONMode(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer srv.Close()

	_, err := NewOpenAI("k", "gpt-4o", srv.URL).Review(context.Background(), ReviewRequest{JSONMode: true})
	require.NoError(t, err)
	require.Equal(t, "json_object", gjson.GetBytes(body, "response_format.type").String())
}

func TestOpenAI_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer srv.Close()

	_, err := NewOpenAI("bad", "gpt-4", srv.URL).Review(context.Background(), ReviewRequest{})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusUnauthorized, se.Code)
	require.Equal(t, "Incorrect API key provided", se.Body)
}

func TestOpenAI_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewOpenAI("k", "gpt-4", srv.URL).Review(context.Background(), ReviewRequest{})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestOpenAI_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewOpenAI("k", "gpt-4", srv.URL).Review(ctx, ReviewRequest{})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestOpenAI_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewOpenAI("k", "gpt-4", url).Review(context.Background(), ReviewRequest{})
	require.ErrorIs(t, err, ErrTransport)
	require.False(t, errors.Is(err, ErrTimeout))
}

func TestOllama_Review(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		require.Equal(t, "llama3", gjson.GetBytes(b, "model").String())
		require.Equal(t, "sys", gjson.GetBytes(b, "system").String())
		require.False(t, gjson.GetBytes(b, "stream").Bool())
		_, _ = w.Write([]byte(`{"model":"llama3","response":"Ideas:\n1. Add headings","prompt_eval_count":10,"eval_count":5}`))
	}))
	defer srv.Close()

	resp, err := NewOllama(srv.URL+"/", "llama3").Review(context.Background(), ReviewRequest{System: "sys", Prompt: "p"})
	require.NoError(t, err)
	require.Equal(t, "Ideas:\n1. Add headings", resp.Content)
	require.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestOllama_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllama(srv.URL, "nope").Review(context.Background(), ReviewRequest{})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusNotFound, se.Code)
}

func TestGemini_MissingKey(t *testing.T) {
	_, err := NewGemini("  ", "gemini-2.5-flash").Review(context.Background(), ReviewRequest{})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestGemini_ClientReused(t *testing.T) {
	g := NewGemini("test-key", "gemini-2.5-flash")

	first, err := g.client()
	require.NoError(t, err)
	second, err := g.client()
	require.NoError(t, err)

	require.Same(t, first, second)
	require.NoError(t, g.Close())
}

func TestEstimateTokens(t *testing.T) {
	require.Equal(t, 0, EstimateTokens(""))
	require.Equal(t, 1, EstimateTokens("ab"))
	require.Equal(t, 3, EstimateTokens("twelve chars"))
}
