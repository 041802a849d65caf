package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatCompletionBody(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

func newTestLLM(t *testing.T, baseURL string) *OpenAILLM {
	t.Helper()
	llm, err := NewOpenAILLMFromConfig(&LLMSettings{
		Model:   "test-model",
		APIKey:  "test-key",
		BaseURL: baseURL,
	})
	require.NoError(t, err)
	return llm
}

func TestCompleteReturnsGeneratedText(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionBody("<p>排版结果</p>"))
	}))
	defer srv.Close()

	llm := newTestLLM(t, srv.URL)
	out, err := llm.Complete(context.Background(), Prompt{System: "sys", User: "正文", Temperature: 0.6})
	require.NoError(t, err)
	assert.Equal(t, "<p>排版结果</p>", out)
	assert.EqualValues(t, 1, requests.Load())
}

func TestCompleteRetriesTransientFailures(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		if n < 3 {
			http.Error(w, "upstream hiccup", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionBody("ok"))
	}))
	defer srv.Close()

	llm := newTestLLM(t, srv.URL)
	out, err := llm.Complete(context.Background(), Prompt{System: "sys", User: "u", Temperature: 0.6})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.EqualValues(t, 3, requests.Load())
}

func TestCompleteEmptyChoicesNoRetry(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "x", "choices": []any{}})
	}))
	defer srv.Close()

	llm := newTestLLM(t, srv.URL)
	_, err := llm.Complete(context.Background(), Prompt{System: "sys", User: "u"})
	require.Error(t, err)
	assert.EqualValues(t, 1, requests.Load())
}

func TestNewOpenAILLMValidation(t *testing.T) {
	_, err := NewOpenAILLMFromConfig(nil)
	assert.Error(t, err)
	_, err = NewOpenAILLMFromConfig(&LLMSettings{Model: "m"})
	assert.Error(t, err)
	_, err = NewOpenAILLMFromConfig(&LLMSettings{APIKey: "k"})
	assert.Error(t, err)
}
