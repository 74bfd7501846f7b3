package advice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"fingerpay.backend/internal/config"
)

func newTestClient(baseURL string) *GeminiClient {
	return NewGeminiClient(config.AdviceConfig{
		APIKey:  "test-key",
		Model:   "gemini-1.5-flash",
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	})
}

func TestGeminiClient_GenerateAdvice(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateContentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(generateContentResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []part{{Text: "put something aside weekly"}}}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	advice, err := client.GenerateAdvice(context.Background(), "how should I save?")
	assert.NoError(t, err)
	assert.Equal(t, "put something aside weekly", advice)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "how should I save?", gotBody.Contents[0].Parts[0].Text)
}

func TestGeminiClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GenerateAdvice(context.Background(), "p")
	assert.ErrorContains(t, err, "unexpected status 429")
}

func TestGeminiClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":400,"message":"invalid model"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GenerateAdvice(context.Background(), "p")
	assert.ErrorContains(t, err, "invalid model")
}

func TestGeminiClient_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GenerateAdvice(context.Background(), "p")
	assert.ErrorContains(t, err, "empty response")
}

func TestMockAdvisor_RoutesByPersona(t *testing.T) {
	m := NewMockAdvisor()

	credit, err := m.GenerateAdvice(context.Background(), "You are Credit AI. Assess this merchant.")
	assert.NoError(t, err)
	assert.Contains(t, credit, "credit profile")

	agent, _ := m.GenerateAdvice(context.Background(), "You are FinAgent. Predict float demand.")
	assert.Contains(t, agent, "float demand")

	budget, _ := m.GenerateAdvice(context.Background(), "You are FinCoach. A customer has a savings vault and a monthly budget.")
	assert.Contains(t, budget, "hard ceiling")

	vault, _ := m.GenerateAdvice(context.Background(), "You are FinCoach. Suggest a single vault deposit amount.")
	assert.Contains(t, vault, "20%")

	// deterministic across calls
	again, _ := m.GenerateAdvice(context.Background(), "You are Credit AI. Assess this merchant.")
	assert.Equal(t, credit, again)
}

func TestNewProvider_FallsBackToMock(t *testing.T) {
	provider := NewProvider(config.AdviceConfig{})
	_, ok := provider.(*MockAdvisor)
	assert.True(t, ok)

	provider = NewProvider(config.AdviceConfig{APIKey: "k"})
	_, ok = provider.(*GeminiClient)
	assert.True(t, ok)
}
