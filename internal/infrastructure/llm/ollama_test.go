package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
)

func chatServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Model  string `json:"model"`
			Stream bool   `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.Model != "llama3.1:8b" {
			t.Errorf("unexpected model: %s", payload.Model)
		}
		if payload.Stream {
			t.Error("streaming must be disabled")
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": reply},
		})
	}))
}

func newTestClient(serverURL string) *OllamaClient {
	return NewOllamaClient(config.LLMConfig{Endpoint: serverURL, Model: "llama3.1:8b"})
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{"plain yes", "YES", true},
		{"yes with trailing prose", "yes, it covers the topic.", true},
		{"plain no", "NO", false},
		{"hedged answer", "It is hard to say.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := chatServer(t, tt.reply)
			defer server.Close()

			client := newTestClient(server.URL)
			got, err := client.Classify(context.Background(), domain.Article{Title: "t", Snippet: "s"}, "Artificial Intelligence")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueriesParsesFencedJSON(t *testing.T) {
	t.Parallel()

	reply := "Here are the queries:\n```json\n[\"Infosys stock\", \"IT sector stock\", \"  \", \"Nifty IT stock\"]\n```"
	server := chatServer(t, reply)
	defer server.Close()

	client := newTestClient(server.URL)
	queries, err := client.Queries(context.Background(), domain.DomainQuery{
		Domain: domain.DomainFinance, Stock: "Infosys", Sector: "Technology",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Infosys stock", "IT sector stock", "Nifty IT stock"}, queries)
}

func TestQueriesRejectsProseReply(t *testing.T) {
	t.Parallel()

	server := chatServer(t, "I cannot produce queries right now.")
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Queries(context.Background(), domain.DomainQuery{Domain: domain.DomainTech, Topic: "AI"})

	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	reply := "Summary:\n• Infosys raised its guidance after strong results.\n• The rupee weakened against the dollar.\n"
	server := chatServer(t, reply)
	defer server.Close()

	client := newTestClient(server.URL)
	bullets, err := client.Summarize(context.Background(), domain.DomainQuery{Domain: domain.DomainFinance},
		[]domain.Article{{Title: "a"}, {Title: "b"}})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Infosys raised its guidance after strong results.",
		"The rupee weakened against the dollar.",
	}, bullets)
}

func TestSummarizeNoBulletsIsError(t *testing.T) {
	t.Parallel()

	server := chatServer(t, "Everything is fine, nothing to report.")
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Summarize(context.Background(), domain.DomainQuery{Domain: domain.DomainTech},
		[]domain.Article{{Title: "a"}})

	assert.Error(t, err)
}

func TestChatServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Classify(context.Background(), domain.Article{}, "topic")

	assert.ErrorContains(t, err, "503")
}

func TestParseBullets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "dot markers",
			reply: "• first\n• second",
			want:  []string{"first", "second"},
		},
		{
			name:  "dash and star markers",
			reply: "- first\n* second",
			want:  []string{"first", "second"},
		},
		{
			name:  "numbered list",
			reply: "1. first\n2. second\n10. tenth",
			want:  []string{"first", "second", "tenth"},
		},
		{
			name:  "skips headers and prose",
			reply: "Summary:\n\n• only bullet\nThat is all.",
			want:  []string{"only bullet"},
		},
		{
			name:  "no bullets",
			reply: "plain paragraph",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBullets(tt.reply))
		})
	}
}
