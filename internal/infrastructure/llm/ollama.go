package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
	"NewsDigest/pkg/jsontext"
)

const chatTimeout = 120 * time.Second

// OllamaClient talks to an Ollama-compatible chat endpoint. It backs
// query generation, relevance classification, and summarization.
type OllamaClient struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

var (
	_ ports.QueryGenerator = (*OllamaClient)(nil)
	_ ports.Classifier     = (*OllamaClient)(nil)
	_ ports.Summarizer     = (*OllamaClient)(nil)
)

// NewOllamaClient builds a client from configuration.
func NewOllamaClient(cfg config.LLMConfig) *OllamaClient {
	return &OllamaClient{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		httpClient: &http.Client{
			Timeout: chatTimeout,
		},
	}
}

// Queries asks the model for up to five short search queries for the
// domain run. The reply must contain a JSON array of strings.
func (c *OllamaClient) Queries(ctx context.Context, q domain.DomainQuery) ([]string, error) {
	reply, err := c.chat(ctx, queryPrompt(q))
	if err != nil {
		return nil, err
	}

	var raw []string
	if err := jsontext.Unmarshal(reply, &raw); err != nil {
		return nil, fmt.Errorf("parse query list: %w", err)
	}

	queries := make([]string, 0, len(raw))
	for _, query := range raw {
		if query = strings.TrimSpace(query); query != "" {
			queries = append(queries, query)
		}
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("model returned no usable queries")
	}

	return queries, nil
}

// Classify asks a binary YES/NO relevance question about one article.
func (c *OllamaClient) Classify(ctx context.Context, article domain.Article, topic string) (bool, error) {
	reply, err := c.chat(ctx, classifyPrompt(topic, article))
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(reply)), "YES"), nil
}

// Summarize produces one bullet per article for the whole domain batch.
func (c *OllamaClient) Summarize(ctx context.Context, q domain.DomainQuery, articles []domain.Article) ([]string, error) {
	reply, err := c.chat(ctx, summaryPrompt(q, articles))
	if err != nil {
		return nil, err
	}

	bullets := ParseBullets(reply)
	if len(bullets) == 0 {
		return nil, fmt.Errorf("no bullet points in model reply")
	}
	return bullets, nil
}

// chat posts a single user message and returns the assistant reply text.
func (c *OllamaClient) chat(ctx context.Context, prompt string) (string, error) {
	if c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("llm client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"stream": false,
		"options": map[string]any{
			"temperature": 0,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("llm error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	return out.Message.Content, nil
}

type chatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
}

// ParseBullets pulls ordered bullet strings out of a free-form reply.
// Recognized markers: •, -, *, – and "1."-style numbering.
func ParseBullets(reply string) []string {
	var bullets []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if text, ok := trimBulletMarker(line); ok {
			if text != "" {
				bullets = append(bullets, text)
			}
		}
	}
	return bullets
}

func trimBulletMarker(line string) (string, bool) {
	for _, marker := range []string{"•", "-", "*", "–"} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}

	// Numbered list: "3. text"
	if dot := strings.Index(line, "."); dot > 0 && dot <= 3 {
		if _, err := fmt.Sscanf(line[:dot], "%d", new(int)); err == nil {
			return strings.TrimSpace(line[dot+1:]), true
		}
	}

	return "", false
}
