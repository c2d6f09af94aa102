package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/pkg/retry"
)

// Tavily is a REST client for the Tavily extract and search endpoints.
type Tavily struct {
	client  *http.Client
	retrier *retry.Retrier
	baseURL string
	apiKey  string
}

func NewTavily(baseURL, apiKey string) *Tavily {
	return &Tavily{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		retrier: retry.NewDefaultRetrier(),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (t *Tavily) Extract(ctx context.Context, urls []string) ([]core.ExtractResult, error) {
	payload := map[string]any{
		"urls": urls,
	}

	var out struct {
		Results []core.ExtractResult `json:"results"`
	}
	if err := t.postJSON(ctx, "/extract", payload, &out); err != nil {
		return nil, fmt.Errorf("tavily extract: %w", err)
	}
	return out.Results, nil
}

func (t *Tavily) SearchContext(ctx context.Context, query string) (string, error) {
	payload := map[string]any{
		"query":          query,
		"search_depth":   "basic",
		"include_answer": false,
	}

	var out struct {
		Results []struct {
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := t.postJSON(ctx, "/search", payload, &out); err != nil {
		return "", fmt.Errorf("tavily search: %w", err)
	}

	parts := make([]string, 0, len(out.Results))
	for _, r := range out.Results {
		if r.Content == "" {
			continue
		}
		parts = append(parts, r.Content)
	}
	return strings.Join(parts, "\n"), nil
}

func (t *Tavily) postJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	return t.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+t.apiKey)

		resp, err := t.client.Do(req)
		if err != nil {
			return fmt.Errorf("request: %w", err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("http %d: %s", resp.StatusCode, string(raw))
		}
		return json.Unmarshal(raw, out)
	})
}
