package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/pkg/log"
	"github.com/sandevgo/routebot/pkg/retry"
)

const controlPlaneURL = "https://api.pinecone.io"

// Pinecone is a REST client for a single Pinecone index. EnsureIndex talks
// to the control plane; Upsert and Query go to the index host.
type Pinecone struct {
	client  *http.Client
	retrier *retry.Retrier
	apiKey  string
	host    string
}

func NewPinecone(apiKey, host string) *Pinecone {
	return &Pinecone{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		retrier: retry.NewDefaultRetrier(),
		apiKey:  apiKey,
		host:    host,
	}
}

func (p *Pinecone) EnsureIndex(ctx context.Context, name string, dimension int, metric string) error {
	var listing struct {
		Indexes []struct {
			Name string `json:"name"`
		} `json:"indexes"`
	}
	if err := p.doJSON(ctx, http.MethodGet, controlPlaneURL+"/indexes", nil, &listing); err != nil {
		return fmt.Errorf("list indexes: %w", err)
	}

	for _, idx := range listing.Indexes {
		if idx.Name == name {
			return nil
		}
	}

	log.FromCtx(ctx).Info().Str("index", name).Int("dimension", dimension).Msg("creating vector index")

	body := map[string]any{
		"name":      name,
		"dimension": dimension,
		"metric":    metric,
		"spec": map[string]any{
			"serverless": map[string]any{
				"cloud":  "aws",
				"region": "us-east-1",
			},
		},
	}
	if err := p.doJSON(ctx, http.MethodPost, controlPlaneURL+"/indexes", body, nil); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

func (p *Pinecone) Upsert(ctx context.Context, id string, vec []float32, metadata map[string]string) error {
	body := map[string]any{
		"vectors": []map[string]any{
			{
				"id":       id,
				"values":   vec,
				"metadata": metadata,
			},
		},
	}
	if err := p.doJSON(ctx, http.MethodPost, p.host+"/vectors/upsert", body, nil); err != nil {
		return fmt.Errorf("upsert %s: %w", id, err)
	}
	return nil
}

func (p *Pinecone) Query(ctx context.Context, vec []float32, topK int, includeMetadata bool) ([]core.Match, error) {
	body := map[string]any{
		"vector":          vec,
		"topK":            topK,
		"includeMetadata": includeMetadata,
	}

	var out struct {
		Matches []struct {
			ID       string            `json:"id"`
			Score    float32           `json:"score"`
			Metadata map[string]string `json:"metadata"`
		} `json:"matches"`
	}
	if err := p.doJSON(ctx, http.MethodPost, p.host+"/query", body, &out); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	matches := make([]core.Match, 0, len(out.Matches))
	for _, m := range out.Matches {
		matches = append(matches, core.Match{ID: m.ID, Score: m.Score, Metadata: m.Metadata})
	}
	return matches, nil
}

func (p *Pinecone) doJSON(ctx context.Context, method, url string, body any, out any) error {
	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
	}

	return p.retrier.Do(ctx, func() error {
		var reader io.Reader
		if data != nil {
			reader = bytes.NewReader(data)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Api-Key", p.apiKey)

		resp, err := p.client.Do(req)
		if err != nil {
			return fmt.Errorf("request: %w", err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		if resp.StatusCode >= 300 {
			return fmt.Errorf("http %d: %s", resp.StatusCode, string(raw))
		}
		if out != nil {
			return json.Unmarshal(raw, out)
		}
		return nil
	})
}
