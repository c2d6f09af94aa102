package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inbucket/html2text"
	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/pkg/log"
	"github.com/sandevgo/routebot/pkg/retry"
)

const (
	maxResponseSize     = 1 << 20 // 1MB limit
	defaultFetchTimeout = 15 * time.Second
)

// Local extracts page text by fetching URLs directly and stripping HTML.
// It covers indexing when no external extraction service is configured.
type Local struct {
	client  *http.Client
	retrier *retry.Retrier
}

func NewLocal() *Local {
	return &Local{
		client: &http.Client{
			Timeout: defaultFetchTimeout,
		},
		retrier: retry.NewDefaultRetrier(),
	}
}

func (l *Local) Extract(ctx context.Context, urls []string) ([]core.ExtractResult, error) {
	logger := log.FromCtx(ctx)

	results := make([]core.ExtractResult, 0, len(urls))
	for _, url := range urls {
		content, err := l.fetch(ctx, url)
		if err != nil {
			// One bad URL does not sink the batch
			logger.Warn().Err(err).Str("url", url).Msg("failed to fetch url")
			continue
		}
		results = append(results, core.ExtractResult{URL: url, RawContent: content})
	}
	return results, nil
}

// SearchContext is not available without an external search service.
func (l *Local) SearchContext(ctx context.Context, query string) (string, error) {
	return "", fmt.Errorf("local extractor does not support search")
}

func (l *Local) fetch(ctx context.Context, url string) (string, error) {
	var body string
	err := l.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", core.BotUserAgent)

		resp, err := l.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch url: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		}

		limitedReader := io.LimitReader(resp.Body, maxResponseSize)

		body, err = html2text.FromReader(limitedReader, html2text.Options{
			OmitLinks:    true,
			PrettyTables: false,
		})
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return body, nil
}
