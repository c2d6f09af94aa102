package search

import (
	"context"
	"fmt"

	"github.com/sandevgo/routebot/internal/config"
	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/pkg/log"
)

// NewExtractor creates the content extractor selected by configuration.
func NewExtractor(ctx context.Context, cfg *config.AppConfig) (core.Extractor, error) {
	log.FromCtx(ctx).Info().Str("extractor", cfg.Extractor).Msg("starting extractor")

	switch cfg.Extractor {
	case "tavily":
		if cfg.TavilyAPIKey == "" {
			return nil, fmt.Errorf("TAVILY_API_KEY is not set")
		}
		return NewTavily(cfg.TavilyBaseURL, cfg.TavilyAPIKey), nil
	case "local":
		return NewLocal(), nil
	default:
		return nil, fmt.Errorf("unknown extractor: %s", cfg.Extractor)
	}
}
