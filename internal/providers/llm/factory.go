package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/routebot/internal/config"
	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/pkg/log"
)

// NewCompleter creates the completion provider selected by configuration.
func NewCompleter(ctx context.Context, cfg *config.AppConfig) (core.Completer, error) {
	log.FromCtx(ctx).Info().
		Str("model", cfg.ModelID).
		Msg("starting completion provider")

	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is not set")
	}
	return NewGroq(cfg.GroqBaseURL, cfg.GroqAPIKey), nil
}
