package vector

import (
	"context"
	"fmt"

	"github.com/sandevgo/routebot/internal/config"
	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/pkg/log"
)

// NewIndex creates the vector index selected by configuration.
func NewIndex(ctx context.Context, cfg *config.AppConfig) (core.VectorIndex, error) {
	log.FromCtx(ctx).Info().Str("store", cfg.VectorStore).Msg("starting vector index")

	switch cfg.VectorStore {
	case "pinecone":
		if cfg.PineconeAPIKey == "" || cfg.PineconeHost == "" {
			return nil, fmt.Errorf("PINECONE_API_KEY and PINECONE_HOST must be set")
		}
		return NewPinecone(cfg.PineconeAPIKey, cfg.PineconeHost), nil
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore)
	}
}
