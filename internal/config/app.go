package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/routebot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"ROUTEBOT_RUNTIME_PATH" envDefault:".routebot"`

	// Completion provider
	GroqAPIKey  string `env:"GROQ_API_KEY"`
	GroqBaseURL string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai"`
	ModelID     string `env:"MODEL_ID" envDefault:"llama-3.3-70b-versatile"`

	// Vector index
	VectorStore    string `env:"VECTOR_STORE" envDefault:"pinecone"`
	PineconeAPIKey string `env:"PINECONE_API_KEY"`
	PineconeHost   string `env:"PINECONE_HOST"`
	IndexName      string `env:"INDEX_NAME" envDefault:"routebot"`
	Dimension      int    `env:"VECTOR_DIMENSION" envDefault:"1536"`

	// Content extraction
	Extractor    string `env:"EXTRACTOR" envDefault:"tavily"`
	TavilyAPIKey string `env:"TAVILY_API_KEY"`
	TavilyBaseURL string `env:"TAVILY_BASE_URL" envDefault:"https://api.tavily.com"`

	// Retrieval tuning
	TopK              int      `env:"RAG_TOP_K" envDefault:"3"`
	MaxResponseLength int      `env:"MAX_RESPONSE_LENGTH" envDefault:"5000"`
	MaxSegmentLength  int      `env:"MAX_SEGMENT_LENGTH" envDefault:"1000"`
	IndexURLs         []string `env:"INDEX_URLS" envSeparator:","`

	// Classification granularity: "six" or "three"
	Granularity string `env:"INTENT_GRANULARITY" envDefault:"six"`

	// Session storage
	PersistSessions bool `env:"ROUTEBOT_PERSIST_SESSIONS" envDefault:"false"`

	// Transports
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse app config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "routebot.db")
}
