package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/routebot/internal/config"
	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/internal/providers/llm"
	"github.com/sandevgo/routebot/internal/providers/search"
	"github.com/sandevgo/routebot/internal/providers/vector"
	"github.com/sandevgo/routebot/internal/service/agent"
	"github.com/sandevgo/routebot/internal/service/classifier"
	"github.com/sandevgo/routebot/internal/service/memory"
	"github.com/sandevgo/routebot/internal/service/rag"
	"github.com/sandevgo/routebot/internal/service/router"
	"github.com/sandevgo/routebot/internal/storage/sqlite"
	"github.com/sandevgo/routebot/internal/transport/telegram"
	"github.com/sandevgo/routebot/pkg/log"
	"github.com/sandevgo/routebot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Agent with its storage cleanups
	ag, cleanups, err := newAgent(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize agent")
	}
	services = append(services, cleanups...)

	// 3. Transports
	transports, err := initTransports(ctx, appCfg, ag)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Warn().Msg("no transports enabled, use 'chat' for the interactive session")
	}
	services = append(services, transports...)

	return services
}

// newAgent wires the full pipeline: storage, providers, classifier, the
// three flows and the router. Returned services are resource cleanups the
// caller must register for shutdown.
func newAgent(ctx context.Context, cfg *config.AppConfig) (*agent.Agent, []srv.Service, error) {
	var cleanups []srv.Service

	convLog, cleanup, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if cleanup != nil {
		cleanups = append(cleanups, cleanup)
	}

	completer, err := llm.NewCompleter(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	extractor, err := search.NewExtractor(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	index, err := vector.NewIndex(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	cls := classifier.New(completer, cfg.ModelID, classifier.Granularity(cfg.Granularity))

	history := memory.NewHistoryFlow(convLog)
	indexer := rag.NewIndexer(extractor, index, cfg.IndexName, cfg.Dimension, cfg.MaxSegmentLength)
	retriever := rag.NewRetriever(index, completer, cfg.ModelID, cfg.Dimension, cfg.TopK, cfg.MaxResponseLength)
	ragFlow := rag.NewFlow(indexer, retriever, cfg.IndexURLs)
	general := agent.NewGeneralFlow(completer, cfg.ModelID)

	r, err := router.New(cls, history.Handle, ragFlow.Handle, general.Handle)
	if err != nil {
		return nil, nil, err
	}

	return agent.New(r, convLog), cleanups, nil
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (core.ConversationLog, srv.Service, error) {
	if !cfg.PersistSessions {
		return memory.NewLog(), nil, nil
	}

	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return sqlite.NewTurnsRepo(db), srv.NewCleanup(db.Close), nil
}

func initTransports(ctx context.Context, cfg *config.AppConfig, ag *agent.Agent) ([]srv.Service, error) {
	var services []srv.Service

	// Telegram Bot
	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, ag)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
