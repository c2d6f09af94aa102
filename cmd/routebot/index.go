package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/sandevgo/routebot/internal/config"
	"github.com/sandevgo/routebot/internal/providers/search"
	"github.com/sandevgo/routebot/internal/providers/vector"
	"github.com/sandevgo/routebot/internal/service/rag"
	"github.com/sandevgo/routebot/pkg/log"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [url...]",
	Short: "Extract and index content from URLs",
	Long:  `Extracts page content from the given URLs (or INDEX_URLS when none are passed), segments it and upserts the segments into the vector index. Re-running with the same URLs replaces the existing segments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		appCfg := config.NewAppConfig(ctx)

		urls := args
		if len(urls) == 0 {
			urls = appCfg.IndexURLs
		}
		if len(urls) == 0 {
			return fmt.Errorf("no URLs given, pass them as arguments or set INDEX_URLS")
		}

		extractor, err := search.NewExtractor(ctx, appCfg)
		if err != nil {
			return err
		}
		index, err := vector.NewIndex(ctx, appCfg)
		if err != nil {
			return err
		}

		indexer := rag.NewIndexer(extractor, index, appCfg.IndexName, appCfg.Dimension, appCfg.MaxSegmentLength)

		count, err := indexer.IndexURLs(ctx, urls)
		if err != nil {
			if errors.Is(err, rag.ErrEmptyExtraction) {
				fmt.Fprintln(cmd.OutOrStdout(), rag.CouldNotExtractMessage)
				return nil
			}
			return err
		}

		logger.Info().Int("segments", count).Int("urls", len(urls)).Msg("content indexed")
		fmt.Fprintf(cmd.OutOrStdout(), "Indexados %d segmentos de %d URL(s).\n", count, len(urls))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
