package main

import (
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/routebot/internal/config"
	"github.com/sandevgo/routebot/internal/transport/tui"
	"github.com/sandevgo/routebot/pkg/log"
	"github.com/sandevgo/routebot/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long:  `Opens a terminal chat with the assistant. Each message is classified and routed through the configured flows.`,
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

		ag, cleanups, err := newAgent(ctx, appCfg)
		if err != nil {
			return err
		}
		defer func() {
			// stop cancels ctx so the cleanup wait returns immediately
			stop()
			srv.ShutdownServices(ctx, cleanups)
		}()

		p := tea.NewProgram(tui.New(ctx, ag), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			logger.Error().Err(err).Msg("chat session failed")
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
