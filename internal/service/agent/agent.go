package agent

import (
	"context"
	"fmt"

	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/internal/service/router"
	"github.com/sandevgo/routebot/pkg/log"
)

// Agent is the library surface of the assistant: one call per user message,
// classification and routing inside, both turns recorded on the transcript.
type Agent struct {
	router *router.Router
	memory core.ConversationLog
}

func New(router *router.Router, memory core.ConversationLog) *Agent {
	return &Agent{
		router: router,
		memory: memory,
	}
}

// Generate produces the response for one user message. The user turn and
// the assistant turn are appended only after the response exists, so the
// transcript never holds placeholder entries.
func (a *Agent) Generate(ctx context.Context, sessionID, prompt string) (string, error) {
	result, err := a.router.Route(ctx, sessionID, prompt)
	if err != nil {
		return "", fmt.Errorf("route message: %w", err)
	}

	logger := log.FromCtx(ctx)
	if err := a.memory.Append(ctx, sessionID, core.Turn{Speaker: core.SpeakerUser, Content: prompt}); err != nil {
		logger.Error().Err(err).Msg("failed to record user turn")
	}
	if err := a.memory.Append(ctx, sessionID, core.Turn{Speaker: core.SpeakerAssistant, Content: result.Response}); err != nil {
		logger.Error().Err(err).Msg("failed to record assistant turn")
	}

	return result.Response, nil
}
