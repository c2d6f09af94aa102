package agent

import (
	"context"

	"github.com/sandevgo/routebot/internal/core"
)

// GeneralFlow forwards the raw prompt to the completion provider. No
// retry, no post-processing.
type GeneralFlow struct {
	completer core.Completer
	model     string
}

func NewGeneralFlow(completer core.Completer, model string) *GeneralFlow {
	return &GeneralFlow{
		completer: completer,
		model:     model,
	}
}

func (g *GeneralFlow) Handle(ctx context.Context, sessionID, message string) (string, error) {
	return g.completer.Chat(ctx, []core.Message{
		{Role: core.RoleUser, Content: message},
	}, g.model)
}
