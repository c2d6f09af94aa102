package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/routebot/internal/core"
)

const (
	// NoHistoryMessage is returned for a transcript request on an empty session.
	NoHistoryMessage = "Não tenho registro de mensagens anteriores."
	// UnrelatedMessage is returned when the question does not match any
	// recognized history request.
	UnrelatedMessage = "Essa pergunta não está relacionada ao histórico. Posso ajudar com mais alguma coisa?"
)

// HistoryFlow answers questions about the session transcript.
type HistoryFlow struct {
	memory core.ConversationLog
}

func NewHistoryFlow(memory core.ConversationLog) *HistoryFlow {
	return &HistoryFlow{memory: memory}
}

func (h *HistoryFlow) Handle(ctx context.Context, sessionID, message string) (string, error) {
	lowered := strings.ToLower(message)

	switch {
	case strings.Contains(lowered, "primeira mensagem"):
		turn, ok, err := h.memory.First(ctx, sessionID)
		if err != nil {
			return "", fmt.Errorf("failed to read first turn: %w", err)
		}
		if ok {
			return fmt.Sprintf("Sua primeira mensagem foi: '%s'", turn.Content), nil
		}

	case strings.Contains(lowered, "última mensagem"):
		turn, ok, err := h.memory.Last(ctx, sessionID)
		if err != nil {
			return "", fmt.Errorf("failed to read last turn: %w", err)
		}
		if ok {
			return fmt.Sprintf("Sua última mensagem foi: '%s'", turn.Content), nil
		}

	case strings.Contains(lowered, "mostrar histórico"), strings.Contains(lowered, "ver histórico"):
		turns, err := h.memory.All(ctx, sessionID)
		if err != nil {
			return "", fmt.Errorf("failed to read transcript: %w", err)
		}
		if len(turns) == 0 {
			return NoHistoryMessage, nil
		}

		var sb strings.Builder
		sb.WriteString("Aqui está o histórico de mensagens:\n\n")
		for _, turn := range turns {
			switch turn.Speaker {
			case core.SpeakerUser:
				sb.WriteString("User: " + turn.Content + "\n")
			case core.SpeakerAssistant:
				sb.WriteString("Assistant: " + turn.Content + "\n")
			}
		}
		return sb.String(), nil
	}

	return UnrelatedMessage, nil
}
