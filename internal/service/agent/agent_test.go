package agent

import (
	"context"
	"testing"

	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/internal/service/memory"
	"github.com/sandevgo/routebot/internal/service/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	intent core.Intent
}

func (s stubClassifier) Classify(ctx context.Context, message string) core.Intent {
	return s.intent
}

type stubCompleter struct {
	reply string
}

func (s stubCompleter) Chat(ctx context.Context, messages []core.Message, model string) (string, error) {
	return s.reply, nil
}

func newTestAgent(t *testing.T, intent core.Intent, log *memory.Log, generalReply string) *Agent {
	t.Helper()

	history := memory.NewHistoryFlow(log)
	general := NewGeneralFlow(stubCompleter{reply: generalReply}, "test-model")
	ragHandler := func(ctx context.Context, sessionID, message string) (string, error) {
		return "resposta do rag", nil
	}

	r, err := router.New(stubClassifier{intent: intent}, history.Handle, ragHandler, general.Handle)
	require.NoError(t, err)
	return New(r, log)
}

func TestGenerateAnswersFirstMessageFromHistory(t *testing.T) {
	ctx := context.Background()
	log := memory.NewLog()
	require.NoError(t, log.Append(ctx, "s1", core.Turn{Speaker: core.SpeakerUser, Content: "oi"}))
	require.NoError(t, log.Append(ctx, "s1", core.Turn{Speaker: core.SpeakerAssistant, Content: "olá"}))

	a := newTestAgent(t, core.IntentHistoryQuery, log, "")

	reply, err := a.Generate(ctx, "s1", "qual foi minha primeira mensagem?")
	require.NoError(t, err)
	assert.Contains(t, reply, "oi")
}

func TestGenerateRecordsBothTurnsAfterResponse(t *testing.T) {
	ctx := context.Background()
	log := memory.NewLog()

	a := newTestAgent(t, core.IntentPreference, log, "anotado!")

	reply, err := a.Generate(ctx, "s1", "prefiro respostas curtas")
	require.NoError(t, err)
	assert.Equal(t, "anotado!", reply)

	turns, err := log.All(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, core.SpeakerUser, turns[0].Speaker)
	assert.Equal(t, "prefiro respostas curtas", turns[0].Content)
	assert.Equal(t, core.SpeakerAssistant, turns[1].Speaker)
	assert.Equal(t, "anotado!", turns[1].Content)
}

func TestGenerateNonsenseDoesNotTouchProviders(t *testing.T) {
	ctx := context.Background()
	log := memory.NewLog()

	a := newTestAgent(t, core.IntentNonsense, log, "")

	reply, err := a.Generate(ctx, "s1", "!!??")
	require.NoError(t, err)
	assert.Equal(t, router.NonsenseMessage, reply)

	// Even nonsense exchanges land on the transcript
	turns, err := log.All(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, turns, 2)
}

func TestGenerateHistoryTranscript(t *testing.T) {
	ctx := context.Background()
	log := memory.NewLog()
	require.NoError(t, log.Append(ctx, "s1", core.Turn{Speaker: core.SpeakerUser, Content: "oi"}))
	require.NoError(t, log.Append(ctx, "s1", core.Turn{Speaker: core.SpeakerAssistant, Content: "olá"}))

	a := newTestAgent(t, core.IntentHistoryQuery, log, "")

	reply, err := a.Generate(ctx, "s1", "pode mostrar histórico?")
	require.NoError(t, err)
	assert.Contains(t, reply, "User: oi")
	assert.Contains(t, reply, "Assistant: olá")
}

func TestGenerateHistoryUnrelatedQuestion(t *testing.T) {
	ctx := context.Background()
	log := memory.NewLog()

	a := newTestAgent(t, core.IntentHistoryQuery, log, "")

	reply, err := a.Generate(ctx, "s1", "me conte uma piada")
	require.NoError(t, err)
	assert.Equal(t, memory.UnrelatedMessage, reply)
}
