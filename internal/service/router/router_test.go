package router

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/routebot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	intent core.Intent
}

func (s stubClassifier) Classify(ctx context.Context, message string) core.Intent {
	return s.intent
}

func namedHandler(name string, calls *[]string) Handler {
	return func(ctx context.Context, sessionID, message string) (string, error) {
		*calls = append(*calls, name)
		return "resposta de " + name, nil
	}
}

func TestRoutingTable(t *testing.T) {
	tests := []struct {
		intent      core.Intent
		wantFlow    core.Flow
		wantHandler string
	}{
		{core.IntentHistoryQuery, core.FlowHistory, "history"},
		{core.IntentFactualInfo, core.FlowRAG, "rag"},
		{core.IntentPreference, core.FlowGeneral, "general"},
		{core.IntentFeedback, core.FlowGeneral, "general"},
		{core.IntentCorrection, core.FlowGeneral, "general"},
		{core.IntentGeneral, core.FlowGeneral, "general"},
	}

	for _, tt := range tests {
		t.Run(tt.intent.String(), func(t *testing.T) {
			var calls []string
			r, err := New(
				stubClassifier{intent: tt.intent},
				namedHandler("history", &calls),
				namedHandler("rag", &calls),
				namedHandler("general", &calls),
			)
			require.NoError(t, err)

			result, err := r.Route(context.Background(), "s1", "mensagem")
			require.NoError(t, err)

			require.Len(t, calls, 1, "exactly one handler must run")
			assert.Equal(t, tt.wantHandler, calls[0])
			assert.Equal(t, tt.intent, result.Decision.Intent)
			assert.Equal(t, tt.wantFlow, result.Decision.Flow)
			assert.Equal(t, "resposta de "+tt.wantHandler, result.Response)
		})
	}
}

func TestRouteNonsense(t *testing.T) {
	var calls []string
	r, err := New(
		stubClassifier{intent: core.IntentNonsense},
		namedHandler("history", &calls),
		namedHandler("rag", &calls),
		namedHandler("general", &calls),
	)
	require.NoError(t, err)

	result, err := r.Route(context.Background(), "s1", "!!??")
	require.NoError(t, err)

	assert.Empty(t, calls, "no user-defined handler runs for nonsense")
	assert.Equal(t, NonsenseMessage, result.Response)
	assert.Equal(t, core.FlowNonsense, result.Decision.Flow)
}

func TestRouteTraceRecordsDecision(t *testing.T) {
	var calls []string
	r, err := New(
		stubClassifier{intent: core.IntentFactualInfo},
		namedHandler("history", &calls),
		namedHandler("rag", &calls),
		namedHandler("general", &calls),
	)
	require.NoError(t, err)

	result, err := r.Route(context.Background(), "s1", "o que é a empresa?")
	require.NoError(t, err)
	require.Len(t, result.Trace, 2)
	assert.Contains(t, result.Trace[0], "factual_info")
	assert.Contains(t, result.Trace[1], "rag")
}

func TestRouteEmptyResponseYieldsSentinel(t *testing.T) {
	empty := func(ctx context.Context, sessionID, message string) (string, error) {
		return "", nil
	}
	r, err := New(stubClassifier{intent: core.IntentFactualInfo}, empty, empty, empty)
	require.NoError(t, err)

	result, err := r.Route(context.Background(), "s1", "mensagem")
	require.NoError(t, err)
	assert.Equal(t, NoResponseMessage, result.Response)
}

func TestRouteHandlerErrorPropagates(t *testing.T) {
	failing := func(ctx context.Context, sessionID, message string) (string, error) {
		return "", errors.New("provider unreachable")
	}
	r, err := New(stubClassifier{intent: core.IntentFactualInfo}, failing, failing, failing)
	require.NoError(t, err)

	_, err = r.Route(context.Background(), "s1", "mensagem")
	assert.Error(t, err)
}

func TestNewRejectsMissingHandler(t *testing.T) {
	_, err := New(stubClassifier{}, nil, nil, nil)
	assert.Error(t, err)
}
