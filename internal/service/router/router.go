package router

import (
	"context"
	"fmt"

	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/pkg/log"
)

const (
	// NoResponseMessage is returned when a request reaches the end state
	// without any flow producing output.
	NoResponseMessage = "Sem resposta"
	// NonsenseMessage asks the user to rephrase an unintelligible message.
	NonsenseMessage = "Desculpe, não consegui entender sua mensagem. Por favor, reformule ou envie outra pergunta."
)

// state is one node of the dispatch machine.
type state int

const (
	stateStart state = iota
	stateHistory
	stateRAG
	stateGeneral
	stateNonsense
	stateEnd
)

// flowStates maps every flow to its machine state. Checked against the
// intent table at construction.
var flowStates = map[core.Flow]state{
	core.FlowHistory:  stateHistory,
	core.FlowRAG:      stateRAG,
	core.FlowGeneral:  stateGeneral,
	core.FlowNonsense: stateNonsense,
}

// intentFlows is the fixed routing table from classified intent to flow.
var intentFlows = map[core.Intent]core.Flow{
	core.IntentHistoryQuery: core.FlowHistory,
	core.IntentFactualInfo:  core.FlowRAG,
	core.IntentPreference:   core.FlowGeneral,
	core.IntentFeedback:     core.FlowGeneral,
	core.IntentCorrection:   core.FlowGeneral,
	core.IntentGeneral:      core.FlowGeneral,
	core.IntentNonsense:     core.FlowNonsense,
}

// Classifier maps a user message to an intent. Never fails.
type Classifier interface {
	Classify(ctx context.Context, message string) core.Intent
}

// Handler produces the response for one flow.
type Handler func(ctx context.Context, sessionID, message string) (string, error)

// Result is the outcome of routing one message.
type Result struct {
	Response string
	Decision core.RoutingDecision
	Trace    []string
}

// Router is a one-shot dispatch machine: START classifies and selects a
// flow, the flow state runs exactly one handler, END returns the produced
// message. No backtracking, no retry, no cycles; nothing is carried across
// requests.
type Router struct {
	classifier Classifier
	handlers   map[state]Handler
}

// New builds a router and verifies the transition table is complete: every
// intent must map to a flow, every flow to a state, every non-terminal
// state to a handler.
func New(classifier Classifier, history, rag, general Handler) (*Router, error) {
	r := &Router{
		classifier: classifier,
		handlers: map[state]Handler{
			stateHistory: history,
			stateRAG:     rag,
			stateGeneral: general,
			stateNonsense: func(ctx context.Context, sessionID, message string) (string, error) {
				return NonsenseMessage, nil
			},
		},
	}

	for intent, flow := range intentFlows {
		st, ok := flowStates[flow]
		if !ok {
			return nil, fmt.Errorf("flow %s (intent %s) has no state", flow, intent)
		}
		if r.handlers[st] == nil {
			return nil, fmt.Errorf("state for flow %s has no handler", flow)
		}
	}

	return r, nil
}

// Route drives one message through START -> flow -> END.
func (r *Router) Route(ctx context.Context, sessionID, message string) (Result, error) {
	result := Result{}
	current := stateStart
	produced := ""

	for current != stateEnd {
		switch current {
		case stateStart:
			intent := r.classifier.Classify(ctx, message)
			flow := intentFlows[intent]
			result.Decision = core.RoutingDecision{Intent: intent, Flow: flow}
			result.Trace = append(result.Trace,
				fmt.Sprintf("intenção detectada: %s", intent),
				fmt.Sprintf("fluxo selecionado: %s", flow),
			)
			current = flowStates[flow]

		default:
			response, err := r.handlers[current](ctx, sessionID, message)
			if err != nil {
				return Result{}, fmt.Errorf("%s flow: %w", result.Decision.Flow, err)
			}
			produced = response
			current = stateEnd
		}
	}

	if produced == "" {
		produced = NoResponseMessage
	}
	result.Response = produced

	log.FromCtx(ctx).Debug().
		Str("intent", result.Decision.Intent.String()).
		Str("flow", result.Decision.Flow.String()).
		Msg("request routed")

	return result, nil
}
