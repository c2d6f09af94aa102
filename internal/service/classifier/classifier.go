package classifier

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/pkg/log"
)

// Granularity selects the intent taxonomy presented to the model.
type Granularity string

const (
	// GranularitySix is the full six-way taxonomy.
	GranularitySix Granularity = "six"
	// GranularityThree is the coarse history/factual/general grouping.
	GranularityThree Granularity = "three"
)

var (
	alphaRe       = regexp.MustCompile(`[a-zA-Z]`)
	symbolsOnlyRe = regexp.MustCompile(`^[^\w\s]+$`)
)

// IsNonsense flags messages with no recognizable words: either no
// alphabetic character at all, or nothing but symbol runs.
func IsNonsense(message string) bool {
	if !alphaRe.MatchString(message) {
		return true
	}
	return symbolsOnlyRe.MatchString(message)
}

const sixWayPrompt = `Classifique a intenção do usuário com base na seguinte mensagem: ` +
	`"%s". Determine qual das intenções abaixo melhor representa a mensagem e forneça apenas o número correspondente:

(1) Informação factual: O usuário está perguntando sobre fatos ou detalhes do conteúdo indexado.
(2) Preferência: O usuário está expressando uma preferência pessoal.
(3) Feedback: O usuário está dando feedback sobre uma resposta anterior.
(4) Correção: O usuário está corrigindo algo que foi dito.
(5) Pergunta sobre o chat: O usuário está perguntando sobre histórico, resumo ou informações passadas da conversa.
(6) Sem sentido: A mensagem não tem significado reconhecível.`

const threeWayPrompt = `Classifique a intenção do usuário com base na seguinte mensagem: ` +
	`"%s". Determine qual das intenções abaixo melhor representa a mensagem e forneça apenas o número correspondente:

(1) Pergunta sobre o chat: O usuário está perguntando sobre histórico, resumo ou informações passadas da conversa.
(2) Pergunta factual: O usuário está perguntando sobre contexto ou detalhes do conteúdo indexado.
(3) Conversa geral: A mensagem é uma conversa comum, sem relação específica com os dois tópicos anteriores.`

// marker maps a closed token to an intent. Tokens are checked in priority
// order; the first one present in the reply wins.
type marker struct {
	token  string
	intent core.Intent
}

var sixWayMarkers = []marker{
	{"1", core.IntentFactualInfo},
	{"2", core.IntentPreference},
	{"3", core.IntentFeedback},
	{"4", core.IntentCorrection},
	{"5", core.IntentHistoryQuery},
	{"6", core.IntentNonsense},
	{"informação factual", core.IntentFactualInfo},
	{"preferência", core.IntentPreference},
	{"feedback", core.IntentFeedback},
	{"correção", core.IntentCorrection},
	{"histórico", core.IntentHistoryQuery},
	{"sem sentido", core.IntentNonsense},
}

var threeWayMarkers = []marker{
	{"1", core.IntentHistoryQuery},
	{"2", core.IntentFactualInfo},
	{"3", core.IntentGeneral},
	{"histórico", core.IntentHistoryQuery},
	{"factual", core.IntentFactualInfo},
	{"geral", core.IntentGeneral},
}

// Classifier maps a user message to an intent through the completion
// provider, with a deterministic local nonsense pre-filter.
type Classifier struct {
	completer   core.Completer
	model       string
	granularity Granularity
}

func New(completer core.Completer, model string, granularity Granularity) *Classifier {
	return &Classifier{
		completer:   completer,
		model:       model,
		granularity: granularity,
	}
}

// Classify never fails: a provider error or an unparseable reply resolves
// to IntentNonsense.
func (c *Classifier) Classify(ctx context.Context, message string) core.Intent {
	if IsNonsense(message) {
		return core.IntentNonsense
	}

	prompt := sixWayPrompt
	markers := sixWayMarkers
	if c.granularity == GranularityThree {
		prompt = threeWayPrompt
		markers = threeWayMarkers
	}

	reply, err := c.completer.Chat(ctx, []core.Message{
		{Role: core.RoleUser, Content: fmt.Sprintf(prompt, message)},
	}, c.model)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("intent classification failed, falling back to nonsense")
		return core.IntentNonsense
	}

	intent := parseIntent(reply, markers)
	log.FromCtx(ctx).Debug().
		Str("raw_intent", strings.TrimSpace(reply)).
		Str("intent", intent.String()).
		Msg("classified message")
	return intent
}

func parseIntent(reply string, markers []marker) core.Intent {
	reply = strings.ToLower(strings.TrimSpace(reply))
	for _, m := range markers {
		if strings.Contains(reply, m.token) {
			return m.intent
		}
	}
	return core.IntentNonsense
}
