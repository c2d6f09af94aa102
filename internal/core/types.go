package core

import "time"

const (
	BotName          = "RouteBot"
	BotUserAgent     = "RouteBot-Agent/0.1"
	BotRepositoryURL = "https://github.com/sandevgo/routebot"
	BotVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat-completions message sent to a completion provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Speaker identifies who produced a conversation turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one message of the session transcript. Immutable once appended.
type Turn struct {
	Speaker   Speaker   `json:"speaker"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Intent is the classified purpose of a user message.
type Intent int

const (
	IntentNonsense Intent = iota
	IntentHistoryQuery
	IntentFactualInfo
	IntentPreference
	IntentFeedback
	IntentCorrection
	// IntentGeneral is the coarse bucket produced by the three-way
	// classification granularity; the six-way taxonomy never emits it.
	IntentGeneral
)

func (i Intent) String() string {
	switch i {
	case IntentHistoryQuery:
		return "history_query"
	case IntentFactualInfo:
		return "factual_info"
	case IntentPreference:
		return "preference"
	case IntentFeedback:
		return "feedback"
	case IntentCorrection:
		return "correction"
	case IntentGeneral:
		return "general"
	default:
		return "nonsense"
	}
}

// Flow is the handler strategy a classified message is dispatched to.
type Flow int

const (
	FlowNonsense Flow = iota
	FlowHistory
	FlowRAG
	FlowGeneral
)

func (f Flow) String() string {
	switch f {
	case FlowHistory:
		return "history"
	case FlowRAG:
		return "rag"
	case FlowGeneral:
		return "general"
	default:
		return "nonsense"
	}
}

// RoutingDecision records the classification outcome for one request.
type RoutingDecision struct {
	Intent Intent
	Flow   Flow
}

// Match is one nearest-neighbor hit returned by a vector index query.
type Match struct {
	ID       string
	Score    float32
	Metadata map[string]string
}

// Content returns the indexed segment text carried in the match metadata.
func (m Match) Content() string {
	return m.Metadata["content"]
}

// ExtractResult is the raw content pulled from a single URL by an extractor.
type ExtractResult struct {
	URL        string `json:"url"`
	RawContent string `json:"raw_content"`
}
