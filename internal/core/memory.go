package core

import "context"

// ConversationLog is an append-only ordered transcript of a session.
// Turns are never reordered or deleted within a session.
type ConversationLog interface {
	Append(ctx context.Context, sessionID string, turn Turn) error
	All(ctx context.Context, sessionID string) ([]Turn, error)
	First(ctx context.Context, sessionID string) (Turn, bool, error)
	Last(ctx context.Context, sessionID string) (Turn, bool, error)
}
