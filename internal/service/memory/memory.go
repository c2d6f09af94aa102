package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sandevgo/routebot/internal/core"
)

// Log is the in-memory conversation transcript, keyed by session.
// Append-only: turns are never reordered or deleted within a session.
type Log struct {
	mu       sync.RWMutex
	sessions map[string][]core.Turn
}

func NewLog() *Log {
	return &Log{
		sessions: make(map[string][]core.Turn),
	}
}

func (l *Log) Append(ctx context.Context, sessionID string, turn core.Turn) error {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions[sessionID] = append(l.sessions[sessionID], turn)
	return nil
}

func (l *Log) All(ctx context.Context, sessionID string) ([]core.Turn, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	turns := l.sessions[sessionID]
	out := make([]core.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (l *Log) First(ctx context.Context, sessionID string) (core.Turn, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	turns := l.sessions[sessionID]
	if len(turns) == 0 {
		return core.Turn{}, false, nil
	}
	return turns[0], true, nil
}

func (l *Log) Last(ctx context.Context, sessionID string) (core.Turn, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	turns := l.sessions[sessionID]
	if len(turns) == 0 {
		return core.Turn{}, false, nil
	}
	return turns[len(turns)-1], true, nil
}
