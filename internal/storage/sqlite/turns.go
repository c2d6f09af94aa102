package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/routebot/internal/core"
)

// TurnsRepo is the sqlite-backed conversation log. Same contract as the
// in-memory log, surviving process restarts.
type TurnsRepo struct {
	db *sql.DB
}

func NewTurnsRepo(db *sql.DB) *TurnsRepo {
	return &TurnsRepo{db: db}
}

func (r *TurnsRepo) Append(ctx context.Context, sessionID string, turn core.Turn) error {
	createdAt := turn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `INSERT INTO turns (session_id, speaker, content, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, sessionID, string(turn.Speaker), turn.Content, createdAt); err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

func (r *TurnsRepo) All(ctx context.Context, sessionID string) ([]core.Turn, error) {
	query := `SELECT speaker, content, created_at FROM turns WHERE session_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Turn
	for rows.Next() {
		var turn core.Turn
		var speaker string
		if err := rows.Scan(&speaker, &turn.Content, &turn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turn.Speaker = core.Speaker(speaker)
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}

func (r *TurnsRepo) First(ctx context.Context, sessionID string) (core.Turn, bool, error) {
	return r.edge(ctx, sessionID, "ASC")
}

func (r *TurnsRepo) Last(ctx context.Context, sessionID string) (core.Turn, bool, error) {
	return r.edge(ctx, sessionID, "DESC")
}

func (r *TurnsRepo) edge(ctx context.Context, sessionID, order string) (core.Turn, bool, error) {
	query := fmt.Sprintf(`SELECT speaker, content, created_at FROM turns WHERE session_id = ? ORDER BY id %s LIMIT 1`, order)

	var turn core.Turn
	var speaker string
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&speaker, &turn.Content, &turn.CreatedAt)
	if err == sql.ErrNoRows {
		return core.Turn{}, false, nil
	}
	if err != nil {
		return core.Turn{}, false, fmt.Errorf("failed to query turn: %w", err)
	}
	turn.Speaker = core.Speaker(speaker)
	return turn, true, nil
}
