package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"match-service/domain"

	"github.com/google/uuid"
)

const matchColumns = `id, host_id, opponent_id, winner_id, options, game_options, status, created_at, duration`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*domain.Match, error) {
	var match domain.Match
	var opponentID, winnerID uuid.NullUUID
	var duration sql.NullFloat64

	err := row.Scan(&match.ID, &match.HostID, &opponentID, &winnerID, &match.Options,
		&match.GameOptions, &match.Status, &match.CreatedAt, &duration)
	if err != nil {
		return nil, err
	}

	if opponentID.Valid {
		match.OpponentID = &opponentID.UUID
	}
	if winnerID.Valid {
		match.WinnerID = &winnerID.UUID
	}
	if duration.Valid {
		match.Duration = &duration.Float64
	}
	return &match, nil
}

func (r *Repository) FindMatch(ctx context.Context, matchID uuid.UUID) (*domain.Match, error) {
	match, err := scanMatch(r.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = $1`, matchID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: match not found", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query match: %w", err)
	}
	return match, nil
}

// MatchDetails resolves the match's users and, when withMoves is set, its
// move history.
func (r *Repository) MatchDetails(ctx context.Context, matchID uuid.UUID, withMoves bool) (*domain.MatchDetails, error) {
	match, err := r.FindMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return r.details(ctx, match, withMoves)
}

func (r *Repository) details(ctx context.Context, match *domain.Match, withMoves bool) (*domain.MatchDetails, error) {
	details := &domain.MatchDetails{
		ID:          match.ID,
		Options:     match.Options,
		GameOptions: match.GameOptions,
		CreatedAt:   match.CreatedAt,
		Duration:    match.Duration,
		Status:      match.Status,
		IsComplete:  match.Status == domain.MatchEnded,
	}

	var err error
	if details.Host, err = r.FindUser(ctx, match.HostID); err != nil {
		return nil, err
	}
	if match.OpponentID != nil {
		if details.Opponent, err = r.FindUser(ctx, *match.OpponentID); err != nil {
			return nil, err
		}
	}
	if match.WinnerID != nil {
		if details.Winner, err = r.FindUser(ctx, *match.WinnerID); err != nil {
			return nil, err
		}
	}
	if withMoves {
		if details.Moves, err = r.MatchMoves(ctx, match.ID); err != nil {
			return nil, err
		}
	}
	return details, nil
}

// ListOpenMatches returns un-started matches that still wait for an opponent,
// newest first.
func (r *Repository) ListOpenMatches(ctx context.Context) ([]domain.MatchDetails, error) {
	return r.listMatches(ctx,
		`SELECT `+matchColumns+` FROM matches
		 WHERE status = $1 AND opponent_id IS NULL
		 ORDER BY created_at DESC`,
		domain.MatchNotStarted)
}

// ListActiveMatches returns matches in progress, newest first.
func (r *Repository) ListActiveMatches(ctx context.Context) ([]domain.MatchDetails, error) {
	return r.listMatches(ctx,
		`SELECT `+matchColumns+` FROM matches
		 WHERE status = $1
		 ORDER BY created_at DESC`,
		domain.MatchActive)
}

func (r *Repository) listMatches(ctx context.Context, query string, args ...any) ([]domain.MatchDetails, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}

	var matches []*domain.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	rows.Close()

	result := make([]domain.MatchDetails, 0, len(matches))
	for _, match := range matches {
		details, err := r.details(ctx, match, false)
		if err != nil {
			return nil, err
		}
		result = append(result, *details)
	}
	return result, nil
}

func (r *Repository) ListNotStartedMatchIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM matches WHERE status = $1`, domain.MatchNotStarted)
	if err != nil {
		return nil, fmt.Errorf("failed to query not started matches: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan match id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return ids, nil
}
