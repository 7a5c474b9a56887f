package postgres

import (
	"context"
	"fmt"

	"match-service/domain"

	"github.com/google/uuid"
)

func (r *Repository) RecordMove(ctx context.Context, matchID, userID uuid.UUID, notation string, ordinal int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO match_movements (match_id, user_id, notation, ordinal) VALUES ($1, $2, $3, $4)`,
		matchID, userID, notation, ordinal,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: move %d already recorded", domain.ErrConflict, ordinal)
		}
		return fmt.Errorf("failed to record move: %w", err)
	}
	return nil
}

func (r *Repository) MatchMoves(ctx context.Context, matchID uuid.UUID) ([]domain.MatchMovement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, notation, ordinal, created_at
		 FROM match_movements WHERE match_id = $1 ORDER BY ordinal`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %w", err)
	}
	defer rows.Close()

	moves := []domain.MatchMovement{}
	for rows.Next() {
		var move domain.MatchMovement
		if err := rows.Scan(&move.ID, &move.UserID, &move.Notation, &move.Ordinal, &move.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, move)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return moves, nil
}
