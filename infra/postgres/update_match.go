package postgres

import (
	"context"
	"fmt"

	"match-service/domain"

	"github.com/google/uuid"
)

func (r *Repository) BeginMatch(ctx context.Context, matchID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET status = $2 WHERE id = $1 AND status = $3 AND opponent_id IS NOT NULL`,
		matchID, domain.MatchActive, domain.MatchNotStarted,
	)
	if err != nil {
		return fmt.Errorf("failed to begin match: %w", err)
	}
	return expectAffected(result, fmt.Errorf("%w: match cannot be started", domain.ErrConflict))
}

func (r *Repository) UpdateOptions(ctx context.Context, matchID uuid.UUID, options, gameOptions string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET options = $2, game_options = $3 WHERE id = $1 AND status = $4`,
		matchID, options, gameOptions, domain.MatchNotStarted,
	)
	if err != nil {
		return fmt.Errorf("failed to update options: %w", err)
	}
	return expectAffected(result, fmt.Errorf("%w: match options are frozen", domain.ErrConflict))
}

// DeleteMatch removes the match and, by cascade, its move history.
func (r *Repository) DeleteMatch(ctx context.Context, matchID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, matchID)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	return expectAffected(result, fmt.Errorf("%w: match not found", domain.ErrNotFound))
}
