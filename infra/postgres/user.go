package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"match-service/domain"

	"github.com/google/uuid"
)

// EnsureUser inserts the user or refreshes their display name. Ratings are
// never touched here.
func (r *Repository) EnsureUser(ctx context.Context, userID uuid.UUID, displayName string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, display_name, elo) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name`,
		userID, displayName, domain.DefaultElo,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (r *Repository) FindUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, display_name, elo FROM users WHERE id = $1`,
		userID,
	).Scan(&user.ID, &user.DisplayName, &user.Elo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// ListUserMatches returns the active and ended matches userID played in,
// oldest first.
func (r *Repository) ListUserMatches(ctx context.Context, userID uuid.UUID) ([]domain.MatchDetails, error) {
	return r.listMatches(ctx,
		`SELECT `+matchColumns+` FROM matches
		 WHERE (host_id = $1 OR opponent_id = $1) AND status IN ($2, $3)
		 ORDER BY created_at ASC`,
		userID, domain.MatchActive, domain.MatchEnded)
}
