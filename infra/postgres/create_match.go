package postgres

import (
	"context"
	"fmt"

	"match-service/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (r *Repository) CreateMatch(ctx context.Context, hostID uuid.UUID, options, gameOptions string) (*domain.Match, error) {
	match := &domain.Match{
		HostID:      hostID,
		Options:     options,
		GameOptions: gameOptions,
		Status:      domain.MatchNotStarted,
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO matches (host_id, options, game_options, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		hostID, options, gameOptions, domain.MatchNotStarted,
	).Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		if isForeignKeyError(err) {
			return nil, fmt.Errorf("%w: host does not exist", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	zap.L().Info("Match created", zap.String("match_id", match.ID.String()), zap.String("host_id", hostID.String()))
	return match, nil
}
