package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"match-service/domain"
	"match-service/pkg/elo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EndMatch closes the match, stores its duration and updates both players'
// ratings in one transaction. A nil winner is a draw.
func (r *Repository) EndMatch(ctx context.Context, matchID uuid.UUID, winner *uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Lock the match row
	var hostID uuid.UUID
	var opponentID uuid.NullUUID
	var status domain.MatchStatus
	err = tx.QueryRowContext(ctx,
		`SELECT host_id, opponent_id, status FROM matches WHERE id = $1 FOR UPDATE`,
		matchID,
	).Scan(&hostID, &opponentID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: match not found", domain.ErrNotFound)
		}
		return fmt.Errorf("failed to query match: %w", err)
	}
	if status == domain.MatchEnded {
		return fmt.Errorf("%w: match already ended", domain.ErrConflict)
	}

	// 2. Close it
	var winnerID uuid.NullUUID
	if winner != nil {
		winnerID = uuid.NullUUID{UUID: *winner, Valid: true}
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE matches
		 SET status = $2, winner_id = $3, duration = EXTRACT(EPOCH FROM (NOW() - created_at))
		 WHERE id = $1`,
		matchID, domain.MatchEnded, winnerID,
	); err != nil {
		return fmt.Errorf("failed to end match: %w", err)
	}

	// 3. Ratings, only when both seats were taken
	if opponentID.Valid {
		if err = updateRatings(ctx, tx, hostID, opponentID.UUID, winner); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Match ended", zap.String("match_id", matchID.String()), zap.Bool("draw", winner == nil))
	return nil
}

func updateRatings(ctx context.Context, tx *sql.Tx, hostID, opponentID uuid.UUID, winner *uuid.UUID) error {
	var hostElo, opponentElo int
	if err := tx.QueryRowContext(ctx, `SELECT elo FROM users WHERE id = $1 FOR UPDATE`, hostID).Scan(&hostElo); err != nil {
		return fmt.Errorf("failed to query host rating: %w", err)
	}
	if err := tx.QueryRowContext(ctx, `SELECT elo FROM users WHERE id = $1 FOR UPDATE`, opponentID).Scan(&opponentElo); err != nil {
		return fmt.Errorf("failed to query opponent rating: %w", err)
	}

	draw := winner == nil
	hostWon := winner != nil && *winner == hostID
	hostElo, opponentElo = elo.Pair(hostElo, opponentElo, draw, hostWon)

	if _, err := tx.ExecContext(ctx, `UPDATE users SET elo = $2 WHERE id = $1`, hostID, hostElo); err != nil {
		return fmt.Errorf("failed to update host rating: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET elo = $2 WHERE id = $1`, opponentID, opponentElo); err != nil {
		return fmt.Errorf("failed to update opponent rating: %w", err)
	}
	return nil
}
