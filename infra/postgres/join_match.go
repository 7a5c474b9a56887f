package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"match-service/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (r *Repository) JoinMatch(ctx context.Context, matchID, userID uuid.UUID) error {
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

	// 2. Validate the seat
	if status != domain.MatchNotStarted {
		return fmt.Errorf("%w: match is not joinable", domain.ErrConflict)
	}
	if hostID == userID {
		return fmt.Errorf("%w: host cannot join as opponent", domain.ErrConflict)
	}
	if opponentID.Valid {
		if opponentID.UUID == userID {
			return nil
		}
		return fmt.Errorf("%w: match already has an opponent", domain.ErrMatchFull)
	}

	// 3. Take the seat
	if _, err = tx.ExecContext(ctx,
		`UPDATE matches SET opponent_id = $2 WHERE id = $1`,
		matchID, userID,
	); err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("%w: user does not exist", domain.ErrNotFound)
		}
		return fmt.Errorf("failed to update match: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("User joined match", zap.String("match_id", matchID.String()), zap.String("user_id", userID.String()))
	return nil
}

func (r *Repository) LeaveMatch(ctx context.Context, matchID, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET opponent_id = NULL
		 WHERE id = $1 AND opponent_id = $2 AND status = $3`,
		matchID, userID, domain.MatchNotStarted,
	)
	if err != nil {
		return fmt.Errorf("failed to leave match: %w", err)
	}
	return expectAffected(result, fmt.Errorf("%w: user is not the opponent of an open match", domain.ErrNotFound))
}

// expectAffected returns notFound when the statement changed no rows.
func expectAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
