package postgres

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

const (
	createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			display_name VARCHAR(64) NOT NULL,
			elo INT NOT NULL DEFAULT 1000,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`

	createMatchesTable = `
		CREATE TABLE IF NOT EXISTS matches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			host_id UUID REFERENCES users(id) NOT NULL,
			opponent_id UUID REFERENCES users(id),
			winner_id UUID REFERENCES users(id),
			options TEXT NOT NULL,
			game_options TEXT NOT NULL,
			status SMALLINT NOT NULL DEFAULT 1, -- 1 not started, 2 active, 3 ended
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			duration DOUBLE PRECISION
		);`

	createMatchMovementsTable = `
		CREATE TABLE IF NOT EXISTS match_movements (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			match_id UUID REFERENCES matches(id) ON DELETE CASCADE NOT NULL,
			user_id UUID REFERENCES users(id) NOT NULL,
			notation VARCHAR(32) NOT NULL,
			ordinal INT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(match_id, ordinal)
		);`

	createIndexes = `
		CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status);
		CREATE INDEX IF NOT EXISTS idx_matches_host_id ON matches(host_id);
		CREATE INDEX IF NOT EXISTS idx_matches_opponent_id ON matches(opponent_id);
		CREATE INDEX IF NOT EXISTS idx_match_movements_match_id ON match_movements(match_id);`
)

func initDB(db *sql.DB) error {
	tables := []struct {
		name  string
		query string
	}{
		{"users", createUsersTable},
		{"matches", createMatchesTable},
		{"match_movements", createMatchMovementsTable},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create '%s' table: %w", table.name, err)
		}
		zap.L().Debug("Table ready", zap.String("table", table.name))
	}

	if _, err := db.Exec(createIndexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	zap.L().Info("Database initialized successfully")
	return nil
}
