package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS quiz_results (
	id          BIGSERIAL PRIMARY KEY,
	user_id     BIGINT      NOT NULL,
	chat_id     BIGINT      NOT NULL,
	score       INT         NOT NULL,
	total       INT         NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS quiz_results_user_finished_idx
	ON quiz_results (user_id, finished_at DESC);

CREATE TABLE IF NOT EXISTS player_stats (
	user_id       BIGINT PRIMARY KEY,
	games_played  INT         NOT NULL DEFAULT 0,
	best_score    INT         NOT NULL DEFAULT 0,
	best_total    INT         NOT NULL DEFAULT 0,
	total_correct INT         NOT NULL DEFAULT 0,
	updated_at    TIMESTAMPTZ NOT NULL
);
`

// Migrate creates the tables used by the bot if they do not exist.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
