// Package store archives finished game sessions to SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/golazobot/golazo/internal/models"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var ddl string

type Store struct {
	db *sql.DB
}

// Connect opens (or creates) the archive database at path. An empty path
// opens an in-memory database.
func Connect(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	// Every pooled connection to :memory: would get its own empty database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, errExec := db.ExecContext(ctx, ddl); errExec != nil {
		return nil, fmt.Errorf("creating archive schema: %w", errExec)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ArchiveGame writes a finished session and its final scores and drink
// tallies in one transaction.
func (s *Store) ArchiveGame(ctx context.Context, game *models.Game, endedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting archive transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO archived_game (id, created_at, ended_at) VALUES (?, ?, ?)`,
		game.ID, game.CreatedAt, endedAt)
	if err != nil {
		return fmt.Errorf("archiving game %s: %w", game.ID, err)
	}

	for _, match := range game.Matches {
		isCommon := 0
		if match.ID == game.CommonMatchID {
			isCommon = 1
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO archived_match (game_id, match_id, league, home_team, away_team, home_goals, away_goals, is_common)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			game.ID, match.ID, match.League, match.HomeTeam, match.AwayTeam, match.HomeGoals, match.AwayGoals, isCommon)
		if err != nil {
			return fmt.Errorf("archiving match %s: %w", match.ID, err)
		}
	}

	for _, player := range game.Players {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO archived_player (game_id, player_id, name, drinks) VALUES (?, ?, ?, ?)`,
			game.ID, player.ID, player.Name, player.Drinks)
		if err != nil {
			return fmt.Errorf("archiving player %s: %w", player.ID, err)
		}
	}

	return tx.Commit()
}

// ArchivedGameSummary is one row of the session history.
type ArchivedGameSummary struct {
	ID          string
	CreatedAt   time.Time
	EndedAt     time.Time
	MatchCount  int
	PlayerCount int
	TotalDrinks int
}

// History lists archived sessions, most recent first.
func (s *Store) History(ctx context.Context, limit int) ([]ArchivedGameSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.created_at, g.ended_at,
		        (SELECT COUNT(*) FROM archived_match m WHERE m.game_id = g.id),
		        (SELECT COUNT(*) FROM archived_player p WHERE p.game_id = g.id),
		        (SELECT COALESCE(SUM(p.drinks), 0) FROM archived_player p WHERE p.game_id = g.id)
		 FROM archived_game g
		 ORDER BY g.ended_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying archive history: %w", err)
	}
	defer rows.Close()

	var summaries []ArchivedGameSummary
	for rows.Next() {
		var summary ArchivedGameSummary
		if err := rows.Scan(&summary.ID, &summary.CreatedAt, &summary.EndedAt,
			&summary.MatchCount, &summary.PlayerCount, &summary.TotalDrinks); err != nil {
			return nil, fmt.Errorf("scanning archive row: %w", err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}
