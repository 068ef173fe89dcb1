package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"splinter-planner/internal/constants"
	"splinter-planner/internal/domain"
)

// BattleRepository persists raw battles. Team snapshots and player lists are
// stored as JSON columns; all filterable fields are first-class columns
// backed by indexes.
type BattleRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewBattleRepository(sqlDB *sql.DB, logger zerolog.Logger) *BattleRepository {
	return &BattleRepository{db: sqlDB, logger: logger}
}

// FindByManaCap returns battles at the given mana cap with timestamp >= since.
// Empty ruleset or league group means no filter on that field.
func (r *BattleRepository) FindByManaCap(ctx context.Context, manaCap int, ruleset, leagueGroup string, since int64) ([]domain.Battle, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	query := `SELECT id, block_number, timestamp, mana_cap, ruleset, league_name, league_group,
		winner, loser, players, team1, team2
		FROM battles WHERE mana_cap = ? AND timestamp >= ?`
	args := []any{manaCap, since}

	if ruleset != "" {
		query += " AND ruleset = ?"
		args = append(args, ruleset)
	}
	if leagueGroup != "" {
		query += " AND league_group = ?"
		args = append(args, leagueGroup)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query battles: %w", err)
	}
	defer rows.Close()

	var battles []domain.Battle
	for rows.Next() {
		var battle domain.Battle
		var players, team1, team2 []byte

		err := rows.Scan(
			&battle.ID, &battle.BlockNumber, &battle.Timestamp, &battle.ManaCap,
			&battle.Ruleset, &battle.LeagueName, &battle.LeagueGroup,
			&battle.Winner, &battle.Loser, &players, &team1, &team2,
		)
		if err != nil {
			return nil, fmt.Errorf("scan battle: %w", err)
		}

		if err := json.Unmarshal(players, &battle.Players); err != nil {
			return nil, fmt.Errorf("decode players for battle %s: %w", battle.ID, err)
		}
		if err := json.Unmarshal(team1, &battle.Team1); err != nil {
			return nil, fmt.Errorf("decode team1 for battle %s: %w", battle.ID, err)
		}
		if err := json.Unmarshal(team2, &battle.Team2); err != nil {
			return nil, fmt.Errorf("decode team2 for battle %s: %w", battle.ID, err)
		}

		battles = append(battles, battle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate battles: %w", err)
	}

	return battles, nil
}

const upsertBattleSQL = `INSERT INTO battles (
	id, block_number, timestamp, mana_cap, ruleset, league_name, league_group,
	winner, loser, players, team1, team2, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	block_number = excluded.block_number,
	timestamp = excluded.timestamp,
	updated_at = excluded.updated_at`

// UpsertBatch writes battles in transactional batches.
func (r *BattleRepository) UpsertBatch(ctx context.Context, battles []domain.Battle) error {
	if len(battles) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertBattleSQL)
	if err != nil {
		return fmt.Errorf("prepare battle upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for i := 0; i < len(battles); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(battles) {
			end = len(battles)
		}

		for _, battle := range battles[i:end] {
			players, err := json.Marshal(battle.Players)
			if err != nil {
				return fmt.Errorf("encode players for battle %s: %w", battle.ID, err)
			}
			team1, err := json.Marshal(battle.Team1)
			if err != nil {
				return fmt.Errorf("encode team1 for battle %s: %w", battle.ID, err)
			}
			team2, err := json.Marshal(battle.Team2)
			if err != nil {
				return fmt.Errorf("encode team2 for battle %s: %w", battle.ID, err)
			}

			_, err = stmt.ExecContext(ctx,
				battle.ID, battle.BlockNumber, battle.Timestamp, battle.ManaCap,
				battle.Ruleset, battle.LeagueName, battle.LeagueGroup,
				battle.Winner, battle.Loser, players, team1, team2, now, now,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert battle %s: %w", battle.ID, err)
			}
		}
	}

	return tx.Commit()
}

// LatestBlockNumber returns the highest ingested block, 0 when the store is
// empty.
func (r *BattleRepository) LatestBlockNumber(ctx context.Context) (int64, error) {
	var block sql.NullInt64
	err := r.db.QueryRowContext(ctx, "SELECT MAX(block_number) FROM battles").Scan(&block)
	if err != nil {
		return 0, fmt.Errorf("query latest block: %w", err)
	}
	if !block.Valid {
		return 0, nil
	}
	return block.Int64, nil
}

// DeleteOlderThan purges battles past the retention window and returns the
// number of rows removed.
func (r *BattleRepository) DeleteOlderThan(ctx context.Context, timestamp int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM battles WHERE timestamp < ?", timestamp)
	if err != nil {
		return 0, fmt.Errorf("purge battles: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count purged battles: %w", err)
	}
	return deleted, nil
}
