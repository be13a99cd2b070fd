package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/can-finance/tradingclocks/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ PrefStore = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS time_overrides (
	market_id  TEXT PRIMARY KEY,
	open_time  TEXT,
	close_time TEXT
);
CREATE TABLE IF NOT EXISTS selected_markets (
	market_id TEXT PRIMARY KEY
);
`

// SQLiteStore implements PrefStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, ensures
// the schema exists, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveTimeOverride inserts or replaces the override for a market. Nil
// fields are stored as NULL so "use default" round-trips.
func (s *SQLiteStore) SaveTimeOverride(ctx context.Context, marketID string, ov domain.TimeOverride) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO time_overrides (market_id, open_time, close_time) VALUES (?, ?, ?)`,
		marketID, ov.OpenTime, ov.CloseTime)
	return err
}

// DeleteTimeOverride removes the override for a market.
func (s *SQLiteStore) DeleteTimeOverride(ctx context.Context, marketID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM time_overrides WHERE market_id = ?`, marketID)
	return err
}

// TimeOverrides returns all stored overrides keyed by market id.
func (s *SQLiteStore) TimeOverrides(ctx context.Context) (map[string]domain.TimeOverride, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT market_id, open_time, close_time FROM time_overrides`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]domain.TimeOverride)
	for rows.Next() {
		var id string
		var openT, closeT sql.NullString
		if err := rows.Scan(&id, &openT, &closeT); err != nil {
			return nil, err
		}
		var ov domain.TimeOverride
		if openT.Valid {
			ov.OpenTime = &openT.String
		}
		if closeT.Valid {
			ov.CloseTime = &closeT.String
		}
		out[id] = ov
	}
	return out, rows.Err()
}

// SetSelected replaces the set of selected market ids in one transaction.
func (s *SQLiteStore) SetSelected(ctx context.Context, marketIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM selected_markets`); err != nil {
		return err
	}
	for _, id := range marketIDs {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO selected_markets (market_id) VALUES (?)`, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Selected returns the selected market ids, sorted.
func (s *SQLiteStore) Selected(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT market_id FROM selected_markets`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, rows.Err()
}
