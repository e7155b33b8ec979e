// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/models"
)

// SQLiteStore implements StrategyStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based strategy store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Saved strategy configurations
	CREATE TABLE IF NOT EXISTS strategies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		strategy_type TEXT NOT NULL,
		entry_date TEXT NOT NULL,
		expiry_date TEXT NOT NULL,
		parameters TEXT NOT NULL DEFAULT '{}',
		custom_legs TEXT,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_strategies_name ON strategies(name);
	CREATE INDEX IF NOT EXISTS idx_strategies_type ON strategies(strategy_type);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveStrategy inserts a strategy and returns its assigned ID.
func (s *SQLiteStore) SaveStrategy(ctx context.Context, strategy *models.Strategy) (int64, error) {
	params, err := json.Marshal(strategy.Parameters)
	if err != nil {
		return 0, apperrors.NewStoreError("save", "marshaling parameters", err)
	}
	legs, err := json.Marshal(strategy.CustomLegs)
	if err != nil {
		return 0, apperrors.NewStoreError("save", "marshaling legs", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO strategies (name, strategy_type, entry_date, expiry_date, parameters, custom_legs, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, strategy.Name, string(strategy.Type), strategy.EntryDate, strategy.ExpiryDate, string(params), string(legs), strategy.Notes, now, now)
	if err != nil {
		return 0, apperrors.NewStoreError("save", "inserting strategy", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.NewStoreError("save", "reading insert id", err)
	}
	strategy.ID = id
	strategy.CreatedAt = now
	strategy.UpdatedAt = now
	return id, nil
}

// GetStrategy retrieves a strategy by ID.
func (s *SQLiteStore) GetStrategy(ctx context.Context, id int64) (*models.Strategy, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, strategy_type, entry_date, expiry_date, parameters, custom_legs, notes, created_at, updated_at
		FROM strategies WHERE id = ?
	`, id)

	strategy, err := scanStrategy(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.Wrapf(apperrors.ErrStrategyNotFound, "id %d", id)
	}
	if err != nil {
		return nil, apperrors.NewStoreError("get", "scanning strategy", err)
	}
	return strategy, nil
}

// ListStrategies retrieves saved strategies matching the filter.
func (s *SQLiteStore) ListStrategies(ctx context.Context, filter StrategyFilter) ([]models.Strategy, error) {
	query := `
		SELECT id, name, strategy_type, entry_date, expiry_date, parameters, custom_legs, notes, created_at, updated_at
		FROM strategies WHERE 1=1`
	args := []interface{}{}

	if filter.Type != "" {
		query += " AND strategy_type = ?"
		args = append(args, string(filter.Type))
	}
	if filter.Name != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+filter.Name+"%")
	}

	query += " ORDER BY updated_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("list", "querying strategies", err)
	}
	defer rows.Close()

	var strategies []models.Strategy
	for rows.Next() {
		strategy, err := scanStrategy(rows)
		if err != nil {
			return nil, apperrors.NewStoreError("list", "scanning strategy", err)
		}
		strategies = append(strategies, *strategy)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list", "iterating strategies", err)
	}
	return strategies, nil
}

// UpdateStrategy replaces a saved strategy's configuration by ID.
func (s *SQLiteStore) UpdateStrategy(ctx context.Context, strategy *models.Strategy) error {
	params, err := json.Marshal(strategy.Parameters)
	if err != nil {
		return apperrors.NewStoreError("update", "marshaling parameters", err)
	}
	legs, err := json.Marshal(strategy.CustomLegs)
	if err != nil {
		return apperrors.NewStoreError("update", "marshaling legs", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE strategies
		SET name = ?, strategy_type = ?, entry_date = ?, expiry_date = ?, parameters = ?, custom_legs = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, strategy.Name, string(strategy.Type), strategy.EntryDate, strategy.ExpiryDate, string(params), string(legs), strategy.Notes, now, strategy.ID)
	if err != nil {
		return apperrors.NewStoreError("update", "updating strategy", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewStoreError("update", "reading rows affected", err)
	}
	if affected == 0 {
		return apperrors.Wrapf(apperrors.ErrStrategyNotFound, "id %d", strategy.ID)
	}
	strategy.UpdatedAt = now
	return nil
}

// DeleteStrategy removes a saved strategy by ID.
func (s *SQLiteStore) DeleteStrategy(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM strategies WHERE id = ?`, id)
	if err != nil {
		return apperrors.NewStoreError("delete", "deleting strategy", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewStoreError("delete", "reading rows affected", err)
	}
	if affected == 0 {
		return apperrors.Wrapf(apperrors.ErrStrategyNotFound, "id %d", id)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanStrategy(row scanner) (*models.Strategy, error) {
	var strategy models.Strategy
	var strategyType, paramsJSON string
	var legsJSON, notes sql.NullString

	err := row.Scan(&strategy.ID, &strategy.Name, &strategyType, &strategy.EntryDate,
		&strategy.ExpiryDate, &paramsJSON, &legsJSON, &notes, &strategy.CreatedAt, &strategy.UpdatedAt)
	if err != nil {
		return nil, err
	}

	strategy.Type = models.StrategyType(strategyType)
	strategy.Notes = notes.String
	if err := json.Unmarshal([]byte(paramsJSON), &strategy.Parameters); err != nil {
		return nil, fmt.Errorf("parsing parameters json: %w", err)
	}
	if legsJSON.Valid && legsJSON.String != "" && legsJSON.String != "null" {
		if err := json.Unmarshal([]byte(legsJSON.String), &strategy.CustomLegs); err != nil {
			return nil, fmt.Errorf("parsing legs json: %w", err)
		}
	}
	return &strategy, nil
}
