// Package history persists computed readings to SQLite. The engine never
// touches this layer; only the service records results here.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/ports"
)

// Store implements ports.ReadingStore on a local SQLite file.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the database at path and runs migrations.
// _journal_mode=WAL and _busy_timeout keep concurrent readers from
// tripping over the writer.
func Open(path string, logger *slog.Logger) (*Store, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(2 * time.Hour)

	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("history store ready", "path", path)
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS readings (
		id TEXT PRIMARY KEY,
		spread_type TEXT NOT NULL,
		result TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_readings_created_at ON readings(created_at);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate history db: %w", err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, rec ports.ReadingRecord) error {
	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal reading %s: %w", rec.ID, err)
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO readings (id, spread_type, result, created_at) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.SpreadType, string(payload), createdAt)
	if err != nil {
		return fmt.Errorf("save reading %s: %w", rec.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (ports.ReadingRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, spread_type, result, created_at FROM readings WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.ReadingRecord{}, fmt.Errorf("%w: %s", domain.ErrReadingNotFound, id)
	}
	return rec, err
}

func (s *Store) List(ctx context.Context, limit int) ([]ports.ReadingRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, spread_type, result, created_at FROM readings ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	var out []ports.ReadingRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM readings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete reading %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrReadingNotFound, id)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (ports.ReadingRecord, error) {
	var rec ports.ReadingRecord
	var payload string
	if err := row.Scan(&rec.ID, &rec.SpreadType, &payload, &rec.CreatedAt); err != nil {
		return ports.ReadingRecord{}, err
	}
	if err := json.Unmarshal([]byte(payload), &rec.Result); err != nil {
		return ports.ReadingRecord{}, fmt.Errorf("decode reading %s: %w", rec.ID, err)
	}
	return rec, nil
}
