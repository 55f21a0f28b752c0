// Package history keeps a log of generated exports in SQLite or MySQL.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"seleniumguide/config"
	"seleniumguide/dbpool"
)

// Status of a finished export.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Record is one export attempt.
type Record struct {
	ID            string    `json:"id"`
	SectionID     string    `json:"sectionId"`
	SectionNumber int       `json:"sectionNumber"`
	Format        string    `json:"format"`
	FileName      string    `json:"fileName"`
	SizeBytes     int64     `json:"sizeBytes"`
	Status        Status    `json:"status"`
	Error         string    `json:"error,omitempty"`
	Duration      int64     `json:"durationMs"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SectionCount is the number of successful exports of one section.
type SectionCount struct {
	SectionID string `json:"sectionId"`
	Count     int    `json:"count"`
}

// Store persists export records.
type Store struct {
	db      *sql.DB
	dialect *dbpool.Dialect
	now     func() time.Time
}

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Open connects with the configured engine and applies pending migrations.
func Open(ctx context.Context, cfg config.HistoryConfig, log func(string)) (*Store, error) {
	if log == nil {
		log = func(string) {}
	}
	engine := dbpool.Engine(cfg.Engine)
	path := cfg.Path
	if engine == dbpool.EngineMySQL {
		path = cfg.DSN
	}

	mgr := dbpool.New(engine, dbpool.Logger(log))
	db, err := mgr.Open(dbpool.OpenOptions{
		Path:        path,
		Mode:        dbpool.ModeReadWrite,
		MaxRetries:  cfg.MaxRetries,
		RetryBaseMs: cfg.RetryBaseMs,
	})
	if err != nil {
		return nil, err
	}

	s, err := NewStore(ctx, db, mgr.Dialect(), log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an open database and migrates it.
func NewStore(ctx context.Context, db *sql.DB, d *dbpool.Dialect, log func(string)) (*Store, error) {
	if log == nil {
		log = func(string) {}
	}
	s := &Store{db: db, dialect: d, now: time.Now}

	if err := createMigrationsTable(ctx, db, d); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}
	if err := runMigrations(ctx, db, d, func() int64 { return s.now().UnixMilli() }, log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Add stores r, filling ID and CreatedAt when they are empty.
func (s *Store) Add(ctx context.Context, r *Record) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO export_records
		(id, section_id, section_number, format, file_name, size_bytes, status, error_message, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SectionID, r.SectionNumber, r.Format, r.FileName, r.SizeBytes,
		string(r.Status), nullString(r.Error), r.Duration, r.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert export record: %w", err)
	}
	return nil
}

// List returns the newest records first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
		id, section_id, section_number, format, file_name, size_bytes, status, error_message, duration_ms, created_at
		FROM export_records ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query export records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			r         Record
			status    string
			errMsg    sql.NullString
			createdMs int64
		)
		if err := rows.Scan(&r.ID, &r.SectionID, &r.SectionNumber, &r.Format, &r.FileName,
			&r.SizeBytes, &status, &errMsg, &r.Duration, &createdMs); err != nil {
			return nil, fmt.Errorf("failed to scan export record: %w", err)
		}
		r.Status = Status(status)
		r.Error = errMsg.String
		r.CreatedAt = time.UnixMilli(createdMs)
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountBySection returns successful export counts, most exported first.
func (s *Store) CountBySection(ctx context.Context) ([]SectionCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT section_id, COUNT(*) AS n
		FROM export_records WHERE status = ?
		GROUP BY section_id ORDER BY n DESC, section_id ASC`, string(StatusSuccess))
	if err != nil {
		return nil, fmt.Errorf("failed to count export records: %w", err)
	}
	defer rows.Close()

	counts := make([]SectionCount, 0)
	for rows.Next() {
		var c SectionCount
		if err := rows.Scan(&c.SectionID, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Rollback reverts a migration. Only used by maintenance tooling and tests.
func (s *Store) Rollback(ctx context.Context, version int) error {
	return rollbackMigration(ctx, s.db, s.dialect, version)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
