package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"fincalc/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

// createdLayout is fixed-width so text ordering matches time ordering.
const createdLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore persists keys and calculation history in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, "INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)", key, value, now)
	if err != nil {
		return fmt.Errorf("sqlite set %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) SaveCalculation(ctx context.Context, rec domain.CalculationRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO calculations
		(id, kind, inputs, result, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ID.String(), string(rec.Kind), string(rec.Inputs), string(rec.Result),
		rec.CreatedAt.UTC().Format(createdLayout),
	)
	if err != nil {
		return fmt.Errorf("sqlite save calculation: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListCalculations(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, kind, inputs, result, created_at
		FROM calculations ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite list calculations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.CalculationRecord
	for rows.Next() {
		var id, kind, inputs, result, created string
		if err := rows.Scan(&id, &kind, &inputs, &result, &created); err != nil {
			return nil, err
		}
		rec := domain.CalculationRecord{
			Kind:   domain.CalculationKind(kind),
			Inputs: []byte(inputs),
			Result: []byte(result),
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing calculation id %q: %w", id, err)
		}
		rec.CreatedAt, _ = time.Parse(createdLayout, created)
		out = append(out, rec)
	}
	return out, rows.Err()
}
