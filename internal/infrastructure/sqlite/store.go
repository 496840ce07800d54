// Package sqlite provides an embedded SQLite Record Store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Xausdorf/loyalty-points/internal/domain/entity"
	"github.com/Xausdorf/loyalty-points/internal/domain/repository"
)

const schema = `CREATE TABLE IF NOT EXISTS customers (
	id     TEXT PRIMARY KEY,
	points INTEGER NOT NULL CHECK (points >= 0)
)`

type Store struct {
	sqlDB *sql.DB
}

// Open opens the database at path and creates the customers table if absent.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create customers table: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Find(ctx context.Context, id string) (*entity.Customer, error) {
	var points int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT points FROM customers WHERE id = ?`,
		id,
	).Scan(&points)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity.NewCustomer(id, points), nil
}

func (s *Store) Save(ctx context.Context, customer *entity.Customer) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO customers (id, points) VALUES (?, ?)
		 ON CONFLICT (id) DO UPDATE SET points = excluded.points`,
		customer.ID(), customer.Points(),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", repository.ErrPersist, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, points FROM customers ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		var (
			id     string
			points int64
		)
		if err := rows.Scan(&id, &points); err != nil {
			return nil, err
		}
		out = append(out, entity.NewCustomer(id, points))
	}
	return out, rows.Err()
}
