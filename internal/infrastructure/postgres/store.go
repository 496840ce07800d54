package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Xausdorf/loyalty-points/internal/domain/entity"
	"github.com/Xausdorf/loyalty-points/internal/domain/repository"
)

const (
	dbMaxConns        = 4
	dbMinConns        = 0
	dbMaxConnLifetime = 30 * time.Minute
	dbMaxConnIdleTime = 5 * time.Minute
)

const schema = `CREATE TABLE IF NOT EXISTS customers (
	id     TEXT PRIMARY KEY,
	points BIGINT NOT NULL CHECK (points >= 0)
)`

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect opens a pool against url, verifies it and ensures the customers table exists.
func Connect(ctx context.Context, url string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = dbMaxConns
	cfg.MinConns = dbMinConns
	cfg.MaxConnLifetime = dbMaxConnLifetime
	cfg.MaxConnIdleTime = dbMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create customers table: %w", err)
	}

	return NewStore(pool), nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Find(ctx context.Context, id string) (*entity.Customer, error) {
	var points int64
	err := s.pool.QueryRow(ctx,
		`SELECT points FROM customers WHERE id = $1`,
		id,
	).Scan(&points)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity.NewCustomer(id, points), nil
}

func (s *Store) Save(ctx context.Context, customer *entity.Customer) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO customers (id, points) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET points = EXCLUDED.points`,
		customer.ID(), customer.Points(),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", repository.ErrPersist, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, points FROM customers ORDER BY id`)
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
