package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store owns the connection pool and hands out repositories bound to it.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewStore connects to PostgreSQL and verifies the connection.
func NewStore(ctx context.Context, databaseURL string, logger *slog.Logger) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		pool:   pool,
		logger: logger.With("component", "postgres"),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *Store) Customers() *CustomerRepo {
	return &CustomerRepo{db: s.pool, logger: s.logger}
}

func (s *Store) Rentals() *RentalRepo {
	return &RentalRepo{db: s.pool, logger: s.logger}
}

func (s *Store) PendingOrders() *PendingOrderRepo {
	return &PendingOrderRepo{db: s.pool, logger: s.logger}
}

func (s *Store) ServiceAreas() *ServiceAreaRepo {
	return &ServiceAreaRepo{db: s.pool, logger: s.logger}
}

func (s *Store) DumpsterTypes() *DumpsterTypeRepo {
	return &DumpsterTypeRepo{db: s.pool, logger: s.logger}
}

func (s *Store) Dumpsters() *DumpsterRepo {
	return &DumpsterRepo{db: s.pool, logger: s.logger}
}

func (s *Store) ContactMessages() *ContactMessageRepo {
	return &ContactMessageRepo{db: s.pool, logger: s.logger}
}

func (s *Store) Jobs() *JobRepo {
	return &JobRepo{db: s.pool, logger: s.logger}
}
