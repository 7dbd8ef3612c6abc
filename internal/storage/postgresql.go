// Package storage реализует хранилище профилей пользователей на PostgreSQL.
// Предоставляет проверку существования, чтение, вставку и частичное
// обновление строки user_profiles по ключу netlify_id.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Storage инкапсулирует пул соединений с PostgreSQL.
type Storage struct {
	Pool *pgxpool.Pool
}

// New создаёт пул соединений и проверяет доступность базы.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	cfg, err := pgxpool.ParseConfig(storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cfg.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{Pool: pool}, nil
}

// DB возвращает *sql.DB поверх пула, нужен для миграций.
func (s *Storage) DB() *sql.DB {
	return stdlib.OpenDBFromPool(s.Pool)
}

// Ping проверяет соединение с базой.
func (s *Storage) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// Close закрывает пул.
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
