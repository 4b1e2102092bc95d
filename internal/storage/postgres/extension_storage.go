package postgres

import (
	"context"
	"currency-converter/internal/storage"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPoolIface подмножество pgxpool.Pool, которое нужно хранилищу
type PgxPoolIface interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Close()
}

type PgExtensionStorage struct {
	db PgxPoolIface
}

func NewExtensionStorage(db PgxPoolIface) storage.LocalStorage {
	return &PgExtensionStorage{db: db}
}

func (s *PgExtensionStorage) Get(ctx context.Context, key string, dst any) (bool, error) {
	const op = "storage.Get"

	var raw []byte
	err := s.db.QueryRow(ctx, storage.GetRecordQuery, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%s: decode %q: %w", op, key, err)
	}
	return true, nil
}

func (s *PgExtensionStorage) Set(ctx context.Context, key string, value any) error {
	const op = "storage.Set"

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: encode %q: %w", op, key, err)
	}

	if _, err := s.db.Exec(ctx, storage.UpsertRecordQuery, key, raw); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *PgExtensionStorage) Close() error {
	s.db.Close()
	return nil
}
