package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgerror"
)

const (
	sqlSelectFortunes = "SELECT id, message FROM fortune"
	sqlSelectWorld    = "SELECT id, randomnumber FROM world WHERE id = $1"
	sqlSelectWorlds   = "SELECT id, randomnumber FROM world ORDER BY id"
	sqlUpdateWorld    = "UPDATE world SET randomnumber = $1 WHERE id = $2"

	sqlCreateWorld = `CREATE TABLE IF NOT EXISTS world (
	id integer NOT NULL PRIMARY KEY,
	randomnumber integer NOT NULL DEFAULT 0
)`
	sqlCreateFortune = `CREATE TABLE IF NOT EXISTS fortune (
	id integer NOT NULL PRIMARY KEY,
	message varchar(2048) NOT NULL
)`
	sqlTruncate = "TRUNCATE world, fortune"
)

type PostgresOptions struct {
	DSN      string
	MaxConns int32
}

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, opts PostgresOptions) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create new pool of DB connections: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) FindAllFortunes(ctx context.Context) ([]entity.Fortune, error) {
	rows, _ := s.pool.Query(ctx, sqlSelectFortunes)
	fortunes, err := pgx.CollectRows(rows, pgx.RowToStructByPos[entity.Fortune])
	if err != nil {
		return nil, connErr(fmt.Errorf("failed to get fortunes from DB: %w", err))
	}

	return fortunes, nil
}

func (s *PostgresStore) FindWorlds(ctx context.Context, ids []int) ([]entity.World, error) {
	if len(ids) == 1 {
		var w entity.World
		if err := s.pool.QueryRow(ctx, sqlSelectWorld, ids[0]).Scan(&w.ID, &w.RandomNumber); err != nil {
			return nil, worldErr(err)
		}
		return []entity.World{w}, nil
	}

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(sqlSelectWorld, id)
	}

	results := s.pool.SendBatch(ctx, batch)
	worlds := make([]entity.World, len(ids))
	for i := range worlds {
		if err := results.QueryRow().Scan(&worlds[i].ID, &worlds[i].RandomNumber); err != nil {
			_ = results.Close()
			return nil, worldErr(err)
		}
	}

	if err := results.Close(); err != nil {
		return nil, connErr(fmt.Errorf("failed to close world batch: %w", err))
	}

	return worlds, nil
}

// ReplaceWorlds updates the rows in ascending id order within one transaction,
// so concurrent updates lock rows in the same order.
func (s *PostgresStore) ReplaceWorlds(ctx context.Context, worlds []entity.World) error {
	updates := latestByID(worlds)
	if len(updates) == 0 {
		return nil
	}

	return connErr(pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, w := range updates {
			batch.Queue(sqlUpdateWorld, w.RandomNumber, w.ID)
		}

		results := tx.SendBatch(ctx, batch)
		for range updates {
			tag, err := results.Exec()
			if err != nil {
				_ = results.Close()
				return fmt.Errorf("failed to update world: %w", err)
			}
			if tag.RowsAffected() == 0 {
				_ = results.Close()
				return pkgerror.ErrNotFound
			}
		}

		return results.Close()
	}))
}

func (s *PostgresStore) AllWorlds(ctx context.Context) ([]entity.World, error) {
	rows, _ := s.pool.Query(ctx, sqlSelectWorlds)
	worlds, err := pgx.CollectRows(rows, pgx.RowToStructByPos[entity.World])
	if err != nil {
		return nil, connErr(fmt.Errorf("failed to get worlds from DB: %w", err))
	}

	return worlds, nil
}

func (s *PostgresStore) Seed(ctx context.Context, fortunes []entity.Fortune, worlds []entity.World) error {
	for _, stmt := range []string{sqlCreateWorld, sqlCreateFortune} {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, sqlTruncate); err != nil {
			return fmt.Errorf("failed to drop existing rows: %w", err)
		}

		_, err := tx.CopyFrom(ctx, pgx.Identifier{"fortune"}, []string{"id", "message"},
			pgx.CopyFromSlice(len(fortunes), func(i int) ([]any, error) {
				return []any{fortunes[i].ID, fortunes[i].Message}, nil
			}))
		if err != nil {
			return fmt.Errorf("failed to copy fortunes: %w", err)
		}

		_, err = tx.CopyFrom(ctx, pgx.Identifier{"world"}, []string{"id", "randomnumber"},
			pgx.CopyFromSlice(len(worlds), func(i int) ([]any, error) {
				return []any{worlds[i].ID, worlds[i].RandomNumber}, nil
			}))
		if err != nil {
			return fmt.Errorf("failed to copy worlds: %w", err)
		}

		return nil
	})
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func worldErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return pkgerror.ErrNotFound
	}
	return connErr(fmt.Errorf("failed to get world from DB: %w", err))
}
