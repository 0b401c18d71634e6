package repository

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// RunMigrations applies the *.up.sql files in fsys that schema_migrations
// has not recorded, in lexical order. Each file and its version row commit
// together.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) error {
	if _, err := pool.Exec(ctx, createVersionTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, pool)
	if err != nil {
		return err
	}

	pending, err := pendingMigrations(fsys, applied)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		log.Debug().Int("applied", len(applied)).Msg("schema up to date")
		return nil
	}

	for _, file := range pending {
		version := migrationVersion(file)
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(content)); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version)
			return err
		})
		if err != nil {
			// Databases migrated before schema_migrations existed already
			// hold these objects; adopt them.
			if !strings.Contains(err.Error(), "already exists") {
				return fmt.Errorf("failed to execute migration %s: %w", file, err)
			}
			if _, err := pool.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT DO NOTHING`, version); err != nil {
				return fmt.Errorf("failed to record migration %s: %w", file, err)
			}
			log.Warn().Str("version", version).Msg("migration objects already present, recorded as applied")
			continue
		}
		log.Info().Str("version", version).Msg("migration applied")
	}

	return nil
}

func appliedVersions(ctx context.Context, pool *pgxpool.Pool) (map[string]bool, error) {
	rows, err := pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func pendingMigrations(fsys fs.FS, applied map[string]bool) ([]string, error) {
	files, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to glob migration files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migrations found")
	}
	sort.Strings(files)

	pending := files[:0]
	for _, file := range files {
		if !applied[migrationVersion(file)] {
			pending = append(pending, file)
		}
	}
	return pending, nil
}

// migrationVersion maps "000001_init_schema.up.sql" to "000001_init_schema".
func migrationVersion(file string) string {
	return strings.TrimSuffix(file, ".up.sql")
}
