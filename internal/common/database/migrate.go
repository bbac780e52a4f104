// internal/common/database/migrate.go
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/benbjohnson/clock"

	apperrors "inventory-service/internal/common/errors"
	"inventory-service/internal/common/logger"
)

//go:embed migrations/*.sql
var embedded embed.FS

const (
	createSchemaSQL       = `CREATE SCHEMA IF NOT EXISTS inventory`
	createVersionTableSQL = `CREATE TABLE IF NOT EXISTS inventory.schema_version (version INTEGER NOT NULL PRIMARY KEY, time_applied TIMESTAMPTZ NOT NULL)`
	currentVersionSQL     = `SELECT COALESCE(MAX(version), 0) FROM inventory.schema_version`
	recordVersionSQL      = `INSERT INTO inventory.schema_version (version, time_applied) VALUES ($1, $2)`
)

// Migrations returns the scripts compiled into the binary, or the ones under dir
// when it is set.
func Migrations(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrator applies numbered SQL scripts ("0002_create_org.sql") in order. Each
// script runs in its own transaction together with its schema_version row.
type Migrator struct {
	db     *sql.DB
	clock  clock.Clock
	logger logger.Logger
}

func NewMigrator(db *sql.DB, clk clock.Clock, log logger.Logger) *Migrator {
	return &Migrator{db: db, clock: clk, logger: log}
}

// Up applies every script newer than the recorded version and returns the
// version the database is at afterwards.
func (m *Migrator) Up(ctx context.Context, source fs.FS) (int, error) {
	scripts, err := listScripts(source)
	if err != nil {
		return 0, err
	}

	if _, err := m.db.ExecContext(ctx, createSchemaSQL); err != nil {
		return 0, apperrors.NewMigrationFailedError(0, err)
	}
	if _, err := m.db.ExecContext(ctx, createVersionTableSQL); err != nil {
		return 0, apperrors.NewMigrationFailedError(0, err)
	}

	current, err := m.currentVersion(ctx)
	if err != nil {
		return 0, apperrors.NewMigrationFailedError(0, err)
	}

	if len(scripts) > 0 && scripts[len(scripts)-1].version > current {
		m.logger.Info("Bringing up database migrations", map[string]interface{}{
			"current": current,
			"target":  scripts[len(scripts)-1].version,
		})
	}

	for _, s := range scripts {
		if s.version <= current {
			continue
		}

		body, err := fs.ReadFile(source, s.name)
		if err != nil {
			return current, apperrors.NewMigrationFailedError(s.version, err)
		}

		m.logger.Debug("Executing database migration", map[string]interface{}{
			"migration": s.name,
		})
		if err := m.apply(ctx, s.version, string(body)); err != nil {
			return current, apperrors.NewMigrationFailedError(s.version, err)
		}
		current = s.version
	}

	return current, nil
}

func (m *Migrator) currentVersion(ctx context.Context) (int, error) {
	var v int
	if err := m.db.QueryRowContext(ctx, currentVersionSQL).Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

func (m *Migrator) apply(ctx context.Context, version int, script string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, recordVersionSQL, version, m.clock.Now().UTC()); err != nil {
		return err
	}
	return tx.Commit()
}

type script struct {
	name    string
	version int
}

func listScripts(source fs.FS) ([]script, error) {
	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var scripts []script
	seen := make(map[int]string)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		v, err := scriptVersion(e.Name())
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", e.Name(), err)
		}
		if prev, ok := seen[v]; ok {
			return nil, fmt.Errorf("migrations %s and %s share version %d", prev, e.Name(), v)
		}
		seen[v] = e.Name()
		scripts = append(scripts, script{name: e.Name(), version: v})
	}

	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].version < scripts[j].version
	})
	return scripts, nil
}

// extract the version number from a file named like "0002_create_org.sql"
func scriptVersion(filename string) (int, error) {
	v, err := strconv.Atoi(strings.Split(filename, "_")[0])
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("version must be positive, got %d", v)
	}
	return v, nil
}
