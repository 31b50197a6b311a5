package session

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Memory is the path of a private in-memory store.
const Memory = ":memory:"

// Store persists conversation turns in a sqlite file, separate from the
// ledger.
type Store struct {
	db *sql.DB
}

// Info describes a past session.
type Info struct {
	ID      string
	Started time.Time
	Turns   int
}

// Open opens the agent-state file at path, creating it when needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create session directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session store %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping session store %q: %w", path, err)
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session store %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}
	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}
	defer d.Close()
	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	// m is not closed, it would close db.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Append writes a turn of session id.
func (s *Store) Append(ctx context.Context, id string, t Turn) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO turns (session_id, role, content, created_at) VALUES (?, ?, ?, ?)",
		id, string(t.Role), t.Content, t.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// Turns reads the turns of session id, oldest first.
func (s *Store) Turns(ctx context.Context, id string) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT role, content, created_at FROM turns WHERE session_id = ? ORDER BY id", id)
	if err != nil {
		return nil, fmt.Errorf("read turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		var role, at string
		if err := rows.Scan(&role, &t.Content, &at); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.Role = Role(role)
		t.At, _ = time.Parse(time.RFC3339Nano, at)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Sessions lists the recorded sessions, most recent first.
func (s *Store) Sessions(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT session_id, MIN(created_at), COUNT(*) FROM turns GROUP BY session_id ORDER BY MIN(id) DESC")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var started string
		if err := rows.Scan(&info.ID, &started, &info.Turns); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		info.Started, _ = time.Parse(time.RFC3339Nano, started)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
