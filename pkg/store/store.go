// Package store keeps named rule presets in sqlite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/umputun/html2rss/pkg/domain"
)

//go:embed schema.sql
var schema string

var presetNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// Config represents database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store provides preset persistence
type Store struct {
	conn *sqlx.DB
	now  func() time.Time
}

// presetRow is the db representation of domain.Preset
type presetRow struct {
	Name      string    `db:"name"`
	Token     string    `db:"token"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// New opens the database and creates the schema
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:html2rss.db?mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)"
	}

	conn, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// configure connection pool
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{conn: conn, now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

// Ping verifies the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// SavePreset inserts a preset or replaces the token of an existing one, created_at is kept
func (s *Store) SavePreset(ctx context.Context, name, tkn string) (*domain.Preset, error) {
	if !presetNameRe.MatchString(name) {
		return nil, domain.Validationf("invalid preset name %q", name)
	}
	if strings.TrimSpace(tkn) == "" {
		return nil, domain.Validationf("empty preset token")
	}

	now := s.now().UTC().Truncate(time.Second)
	err := s.withRetry(ctx, "save preset", func() error {
		_, err := s.conn.ExecContext(ctx, `
			INSERT INTO presets (name, token, created_at, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at
		`, name, tkn, now, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetPreset(ctx, name)
}

// GetPreset returns a preset by name
func (s *Store) GetPreset(ctx context.Context, name string) (*domain.Preset, error) {
	var row presetRow
	err := s.conn.GetContext(ctx, &row, `SELECT name, token, created_at, updated_at FROM presets WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("preset %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get preset: %w", err)
	}
	p := row.toDomain()
	return &p, nil
}

// ListPresets returns all presets, recently updated first
func (s *Store) ListPresets(ctx context.Context) ([]domain.Preset, error) {
	var rows []presetRow
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT name, token, created_at, updated_at FROM presets ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	res := make([]domain.Preset, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.toDomain())
	}
	return res, nil
}

// DeletePreset removes a preset, domain.ErrNotFound if there is no such name
func (s *Store) DeletePreset(ctx context.Context, name string) error {
	var affected int64
	err := s.withRetry(ctx, "delete preset", func() error {
		res, err := s.conn.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, name)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("preset %q: %w", name, domain.ErrNotFound)
	}
	return nil
}

// withRetry runs fn with backoff while sqlite reports lock errors, other errors stop it at once
func (s *Store) withRetry(ctx context.Context, op string, fn func() error) error {
	var opErr error
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		opErr = fn()
		if isLockError(opErr) {
			return opErr // retry
		}
		return nil
	})
	if opErr != nil {
		return fmt.Errorf("%s: %w", op, opErr)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r presetRow) toDomain() domain.Preset {
	return domain.Preset{Name: r.Name, Token: r.Token, CreatedAt: r.CreatedAt.UTC(), UpdatedAt: r.UpdatedAt.UTC()}
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
