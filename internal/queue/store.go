package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"podmill/internal/config"
	"podmill/internal/episode"
)

// Store manages the processing ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

const itemColumns = "id, prompt_path, episode_name, status, error_message, final_file, segment_count, created_at, updated_at"

// Open initializes or connects to the ledger database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "ledger.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// NewItem inserts a pending ledger row for one prompt.
func (s *Store) NewItem(ctx context.Context, promptPath, episodeName string) (*Item, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO ledger_items (prompt_path, episode_name, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?)`,
		promptPath,
		episodeName,
		string(episode.StagePending),
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// SetStage updates an item's lifecycle stage.
func (s *Store) SetStage(ctx context.Context, id int64, stage episode.Stage) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(
		ctx,
		`UPDATE ledger_items SET status = ?, updated_at = ? WHERE id = ?`,
		string(stage),
		now,
		id,
	)
	if err != nil {
		return fmt.Errorf("set stage: %w", err)
	}
	return nil
}

// MarkCompleted finalizes an item after a successful episode.
func (s *Store) MarkCompleted(ctx context.Context, id int64, finalFile string, segmentCount int) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(
		ctx,
		`UPDATE ledger_items
         SET status = ?, final_file = ?, segment_count = ?, error_message = '', updated_at = ?
         WHERE id = ?`,
		string(episode.StageCompleted),
		finalFile,
		segmentCount,
		now,
		id,
	)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

// MarkFailed records a terminal failure with its message.
func (s *Store) MarkFailed(ctx context.Context, id int64, message string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(
		ctx,
		`UPDATE ledger_items SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		string(episode.StageFailed),
		message,
		now,
		id,
	)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return nil
}

// GetByID fetches a ledger item by identifier. A missing id yields
// (nil, nil).
func (s *Store) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+itemColumns+` FROM ledger_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns all ledger items, newest first.
func (s *Store) List(ctx context.Context) ([]*Item, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+itemColumns+` FROM ledger_items ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Clear removes every ledger row.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ensureContext(ctx), `DELETE FROM ledger_items`)
	if err != nil {
		return 0, fmt.Errorf("clear items: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// Summarize aggregates item counts by lifecycle state.
func (s *Store) Summarize(ctx context.Context) (HealthSummary, error) {
	var summary HealthSummary
	items, err := s.List(ctx)
	if err != nil {
		return summary, err
	}
	summary.Total = len(items)
	for _, item := range items {
		switch {
		case item.Status == episode.StagePending:
			summary.Pending++
		case item.Status == episode.StageCompleted:
			summary.Completed++
		case item.Status == episode.StageFailed:
			summary.Failed++
		case item.IsProcessing():
			summary.Processing++
		}
	}
	return summary, nil
}

// Health inspects the database file and schema.
func (s *Store) Health(ctx context.Context) DatabaseHealth {
	health := DatabaseHealth{DBPath: s.path}

	if _, err := os.Stat(s.path); err != nil {
		health.Error = fmt.Sprintf("database file: %v", err)
		return health
	}
	health.DatabaseExists = true

	var version int
	if err := s.db.QueryRowContext(ensureContext(ctx), "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		health.Error = fmt.Sprintf("schema version: %v", err)
		return health
	}
	health.DatabaseReadable = true
	health.SchemaVersion = fmt.Sprintf("%d", version)

	if err := s.db.QueryRowContext(ensureContext(ctx), "SELECT COUNT(1) FROM ledger_items").Scan(&health.TotalItems); err != nil {
		health.Error = fmt.Sprintf("count items: %v", err)
	}
	return health
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var (
		item      Item
		status    string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(
		&item.ID,
		&item.PromptPath,
		&item.EpisodeName,
		&status,
		&item.ErrorMessage,
		&item.FinalFile,
		&item.SegmentCount,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	stage, ok := episode.ParseStage(status)
	if !ok {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	item.Status = stage
	item.CreatedAt = parseTimestamp(createdAt)
	item.UpdatedAt = parseTimestamp(updatedAt)
	return &item, nil
}

func parseTimestamp(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
