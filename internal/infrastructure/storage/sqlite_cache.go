package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"MenuScanner/internal/domain"
	"MenuScanner/internal/ports"
)

const documentsTable = "documents"

const schema = `CREATE TABLE IF NOT EXISTS documents (
	url        TEXT PRIMARY KEY,
	week_start TEXT,
	text       TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
)`

// SQLiteCache keeps extracted document text in a local SQLite file.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

var _ ports.DocumentCache = (*SQLiteCache)(nil)

// OpenSQLiteCache opens (or creates) the cache database at path. A zero ttl
// keeps entries forever.
func OpenSQLiteCache(ctx context.Context, path string, ttl time.Duration) (*SQLiteCache, error) {
	if path == "" {
		return nil, errors.New("sqlite cache: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteCache{db: db, ttl: ttl, now: time.Now}, nil
}

// Close closes the underlying database connection.
func (c *SQLiteCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached document for url if present and not expired.
func (c *SQLiteCache) Get(ctx context.Context, url string) (domain.Document, bool, error) {
	query, args, err := sq.Select("week_start", "text", "fetched_at").
		From(documentsTable).
		Where(sq.Eq{"url": url}).
		ToSql()
	if err != nil {
		return domain.Document{}, false, fmt.Errorf("build select: %w", err)
	}

	var (
		week      sql.NullString
		text      string
		fetchedAt int64
	)
	err = c.db.QueryRowContext(ctx, query, args...).Scan(&week, &text, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Document{}, false, nil
	}
	if err != nil {
		return domain.Document{}, false, fmt.Errorf("select document: %w", err)
	}

	if c.ttl > 0 && c.now().Sub(time.Unix(fetchedAt, 0)) > c.ttl {
		return domain.Document{}, false, nil
	}

	doc := domain.Document{URL: url, Text: text}
	if week.Valid {
		start, err := time.Parse(domain.DateLayout, week.String)
		if err != nil {
			return domain.Document{}, false, fmt.Errorf("decode week start %q: %w", week.String, err)
		}
		doc.WeekStart = &start
	}
	return doc, true, nil
}

// Put upserts the document and stamps it with the current time.
func (c *SQLiteCache) Put(ctx context.Context, doc domain.Document) error {
	var week sql.NullString
	if doc.WeekStart != nil {
		week = sql.NullString{String: domain.FormatDate(*doc.WeekStart), Valid: true}
	}

	query, args, err := sq.Insert(documentsTable).
		Columns("url", "week_start", "text", "fetched_at").
		Values(doc.URL, week, doc.Text, c.now().Unix()).
		Suffix("ON CONFLICT(url) DO UPDATE SET week_start = excluded.week_start, text = excluded.text, fetched_at = excluded.fetched_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

// Prune deletes entries older than the ttl and reports how many went.
func (c *SQLiteCache) Prune(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := c.now().Add(-c.ttl).Unix()

	query, args, err := sq.Delete(documentsTable).Where(sq.Lt{"fetched_at": cutoff}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune documents: %w", err)
	}
	return res.RowsAffected()
}
