// Package history keeps the most recently generated report forms in SQLite so
// they can be listed and loaded back into the generator.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// DefaultMaxItems is how many reports are retained when no limit is configured.
const DefaultMaxItems = 10

// ErrNotFound is returned when no item has the requested id.
var ErrNotFound = errors.New("history item not found")

// Item is one saved report form.
type Item struct {
	ID         string            `json:"id"`
	ClientName string            `json:"clientName"`
	Period     string            `json:"period"`
	CreatedAt  time.Time         `json:"createdAt"`
	Data       map[string]string `json:"data"`
}

const schema = `
CREATE TABLE IF NOT EXISTS report_history (
	id          TEXT PRIMARY KEY,
	client_name TEXT NOT NULL,
	period      TEXT NOT NULL,
	created_at  INTEGER NOT NULL,
	data        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_report_history_created ON report_history(created_at);
`

// Store is a bounded, newest-first report history.
type Store struct {
	db       *sql.DB
	maxItems int
	logger   zerolog.Logger
	now      func() time.Time
}

// Open opens (creating if needed) the history database at path. The special
// path ":memory:" keeps everything in memory.
func Open(path string, maxItems int, logger zerolog.Logger) (*Store, error) {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	// SQLite serializes writers; one connection also keeps ":memory:" alive.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{
		db:       db,
		maxItems: maxItems,
		logger:   logger.With().Str("component", "history").Logger(),
		now:      time.Now,
	}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// MaxItems returns the retention limit.
func (s *Store) MaxItems() int { return s.maxItems }

// Save stores a report form and evicts the oldest entries beyond MaxItems.
func (s *Store) Save(ctx context.Context, form map[string]string) (Item, error) {
	data, err := json.Marshal(form)
	if err != nil {
		return Item{}, fmt.Errorf("encoding form: %w", err)
	}
	item := Item{
		ID:         uuid.NewString(),
		ClientName: form["clientName"],
		Period:     form["period"],
		CreatedAt:  s.now().UTC(),
		Data:       form,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Item{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO report_history (id, client_name, period, created_at, data) VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.ClientName, item.Period, item.CreatedAt.UnixNano(), string(data),
	); err != nil {
		return Item{}, fmt.Errorf("inserting history item: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM report_history WHERE id NOT IN (
			SELECT id FROM report_history ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, s.maxItems)
	if err != nil {
		return Item{}, fmt.Errorf("pruning history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Item{}, fmt.Errorf("committing history item: %w", err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		s.logger.Debug().Int64("evicted", n).Msg("history pruned")
	}
	s.logger.Info().Str("id", item.ID).Str("client", item.ClientName).Msg("report saved to history")
	return item, nil
}

// List returns all items, newest first.
func (s *Store) List(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, client_name, period, created_at, data FROM report_history ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return items, nil
}

// Get returns one item.
func (s *Store) Get(ctx context.Context, id string) (Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Item{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT id, client_name, period, created_at, data FROM report_history WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return item, err
}

// Delete removes one item.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM report_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting history item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting history item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}

// Clear removes every item.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM report_history`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	s.logger.Info().Msg("history cleared")
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (Item, error) {
	var (
		item    Item
		created int64
		data    string
	)
	if err := sc.Scan(&item.ID, &item.ClientName, &item.Period, &created, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, err
		}
		return Item{}, fmt.Errorf("reading history item: %w", err)
	}
	item.CreatedAt = time.Unix(0, created).UTC()
	if err := json.Unmarshal([]byte(data), &item.Data); err != nil {
		return Item{}, fmt.Errorf("decoding history item %s: %w", item.ID, err)
	}
	return item, nil
}
