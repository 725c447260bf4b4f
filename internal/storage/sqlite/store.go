// Package sqlite persists the comment table to a SQLite database file.
package sqlite

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // database/sql driver

	"github.com/openregs/docketsync/internal/comments"
)

// Store reads and writes the comment table in a single SQLite file.
type Store struct {
	path   string
	logger *zap.Logger
}

// New returns a Store for the given database file path. The file is not
// touched until Load or Save.
func New(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}, nil
}

// Load reads every row of the named table in insertion order. A missing
// database file is not an error: the sync starts from an empty table.
func (s *Store) Load(ctx context.Context, table string) ([]comments.Record, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("no existing database, starting empty", zap.String("path", s.path))
			return nil, nil
		}
		return nil, fmt.Errorf("stat database %s: %w", s.path, err)
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", s.path, err)
	}
	defer s.closeDB(db)

	var rows []comments.Record
	query := fmt.Sprintf(
		`SELECT docid, tracking_number, rin, title, date_posted, date_received, comment_text, attachments FROM %q ORDER BY rowid`,
		table)
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("load table %s: %w", table, err)
	}
	s.logger.Info("comments loaded",
		zap.String("path", s.path),
		zap.String("table", table),
		zap.Int("rows", len(rows)))
	return rows, nil
}

// Save writes all rows to the named table, replacing any existing table of
// that name. All columns are stored as text.
func (s *Store) Save(ctx context.Context, table string, rows []comments.Record) error {
	db, err := sqlx.ConnectContext(ctx, "sqlite", s.path)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", s.path, err)
	}
	defer s.closeDB(db)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %q`, table)); err != nil {
		return fmt.Errorf("drop table %s: %w", table, err)
	}
	create := fmt.Sprintf(`CREATE TABLE %q (
		docid TEXT PRIMARY KEY,
		tracking_number TEXT,
		rin TEXT,
		title TEXT,
		date_posted TEXT,
		date_received TEXT,
		comment_text TEXT,
		attachments TEXT
	)`, table)
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}

	insert := fmt.Sprintf(
		`INSERT INTO %q (docid, tracking_number, rin, title, date_posted, date_received, comment_text, attachments) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		table)
	for _, r := range rows {
		if _, err := tx.ExecContext(ctx, insert,
			r.DocID, r.TrackingNumber, r.RIN, r.Title,
			r.DatePosted, r.DateReceived, r.CommentText, r.Attachments,
		); err != nil {
			return fmt.Errorf("insert row %s: %w", r.DocID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Info("comments saved",
		zap.String("path", s.path),
		zap.String("table", table),
		zap.Int("rows", len(rows)))
	return nil
}

func (s *Store) closeDB(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		s.logger.Warn("closing database failed", zap.Error(err))
	}
}
