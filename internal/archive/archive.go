// Package archive stores exported track lists in SQLite.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jfmyers9/cratedig/pkg/catalog"
	_ "modernc.org/sqlite"
)

// Store is an export archive backed by SQLite
type Store struct {
	db *sql.DB
}

// Row is one track as written to the archive
type Row struct {
	TrackID    string
	Name       string
	Artists    string
	Album      string
	DurationMS int
	AddedAt    time.Time
}

// Entry is a stored row with its export and position
type Entry struct {
	ExportID int64
	Position int
	Row
}

// Export describes one export run
type Export struct {
	ID         int64
	Source     string
	SourceID   string
	CreatedAt  time.Time
	TrackCount int
}

// Open creates or opens an archive at dbPath. Use ":memory:" for a
// throwaway archive.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps in-memory databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS exports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			source_id TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		);

		CREATE TABLE IF NOT EXISTS tracks (
			export_id INTEGER NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			track_id TEXT NOT NULL,
			name TEXT NOT NULL,
			artists TEXT,
			album TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			added_at INTEGER,
			PRIMARY KEY (export_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_exports_source ON exports(source, source_id);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginExport records a new export of source/sourceID and returns its id
func (s *Store) BeginExport(ctx context.Context, source, sourceID string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO exports (source, source_id, created_at) VALUES (?, ?, ?)",
		source, sourceID, time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert export: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}

	return id, nil
}

// AddTracks stores rows under exportID, numbering them from startPos.
// Either every row is stored or none is.
func (s *Store) AddTracks(ctx context.Context, exportID int64, startPos int, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tracks (export_id, position, track_id, name, artists, album, duration_ms, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		var addedAt sql.NullInt64
		if !row.AddedAt.IsZero() {
			addedAt = sql.NullInt64{Int64: row.AddedAt.Unix(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			exportID, startPos+i, row.TrackID, row.Name, row.Artists, row.Album, row.DurationMS, addedAt,
		); err != nil {
			return fmt.Errorf("failed to insert track %s: %w", row.TrackID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Tracks returns the rows of an export in position order
func (s *Store) Tracks(ctx context.Context, exportID int64) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT export_id, position, track_id, name, COALESCE(artists, ''), COALESCE(album, ''), duration_ms, added_at
		FROM tracks
		WHERE export_id = ?
		ORDER BY position ASC
	`, exportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var addedAt sql.NullInt64

		if err := rows.Scan(
			&e.ExportID,
			&e.Position,
			&e.TrackID,
			&e.Name,
			&e.Artists,
			&e.Album,
			&e.DurationMS,
			&addedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		if addedAt.Valid {
			e.AddedAt = time.Unix(addedAt.Int64, 0).UTC()
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracks: %w", err)
	}

	return entries, nil
}

// Exports lists every export, newest first
func (s *Store) Exports(ctx context.Context) ([]Export, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.source, e.source_id, e.created_at, COUNT(t.position)
		FROM exports e
		LEFT JOIN tracks t ON t.export_id = e.id
		GROUP BY e.id
		ORDER BY e.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer rows.Close()

	exports := []Export{}
	for rows.Next() {
		var e Export
		var createdAt int64

		if err := rows.Scan(&e.ID, &e.Source, &e.SourceID, &createdAt, &e.TrackCount); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)

		exports = append(exports, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exports: %w", err)
	}

	return exports, nil
}

// ExportPages archives page and every page after it under a new export.
// It returns the export id and the number of rows written.
//
// Pages are stored one transaction each. Traversal stops at the last page
// or when the cursor no longer advances.
func ExportPages[T any](ctx context.Context, s *Store, source, sourceID string, page *catalog.Page[T], toRow func(T) Row) (int64, int, error) {
	exportID, err := s.BeginExport(ctx, source, sourceID)
	if err != nil {
		return 0, 0, err
	}

	written := 0
	for {
		rows := make([]Row, len(page.Items))
		for i, item := range page.Items {
			rows[i] = toRow(item)
		}
		if err := s.AddTracks(ctx, exportID, written, rows); err != nil {
			return exportID, written, err
		}
		written += len(rows)

		if !page.HasNext() {
			return exportID, written, nil
		}
		before := page.NextURL
		if err := page.Next(ctx); err != nil {
			return exportID, written, fmt.Errorf("failed to fetch next page: %w", err)
		}
		if page.NextURL == before {
			return exportID, written, nil
		}
	}
}

// FromTrack converts a catalog track to an archive row.
func FromTrack(t catalog.Track) Row {
	names := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		names[i] = a.Name
	}
	return Row{
		TrackID:    t.ID,
		Name:       t.Name,
		Artists:    strings.Join(names, ", "),
		Album:      t.Album.Name,
		DurationMS: t.DurationMS,
	}
}

// FromPlaylistTrack converts a playlist entry to an archive row.
func FromPlaylistTrack(item catalog.PlaylistTrack) Row {
	row := FromTrack(item.Track)
	row.AddedAt = item.AddedAt.Time
	return row
}

// FromSavedTrack converts a library entry to an archive row.
func FromSavedTrack(item catalog.SavedTrack) Row {
	row := FromTrack(item.Track)
	row.AddedAt = item.AddedAt.Time
	return row
}
