// Package storage persists validated paper records and their summaries
// and evaluations in SQLite. It accepts already-validated,
// duplicate-free records; the paper key is the uniqueness constraint.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ndowell/bibgest/internal/paper"
	_ "modernc.org/sqlite"
)

// ErrDuplicateKey is returned when a paper with the same key is
// already stored.
var ErrDuplicateKey = errors.New("paper with this key already stored")

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectPaperFields contains the standard field list for SELECT queries.
const selectPaperFields = `key, entry_type, title, authors_json, year,
	abstract, doi, extra_json, source_line`

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			key TEXT PRIMARY KEY,
			entry_type TEXT,
			title TEXT NOT NULL,
			authors_json TEXT,
			year INTEGER,
			abstract TEXT,
			doi TEXT,
			extra_json TEXT,
			source_line INTEGER,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_papers_doi ON papers(doi) WHERE doi IS NOT NULL AND doi != '';

		CREATE TABLE IF NOT EXISTS summaries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			paper_key TEXT NOT NULL REFERENCES papers(key),
			content TEXT NOT NULL,
			model TEXT NOT NULL,
			style TEXT NOT NULL,
			temperature REAL NOT NULL,
			language TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_summaries_paper ON summaries(paper_key);

		CREATE TABLE IF NOT EXISTS evaluations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			paper_key TEXT NOT NULL REFERENCES papers(key),
			summary_id INTEGER NOT NULL REFERENCES summaries(id),
			factuality INTEGER NOT NULL,
			readability INTEGER NOT NULL,
			comments TEXT,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_evaluations_paper ON evaluations(paper_key);
	`

	_, err := db.Exec(schema)
	return err
}

// now returns the stored timestamp format.
func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// HasPaper reports whether a paper with the given key is stored.
func (d *DB) HasPaper(key string) (bool, error) {
	var one int
	err := d.db.QueryRow("SELECT 1 FROM papers WHERE key = ?", key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddPaper stores a validated paper. Returns ErrDuplicateKey if a
// paper with the same key already exists.
func (d *DB) AddPaper(p *paper.Paper) error {
	exists, err := d.HasPaper(p.Key)
	if err != nil {
		return fmt.Errorf("checking key %s: %w", p.Key, err)
	}
	if exists {
		return fmt.Errorf("key %s: %w", p.Key, ErrDuplicateKey)
	}

	authorsJSON, err := json.Marshal(p.Authors)
	if err != nil {
		return fmt.Errorf("marshaling authors for %s: %w", p.Key, err)
	}
	var extraJSON []byte
	if len(p.Extra) > 0 {
		extraJSON, err = json.Marshal(p.Extra)
		if err != nil {
			return fmt.Errorf("marshaling extra fields for %s: %w", p.Key, err)
		}
	}

	_, err = d.db.Exec(`
		INSERT INTO papers (key, entry_type, title, authors_json, year,
			abstract, doi, extra_json, source_line, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Key, p.EntryType, p.Title, string(authorsJSON), p.Year,
		p.Abstract, p.DOI, nullableString(extraJSON), p.Line, now())
	if err != nil {
		return fmt.Errorf("inserting paper %s: %w", p.Key, err)
	}
	return nil
}

func nullableString(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

// GetPaper retrieves a paper by key. Returns nil if not found.
func (d *DB) GetPaper(key string) (*paper.Paper, error) {
	row := d.db.QueryRow("SELECT "+selectPaperFields+" FROM papers WHERE key = ?", key)
	p, err := scanPaper(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting paper %s: %w", key, err)
	}
	return p, nil
}

// ListPapers returns all stored papers ordered by insertion time.
func (d *DB) ListPapers() ([]paper.Paper, error) {
	rows, err := d.db.Query("SELECT " + selectPaperFields + " FROM papers ORDER BY created_at, key")
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	var papers []paper.Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		papers = append(papers, *p)
	}
	return papers, rows.Err()
}

// CountPapers returns the number of stored papers.
func (d *DB) CountPapers() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&n)
	return n, err
}

// scanner abstracts sql.Row and sql.Rows for scanPaper.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPaper(s scanner) (*paper.Paper, error) {
	var p paper.Paper
	var authorsJSON string
	var extraJSON sql.NullString
	var abstract, doi, entryType sql.NullString

	err := s.Scan(&p.Key, &entryType, &p.Title, &authorsJSON, &p.Year,
		&abstract, &doi, &extraJSON, &p.Line)
	if err != nil {
		return nil, err
	}

	p.EntryType = entryType.String
	p.Abstract = abstract.String
	p.DOI = doi.String
	if authorsJSON != "" && authorsJSON != "null" {
		if err := json.Unmarshal([]byte(authorsJSON), &p.Authors); err != nil {
			return nil, fmt.Errorf("unmarshaling authors for %s: %w", p.Key, err)
		}
	}
	if extraJSON.Valid && extraJSON.String != "" {
		if err := json.Unmarshal([]byte(extraJSON.String), &p.Extra); err != nil {
			return nil, fmt.Errorf("unmarshaling extra fields for %s: %w", p.Key, err)
		}
	}
	return &p, nil
}
