package storage

import (
	"database/sql"
	"fmt"
)

// Summary is one generated summary for a stored paper.
type Summary struct {
	ID          int64   `json:"id"`
	PaperKey    string  `json:"paper_key"`
	Content     string  `json:"content"`
	Model       string  `json:"model"`
	Style       string  `json:"style"` // layman, technical, executive, educational
	Temperature float64 `json:"temperature"`
	// Language names the translation target when the content was
	// translated after generation; empty for the model's own language.
	Language  string `json:"language,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Evaluation is a human judgement of one summary.
type Evaluation struct {
	ID          int64  `json:"id"`
	PaperKey    string `json:"paper_key"`
	SummaryID   int64  `json:"summary_id"`
	Factuality  int    `json:"factuality"`  // 1-5
	Readability int    `json:"readability"` // 1-5
	Comments    string `json:"comments,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// AddSummary stores a summary and returns its id.
func (d *DB) AddSummary(s *Summary) (int64, error) {
	if s.CreatedAt == "" {
		s.CreatedAt = now()
	}
	res, err := d.db.Exec(`
		INSERT INTO summaries (paper_key, content, model, style, temperature, language, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.PaperKey, s.Content, s.Model, s.Style, s.Temperature, s.Language, s.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting summary for %s: %w", s.PaperKey, err)
	}
	return res.LastInsertId()
}

// ListSummaries returns all summaries for a paper, oldest first.
func (d *DB) ListSummaries(paperKey string) ([]Summary, error) {
	rows, err := d.db.Query(`
		SELECT id, paper_key, content, model, style, temperature, language, created_at
		FROM summaries WHERE paper_key = ? ORDER BY id`, paperKey)
	if err != nil {
		return nil, fmt.Errorf("listing summaries for %s: %w", paperKey, err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.PaperKey, &s.Content, &s.Model,
			&s.Style, &s.Temperature, &s.Language, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// GetSummary retrieves one summary by id. Returns nil if not found.
func (d *DB) GetSummary(id int64) (*Summary, error) {
	var s Summary
	err := d.db.QueryRow(`
		SELECT id, paper_key, content, model, style, temperature, language, created_at
		FROM summaries WHERE id = ?`, id).
		Scan(&s.ID, &s.PaperKey, &s.Content, &s.Model, &s.Style, &s.Temperature, &s.Language, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting summary %d: %w", id, err)
	}
	return &s, nil
}

// AddEvaluation stores an evaluation and returns its id.
func (d *DB) AddEvaluation(e *Evaluation) (int64, error) {
	if e.Factuality < 1 || e.Factuality > 5 {
		return 0, fmt.Errorf("factuality score %d out of range 1-5", e.Factuality)
	}
	if e.Readability < 1 || e.Readability > 5 {
		return 0, fmt.Errorf("readability score %d out of range 1-5", e.Readability)
	}
	if e.CreatedAt == "" {
		e.CreatedAt = now()
	}
	res, err := d.db.Exec(`
		INSERT INTO evaluations (paper_key, summary_id, factuality, readability, comments, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.PaperKey, e.SummaryID, e.Factuality, e.Readability, e.Comments, e.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting evaluation for %s: %w", e.PaperKey, err)
	}
	return res.LastInsertId()
}

// Scores aggregates evaluation scores for one paper.
type Scores struct {
	Count          int     `json:"count"`
	AvgFactuality  float64 `json:"avg_factuality"`
	AvgReadability float64 `json:"avg_readability"`
}

// PaperScores returns aggregate evaluation scores for a paper. A zero
// Count means the paper has no evaluations.
func (d *DB) PaperScores(paperKey string) (Scores, error) {
	var s Scores
	var fact, read sql.NullFloat64
	err := d.db.QueryRow(`
		SELECT COUNT(*), AVG(factuality), AVG(readability)
		FROM evaluations WHERE paper_key = ?`, paperKey).
		Scan(&s.Count, &fact, &read)
	if err != nil {
		return Scores{}, fmt.Errorf("aggregating scores for %s: %w", paperKey, err)
	}
	s.AvgFactuality = fact.Float64
	s.AvgReadability = read.Float64
	return s, nil
}
