package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ndowell/bibgest/internal/paper"
)

// setupTestDB creates a test database with two papers.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	papers := []paper.Paper{
		{
			Key:       "Smith_2020",
			EntryType: "article",
			Title:     "Deep Learning in Medicine",
			Authors:   []string{"A. Smith", "B. Jones"},
			Year:      2020,
			Abstract:  "A study of nested emphasis.",
			DOI:       "10.1234/smith",
			Extra:     map[string]string{"journal": "Nature Medicine"},
			Line:      1,
		},
		{
			Key:       "Doe_2021",
			EntryType: "inproceedings",
			Title:     "Statistical Methods",
			Authors:   []string{"J. Doe"},
			Year:      2021,
			Line:      12,
		},
	}
	for i := range papers {
		if err := db.AddPaper(&papers[i]); err != nil {
			t.Fatalf("AddPaper(%s) error: %v", papers[i].Key, err)
		}
	}
	return db
}

func TestAddAndGetPaper(t *testing.T) {
	db := setupTestDB(t)

	p, err := db.GetPaper("Smith_2020")
	if err != nil {
		t.Fatalf("GetPaper() error: %v", err)
	}
	if p == nil {
		t.Fatal("GetPaper() returned nil for stored paper")
	}
	if p.Title != "Deep Learning in Medicine" {
		t.Errorf("Title = %q", p.Title)
	}
	if len(p.Authors) != 2 || p.Authors[0] != "A. Smith" {
		t.Errorf("Authors = %v", p.Authors)
	}
	if p.Year != 2020 {
		t.Errorf("Year = %d", p.Year)
	}
	if p.Extra["journal"] != "Nature Medicine" {
		t.Errorf("Extra = %v", p.Extra)
	}
}

func TestGetPaper_NotFound(t *testing.T) {
	db := setupTestDB(t)
	p, err := db.GetPaper("nope")
	if err != nil {
		t.Fatalf("GetPaper() error: %v", err)
	}
	if p != nil {
		t.Errorf("GetPaper() = %+v, want nil", p)
	}
}

func TestAddPaper_DuplicateKey(t *testing.T) {
	db := setupTestDB(t)
	err := db.AddPaper(&paper.Paper{Key: "Smith_2020", Title: "Another"})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("AddPaper() error = %v, want ErrDuplicateKey", err)
	}
}

func TestHasPaper(t *testing.T) {
	db := setupTestDB(t)
	got, err := db.HasPaper("Doe_2021")
	if err != nil || !got {
		t.Errorf("HasPaper(Doe_2021) = (%v, %v), want (true, nil)", got, err)
	}
	got, err = db.HasPaper("missing")
	if err != nil || got {
		t.Errorf("HasPaper(missing) = (%v, %v), want (false, nil)", got, err)
	}
}

func TestListAndCountPapers(t *testing.T) {
	db := setupTestDB(t)

	papers, err := db.ListPapers()
	if err != nil {
		t.Fatalf("ListPapers() error: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(papers))
	}

	n, err := db.CountPapers()
	if err != nil {
		t.Fatalf("CountPapers() error: %v", err)
	}
	if n != 2 {
		t.Errorf("CountPapers() = %d, want 2", n)
	}
}

func TestSummaries(t *testing.T) {
	db := setupTestDB(t)

	id, err := db.AddSummary(&Summary{
		PaperKey:    "Smith_2020",
		Content:     "A layman summary.",
		Model:       "gpt-4.1-mini",
		Style:       "layman",
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("AddSummary() error: %v", err)
	}
	if id == 0 {
		t.Error("AddSummary() returned id 0")
	}

	summaries, err := db.ListSummaries("Smith_2020")
	if err != nil {
		t.Fatalf("ListSummaries() error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	if summaries[0].Content != "A layman summary." {
		t.Errorf("Content = %q", summaries[0].Content)
	}
	if summaries[0].CreatedAt == "" {
		t.Error("CreatedAt not set")
	}

	s, err := db.GetSummary(id)
	if err != nil {
		t.Fatalf("GetSummary() error: %v", err)
	}
	if s == nil || s.ID != id {
		t.Errorf("GetSummary(%d) = %+v", id, s)
	}
	if s.Language != "" {
		t.Errorf("Language = %q, want empty for untranslated summary", s.Language)
	}
}

func TestSummaries_TranslationLanguageRoundTrips(t *testing.T) {
	db := setupTestDB(t)

	id, err := db.AddSummary(&Summary{
		PaperKey:    "Smith_2020",
		Content:     "Un resumen sencillo.",
		Model:       "gpt-4.1-mini",
		Style:       "layman",
		Temperature: 0.7,
		Language:    "Spanish",
	})
	if err != nil {
		t.Fatalf("AddSummary() error: %v", err)
	}

	s, err := db.GetSummary(id)
	if err != nil {
		t.Fatalf("GetSummary() error: %v", err)
	}
	if s == nil || s.Language != "Spanish" {
		t.Errorf("GetSummary(%d).Language = %+v, want Spanish", id, s)
	}

	summaries, err := db.ListSummaries("Smith_2020")
	if err != nil {
		t.Fatalf("ListSummaries() error: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Language != "Spanish" {
		t.Errorf("ListSummaries() = %+v, want one Spanish summary", summaries)
	}
}

func TestEvaluations(t *testing.T) {
	db := setupTestDB(t)

	sid, err := db.AddSummary(&Summary{
		PaperKey: "Smith_2020", Content: "s", Model: "m", Style: "layman", Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("AddSummary() error: %v", err)
	}

	for _, scores := range [][2]int{{5, 4}, {3, 2}} {
		if _, err := db.AddEvaluation(&Evaluation{
			PaperKey:    "Smith_2020",
			SummaryID:   sid,
			Factuality:  scores[0],
			Readability: scores[1],
		}); err != nil {
			t.Fatalf("AddEvaluation() error: %v", err)
		}
	}

	got, err := db.PaperScores("Smith_2020")
	if err != nil {
		t.Fatalf("PaperScores() error: %v", err)
	}
	if got.Count != 2 {
		t.Errorf("Count = %d, want 2", got.Count)
	}
	if got.AvgFactuality != 4 {
		t.Errorf("AvgFactuality = %v, want 4", got.AvgFactuality)
	}
	if got.AvgReadability != 3 {
		t.Errorf("AvgReadability = %v, want 3", got.AvgReadability)
	}
}

func TestAddEvaluation_ScoreRange(t *testing.T) {
	db := setupTestDB(t)
	tests := []struct {
		name string
		eval Evaluation
	}{
		{"factuality too low", Evaluation{PaperKey: "Smith_2020", Factuality: 0, Readability: 3}},
		{"factuality too high", Evaluation{PaperKey: "Smith_2020", Factuality: 6, Readability: 3}},
		{"readability too low", Evaluation{PaperKey: "Smith_2020", Factuality: 3, Readability: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.AddEvaluation(&tt.eval); err == nil {
				t.Error("AddEvaluation() should reject out-of-range scores")
			}
		})
	}
}

func TestPaperScores_NoEvaluations(t *testing.T) {
	db := setupTestDB(t)
	got, err := db.PaperScores("Doe_2021")
	if err != nil {
		t.Fatalf("PaperScores() error: %v", err)
	}
	if got.Count != 0 {
		t.Errorf("Count = %d, want 0", got.Count)
	}
}
