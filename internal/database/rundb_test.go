package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/headline/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *RunDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// sampleReport builds a completed run report for storage tests.
func sampleReport(sectionURL string) *model.RunReport {
	report := model.NewRunReport(sectionURL, 2, "es", "en")
	report.State = model.RunStateDone
	report.FinishedAt = report.StartedAt.Add(3 * time.Second)
	report.Records = []model.ArticleRecord{
		{SourceRef: "https://example.com/2026-08-30/uno", Title: "Titular uno", Status: model.FetchStatusOK},
		{SourceRef: "https://example.com/2026-08-30/dos", Title: "Titular dos", Status: model.FetchStatusOK},
	}
	report.Translations = []model.TranslationResult{
		{SourceRef: "https://example.com/2026-08-30/uno", TranslatedTitle: "Headline one", Status: model.TranslationStatusOK},
		{SourceRef: "https://example.com/2026-08-30/dos", TranslatedTitle: "Headline two", Status: model.TranslationStatusOK},
	}
	report.Frequency = []model.WordCount{
		{Word: "headline", Count: 2},
		{Word: "one", Count: 1},
		{Word: "two", Count: 1},
	}
	return report
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, "headline.db")); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false fails on a missing database", func(t *testing.T) {
		t.Parallel()

		opts := Options{CreateIfNotExists: false, EnableWAL: true}
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected error for missing database")
		}
	})
}

func TestRunDBSaveAndGet(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a completed run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		id, err := db.SaveRun(context.Background(), sampleReport("https://example.com/internacional"))
		if err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
		if id <= 0 {
			t.Errorf("id = %d, want positive", id)
		}

		loaded, err := db.GetRun(context.Background(), id)
		if err != nil {
			t.Fatalf("GetRun() error = %v", err)
		}
		if loaded.SectionURL != "https://example.com/internacional" {
			t.Errorf("section = %q", loaded.SectionURL)
		}
		if loaded.State != model.RunStateDone {
			t.Errorf("state = %q, want done", loaded.State)
		}
		if len(loaded.Records) != 2 || len(loaded.Translations) != 2 {
			t.Errorf("records/translations = %d/%d, want 2/2", len(loaded.Records), len(loaded.Translations))
		}
		if len(loaded.Frequency) != 3 || loaded.Frequency[0].Word != "headline" {
			t.Errorf("frequency = %v", loaded.Frequency)
		}
	})

	t.Run("unknown ID returns an error", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		if _, err := db.GetRun(context.Background(), 9999); err == nil {
			t.Error("expected error for unknown run ID")
		}
	})
}

func TestRunDBListRuns(t *testing.T) {
	t.Parallel()

	t.Run("lists newest first with a top-words preview", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		first := sampleReport("https://example.com/internacional")
		second := sampleReport("https://example.com/economia")
		second.StartedAt = first.StartedAt.Add(time.Minute)

		if _, err := db.SaveRun(context.Background(), first); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
		if _, err := db.SaveRun(context.Background(), second); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}

		summaries, err := db.ListRuns(context.Background(), 10)
		if err != nil {
			t.Fatalf("ListRuns() error = %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("len = %d, want 2", len(summaries))
		}
		if summaries[0].SectionURL != "https://example.com/economia" {
			t.Errorf("first summary = %q, want the newer run", summaries[0].SectionURL)
		}
		if summaries[0].ArticleCount != 2 {
			t.Errorf("article count = %d, want 2", summaries[0].ArticleCount)
		}
		if !strings.Contains(summaries[0].TopWords, "headline(2)") {
			t.Errorf("top words = %q, want headline(2) preview", summaries[0].TopWords)
		}
	})

	t.Run("honors the limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		for i := 0; i < 5; i++ {
			report := sampleReport("https://example.com/internacional")
			report.StartedAt = report.StartedAt.Add(time.Duration(i) * time.Minute)
			if _, err := db.SaveRun(context.Background(), report); err != nil {
				t.Fatalf("SaveRun() error = %v", err)
			}
		}

		summaries, err := db.ListRuns(context.Background(), 3)
		if err != nil {
			t.Fatalf("ListRuns() error = %v", err)
		}
		if len(summaries) != 3 {
			t.Errorf("len = %d, want 3", len(summaries))
		}
	})
}
