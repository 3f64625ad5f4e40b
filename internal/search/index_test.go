package search

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/model"
)

func openTestIndex(t *testing.T) *ResumeIndex {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resumes.bleve")
	idx, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func testResume(name, content string, skills ...string) *model.Resume {
	return &model.Resume{
		ID:       uuid.New(),
		FileName: name,
		Content:  content,
		Entities: model.ParsedEntities{Skills: skills},
	}
}

func TestIndexAndSearch(t *testing.T) {
	idx := openTestIndex(t)

	backend := testResume("backend.txt", "Experienced Go developer, Docker and Kubernetes in production", "Go", "Docker")
	frontend := testResume("frontend.txt", "React specialist building accessible interfaces", "React")

	for _, r := range []*model.Resume{backend, frontend} {
		if err := idx.Index(r); err != nil {
			t.Fatalf("index: %v", err)
		}
	}

	count, err := idx.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	hits, err := idx.Search("docker", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected at least one hit for 'docker'")
	}
	if hits[0].ResumeID != backend.ID {
		t.Errorf("top hit = %s, want %s", hits[0].ResumeID, backend.ID)
	}
	if hits[0].Score <= 0 {
		t.Errorf("score = %f", hits[0].Score)
	}
}

func TestSearchMatchesSkillsAndFileName(t *testing.T) {
	idx := openTestIndex(t)

	r := testResume("jane_doe_resume.txt", "General summary text", "Machine Learning", "PyTorch")
	if err := idx.Index(r); err != nil {
		t.Fatalf("index: %v", err)
	}

	for _, query := range []string{"pytorch", "jane_doe_resume.txt"} {
		hits, err := idx.Search(query, 5)
		if err != nil {
			t.Fatalf("search %q: %v", query, err)
		}
		if len(hits) != 1 || hits[0].ResumeID != r.ID {
			t.Errorf("search %q: hits = %v", query, hits)
		}
	}
}

func TestDeleteRemovesDocument(t *testing.T) {
	idx := openTestIndex(t)

	r := testResume("temp.txt", "short lived entry", "SQL")
	if err := idx.Index(r); err != nil {
		t.Fatalf("index: %v", err)
	}
	if err := idx.Delete(r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	count, err := idx.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d after delete", count)
	}

	// Deleting an absent document is not an error.
	if err := idx.Delete(uuid.New()); err != nil {
		t.Errorf("delete missing: %v", err)
	}
}

func TestIndexReplacesExistingDocument(t *testing.T) {
	idx := openTestIndex(t)

	r := testResume("update.txt", "original words here", "Java")
	if err := idx.Index(r); err != nil {
		t.Fatalf("index: %v", err)
	}

	r.Content = "completely different vocabulary now"
	if err := idx.Index(r); err != nil {
		t.Fatalf("reindex: %v", err)
	}

	count, _ := idx.Count()
	if count != 1 {
		t.Errorf("count = %d, reindex must replace", count)
	}

	hits, err := idx.Search("vocabulary", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("new content not searchable: %v", hits)
	}
}
