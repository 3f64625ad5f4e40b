package extract

import (
	"strings"
	"testing"

	"github.com/vitaworks/vitae-backend/internal/model"
)

const sampleResume = `John Doe
john.doe@example.com | 555-123-4567

SUMMARY
Software Engineer at Acme Corp. Passionate about Python and Docker.

EXPERIENCE
Globex Inc - Data Scientist

EDUCATION
Bachelor of Computer Science, Example University

SKILLS
Python, Docker, SQL, Leadership`

func TestEntities(t *testing.T) {
	entities := Entities(sampleResume)

	if entities.Name != "John Doe" {
		t.Errorf("name = %q", entities.Name)
	}
	if entities.Contact.Email != "john.doe@example.com" {
		t.Errorf("email = %q", entities.Contact.Email)
	}
	if entities.Contact.Phone != "5551234567" {
		t.Errorf("phone = %q", entities.Contact.Phone)
	}

	for _, want := range []string{"Python", "Docker", "SQL", "Leadership"} {
		if !containsString(entities.Skills, want) {
			t.Errorf("skill %q not detected in %v", want, entities.Skills)
		}
	}

	wantExp := map[string]string{
		"Software Engineer": "Acme Corp",
		"Data Scientist":    "Globex Inc",
	}
	for _, exp := range entities.Experience {
		if company, ok := wantExp[exp.Role]; ok && strings.TrimSpace(exp.Company) == company {
			delete(wantExp, exp.Role)
		}
	}
	if len(wantExp) > 0 {
		t.Errorf("experience entries missing: %v (got %v)", wantExp, entities.Experience)
	}

	if !containsString(entities.Education, "Bachelor") || !containsString(entities.Education, "University") {
		t.Errorf("education keywords missing: %v", entities.Education)
	}
}

func TestEntitiesEmptyText(t *testing.T) {
	entities := Entities("")
	if entities.Contact.Email != "" || entities.Contact.Phone != "" {
		t.Error("expected empty contact info")
	}
	// Slices stay non-nil so JSON encodes [] instead of null.
	if entities.Skills == nil || entities.Experience == nil || entities.Education == nil {
		t.Error("expected non-nil empty slices")
	}
}

func TestEntitiesDeduplicatesExperience(t *testing.T) {
	text := "Software Engineer at Acme Corp. Later again Software Engineer at Acme Corp."
	entities := Entities(text)
	count := 0
	for _, exp := range entities.Experience {
		if exp.Role == "Software Engineer" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected 1 deduplicated entry, got %d", count)
	}
}

func TestFindName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"FirstLine", "Jane Smith\njane@example.com", "Jane Smith"},
		{"AfterBlankLines", "\n\n  Mary-Anne O'Neill\nSUMMARY", "Mary-Anne O'Neill"},
		{"Initials", "J. R. Tolkien\nAuthor", "J. R. Tolkien"},
		{"SkipsContactLine", "jane@example.com | 555-123-4567\nJane Smith", "Jane Smith"},
		{"IgnoresHeading", "CURRICULUM VITAE\nEXPERIENCE SECTION", ""},
		{"TooDeep", "a\nb\nc\nd\ne\nJane Smith", ""},
		{"Empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findName(tt.text); got != tt.want {
				t.Errorf("findName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateEntities(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		report := ValidateEntities(model.ParsedEntities{})
		if !report.Valid {
			t.Error("report should stay valid, it only carries advice")
		}
		if len(report.Warnings) != 4 {
			t.Errorf("expected 4 warnings, got %d: %v", len(report.Warnings), report.Warnings)
		}
		if len(report.Suggestions) != len(report.Warnings) {
			t.Errorf("each warning needs a suggestion: %v", report.Suggestions)
		}
	})

	t.Run("Complete", func(t *testing.T) {
		report := ValidateEntities(model.ParsedEntities{
			Contact:    model.ContactInfo{Email: "a@b.co", Phone: "5551234567"},
			Skills:     []string{"Go"},
			Experience: []model.ExperienceEntry{{Role: "Developer", Company: "Acme"}},
		})
		if len(report.Warnings) != 0 {
			t.Errorf("expected no warnings, got %v", report.Warnings)
		}
	})
}

func TestScoreContent(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		quality := ScoreContent("   ")
		if quality.Valid {
			t.Error("empty content should be invalid")
		}
		if quality.Score != 0 {
			t.Errorf("score = %d", quality.Score)
		}
	})

	t.Run("FullStructure", func(t *testing.T) {
		quality := ScoreContent(sampleResume)
		if !quality.Valid {
			t.Error("expected valid")
		}
		// Length, four sections, email, phone, and bullets/lines all score.
		if quality.Score < 80 {
			t.Errorf("expected high score for structured resume, got %d", quality.Score)
		}
	})

	t.Run("LowQuality", func(t *testing.T) {
		quality := ScoreContent("just a short note")
		if quality.Score >= 50 {
			t.Errorf("expected low score, got %d", quality.Score)
		}
		if !containsSubstring(quality.Suggestions, "quality seems low") {
			t.Errorf("expected low quality suggestion, got %v", quality.Suggestions)
		}
		if !containsSubstring(quality.Suggestions, "contact email") {
			t.Errorf("expected email suggestion, got %v", quality.Suggestions)
		}
	})

	t.Run("Capped", func(t *testing.T) {
		content := strings.Repeat("experience education skills summary objective\n", 10) +
			"a@b.co 555-123-4567 • bullet"
		if quality := ScoreContent(content); quality.Score > 100 {
			t.Errorf("score must cap at 100, got %d", quality.Score)
		}
	})
}

func containsString(items []string, want string) bool {
	for _, s := range items {
		if s == want {
			return true
		}
	}
	return false
}

func containsSubstring(items []string, fragment string) bool {
	for _, s := range items {
		if strings.Contains(s, fragment) {
			return true
		}
	}
	return false
}
