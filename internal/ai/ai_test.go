package ai

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/config"
	"github.com/vitaworks/vitae-backend/internal/model"
)

func TestDecodeModelJSON(t *testing.T) {
	type payload struct {
		Technical []string `json:"technical"`
	}

	cases := []struct {
		name string
		raw  string
	}{
		{"Plain", `{"technical": ["Go"]}`},
		{"FencedJSON", "```json\n{\"technical\": [\"Go\"]}\n```"},
		{"FencedBare", "```\n{\"technical\": [\"Go\"]}\n```"},
		{"ProseWrapped", "Here is the result:\n{\"technical\": [\"Go\"]}\nHope that helps!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p payload
			if err := decodeModelJSON(tc.raw, &p); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if len(p.Technical) != 1 || p.Technical[0] != "Go" {
				t.Errorf("unexpected payload: %+v", p)
			}
		})
	}

	t.Run("ArrayWithProse", func(t *testing.T) {
		var items []string
		if err := decodeModelJSON(`Sure! ["a", "b"]`, &items); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if len(items) != 2 {
			t.Errorf("unexpected items: %v", items)
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		var p payload
		if err := decodeModelJSON("the model refused to answer", &p); err == nil {
			t.Error("expected error for non-JSON response")
		}
	})
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("short input changed: %q", got)
	}
	if got := truncate("hello world", 5); got != "hello" {
		t.Errorf("truncate = %q", got)
	}
	// A limit landing mid-rune must back up instead of splitting the rune.
	if got := truncate("ré", 2); got != "r" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("héllo wörld", 7); !utf8.ValidString(got) {
		t.Errorf("truncate produced invalid UTF-8: %q", got)
	}
}

func TestOrDefault(t *testing.T) {
	if got := orDefault("  ", "fallback"); got != "fallback" {
		t.Errorf("blank input should fall back, got %q", got)
	}
	if got := orDefault("value", "fallback"); got != "value" {
		t.Errorf("got %q", got)
	}
}

func TestFallbackSkillMatrix(t *testing.T) {
	matrix := fallbackSkillMatrix([]string{"Python", "Leadership", "Accounting"})

	if len(matrix.Technical) != 1 || matrix.Technical[0] != "Python" {
		t.Errorf("technical = %v", matrix.Technical)
	}
	if len(matrix.SoftSkills) != 1 || matrix.SoftSkills[0] != "Leadership" {
		t.Errorf("soft skills = %v", matrix.SoftSkills)
	}
	if len(matrix.IndustrySpecific) != 1 || matrix.IndustrySpecific[0] != "Accounting" {
		t.Errorf("industry specific = %v", matrix.IndustrySpecific)
	}
	if len(matrix.SuggestedAdditions) == 0 {
		t.Error("suggested additions should never be empty")
	}
}

func TestFallbackSummary(t *testing.T) {
	t.Run("WithEntities", func(t *testing.T) {
		summary := fallbackSummary(model.ParsedEntities{
			Skills:     []string{"Go", "SQL", "Docker", "Linux"},
			Experience: []model.ExperienceEntry{{Role: "Backend Engineer", Company: "Acme"}},
		})
		if !strings.Contains(summary, "Go, SQL, Docker") {
			t.Errorf("top three skills missing: %q", summary)
		}
		if strings.Contains(summary, "Linux") {
			t.Errorf("only top three skills should appear: %q", summary)
		}
		if !strings.Contains(summary, "Backend Engineer") {
			t.Errorf("first role missing: %q", summary)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if summary := fallbackSummary(model.ParsedEntities{}); summary == "" {
			t.Error("generic summary expected")
		}
	})
}

func TestFallbackFullResume(t *testing.T) {
	enhancement := &model.Enhancement{
		Summary: "A summary.",
		Skills: model.SkillMatrix{
			Technical:  []string{"Go"},
			SoftSkills: []string{"Teamwork"},
		},
		Experience: []model.EnhancedExperience{
			{Role: "Engineer", Company: "Acme", Description: []string{"Shipped things"}},
		},
	}

	full := fallbackFullResume(enhancement)
	for _, want := range []string{
		"PROFESSIONAL SUMMARY", "A summary.",
		"CORE COMPETENCIES", "Go, Teamwork",
		"PROFESSIONAL EXPERIENCE", "Engineer - Acme", "• Shipped things",
	} {
		if !strings.Contains(full, want) {
			t.Errorf("missing %q in:\n%s", want, full)
		}
	}
}

func TestPromptTruncation(t *testing.T) {
	longContent := strings.Repeat("x", summaryContentLimit*2)
	prompt := summaryPrompt(longContent, model.ParsedEntities{})
	if strings.Contains(prompt, strings.Repeat("x", summaryContentLimit+1)) {
		t.Error("summary prompt must truncate resume content")
	}
	if !strings.Contains(prompt, strings.Repeat("x", summaryContentLimit)) {
		t.Error("summary prompt should keep the truncated head")
	}
}

// unavailableClient returns a client in fallback mode (no API key).
func unavailableClient(t *testing.T) *Client {
	t.Helper()
	cfg := &config.Config{GeminiModel: "gemini-1.5-flash"}
	client, err := NewClient(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	if client.Available() {
		t.Fatal("client without key must not be available")
	}
	return client
}

func TestEnhanceResumeFallbackMode(t *testing.T) {
	enhancer := NewEnhancer(unavailableClient(t), zerolog.Nop())

	entities := model.ParsedEntities{
		Skills:     []string{"Python", "Communication"},
		Experience: []model.ExperienceEntry{{Role: "Analyst", Company: "Globex"}},
	}

	var stages []string
	enhancement := enhancer.EnhanceResume(context.Background(), uuid.New(), sampleContent, entities,
		func(stage string, done, total int) {
			stages = append(stages, stage)
			if total != len(EnhanceStages) {
				t.Errorf("total = %d, want %d", total, len(EnhanceStages))
			}
		})

	if !enhancement.Fallback {
		t.Error("fallback flag must be set without an API key")
	}
	if enhancement.Summary == "" || enhancement.FullContent == "" {
		t.Error("every field must be populated in fallback mode")
	}
	if len(enhancement.Suggestions) == 0 {
		t.Error("suggestions missing")
	}
	if enhancement.ATS.OverallScore <= 0 {
		t.Errorf("ats score = %d", enhancement.ATS.OverallScore)
	}
	if len(enhancement.Experience) != 1 {
		t.Errorf("experience = %v", enhancement.Experience)
	}

	if len(stages) != len(EnhanceStages) {
		t.Fatalf("progress calls = %d, want %d", len(stages), len(EnhanceStages))
	}
	for i, stage := range EnhanceStages {
		if stages[i] != stage {
			t.Errorf("stage %d = %q, want %q", i, stages[i], stage)
		}
	}
}

func TestGenerateCoverLettersFallbackMode(t *testing.T) {
	gen := NewLetterGenerator(unavailableClient(t), zerolog.Nop())

	req := model.GenerateCoverLetterRequest{
		Preferences: model.Preferences{
			DesiredRole:     "Platform Engineer",
			ExperienceLevel: "Senior-Level",
			ExpectedSalary:  "competitive", // triggers a soft warning
		},
		CompanyName: "Initech",
	}

	set := gen.Generate(context.Background(), uuid.New(), sampleContent, req, nil)

	if !set.Fallback {
		t.Error("fallback flag must be set without an API key")
	}
	if len(set.Letters) != len(model.AllCoverLetterStyles) {
		t.Fatalf("letters = %d, want %d", len(set.Letters), len(model.AllCoverLetterStyles))
	}
	for _, style := range model.AllCoverLetterStyles {
		letter := set.Letters[style]
		if !strings.Contains(letter, "Platform Engineer") {
			t.Errorf("%s letter missing desired role", style)
		}
		if !strings.Contains(letter, "Initech") {
			t.Errorf("%s letter missing company name", style)
		}
	}
	if len(set.Warnings) != 1 || !strings.Contains(set.Warnings[0], "numeric") {
		t.Errorf("salary warning missing: %v", set.Warnings)
	}
}

const sampleContent = `Jane Smith
jane@example.com

EXPERIENCE
Analyst at Globex

SKILLS
Python, Communication`
