package service

import "testing"

func TestPublicViewFiltersPrivateSettings(t *testing.T) {
	settings := map[string]string{
		"public_site_name":      "Vitae",
		"public_max_free_runs":  "5",
		"gemini_model_override": "gemini-1.5-pro",
		"maintenance_note":      "db failover planned",
	}

	view := publicView(settings)

	if len(view) != 2 {
		t.Fatalf("got %d public settings, want 2: %v", len(view), view)
	}
	if view["site_name"] != "Vitae" {
		t.Errorf("site_name = %q", view["site_name"])
	}
	if view["max_free_runs"] != "5" {
		t.Errorf("max_free_runs = %q", view["max_free_runs"])
	}
	if _, ok := view["public_site_name"]; ok {
		t.Error("prefix not stripped from public key")
	}
	for _, key := range []string{"gemini_model_override", "maintenance_note"} {
		if _, ok := view[key]; ok {
			t.Errorf("private setting %q exposed", key)
		}
	}
}

func TestPublicViewEmptyInput(t *testing.T) {
	view := publicView(map[string]string{})
	if view == nil {
		t.Fatal("expected non-nil map so JSON encodes {} instead of null")
	}
	if len(view) != 0 {
		t.Errorf("expected empty view, got %v", view)
	}
}
