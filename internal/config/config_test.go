package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8501" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.MaxFileSize != 10485760 {
		t.Errorf("MaxFileSize = %d", cfg.MaxFileSize)
	}
	if len(cfg.AllowedExtensions) != 3 {
		t.Errorf("AllowedExtensions = %v", cfg.AllowedExtensions)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v", cfg.JWTExpiry)
	}
	if cfg.GeminiMinInterval != 2*time.Second {
		t.Errorf("GeminiMinInterval = %v", cfg.GeminiMinInterval)
	}
	if cfg.AllowedOrigins != nil {
		t.Errorf("AllowedOrigins should default to nil (allow all), got %v", cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("MAX_FILE_SIZE", "2048")
	t.Setenv("ALLOWED_EXTENSIONS", " pdf , txt ")
	t.Setenv("DEBUG", "true")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	cfg := Load()

	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.MaxFileSize != 2048 {
		t.Errorf("MaxFileSize = %d", cfg.MaxFileSize)
	}
	if len(cfg.AllowedExtensions) != 2 || cfg.AllowedExtensions[0] != "pdf" || cfg.AllowedExtensions[1] != "txt" {
		t.Errorf("AllowedExtensions = %v", cfg.AllowedExtensions)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
	if cfg.JWTExpiry != time.Hour {
		t.Errorf("JWTExpiry = %v", cfg.JWTExpiry)
	}
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("MAX_DB_CONNS", "")

	cfg := Load()
	if cfg.MaxFileSize != 10485760 {
		t.Errorf("MaxFileSize = %d, want default", cfg.MaxFileSize)
	}
	if cfg.MaxDBConns != 16 {
		t.Errorf("MaxDBConns = %d, want default", cfg.MaxDBConns)
	}
}

func TestExtensionAllowed(t *testing.T) {
	cfg := &Config{AllowedExtensions: []string{"pdf", "docx", "txt"}}

	cases := []struct {
		ext  string
		want bool
	}{
		{"pdf", true},
		{".pdf", true},
		{"PDF", true},
		{"txt", true},
		{"exe", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := cfg.ExtensionAllowed(tc.ext); got != tc.want {
			t.Errorf("ExtensionAllowed(%q) = %v, want %v", tc.ext, got, tc.want)
		}
	}
}
