package parser

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestExtractTextTXT(t *testing.T) {
	t.Run("UTF8", func(t *testing.T) {
		text, err := ExtractText("resume.txt", []byte("John Doe\nSoftware Engineer"))
		if err != nil {
			t.Fatalf("extract failed: %v", err)
		}
		if text != "John Doe\nSoftware Engineer" {
			t.Errorf("unexpected text: %q", text)
		}
	})

	t.Run("Latin1Fallback", func(t *testing.T) {
		// "Résumé" encoded as Latin-1 / Windows-1252, invalid as UTF-8.
		data := []byte{0x52, 0xE9, 0x73, 0x75, 0x6D, 0xE9}
		text, err := ExtractText("resume.txt", data)
		if err != nil {
			t.Fatalf("extract failed: %v", err)
		}
		if text != "Résumé" {
			t.Errorf("expected decoded legacy text, got %q", text)
		}
	})

	t.Run("Windows1252SmartQuotes", func(t *testing.T) {
		// 0x93/0x94 are curly quotes in Windows-1252, unmapped in Latin-1.
		data := []byte{0x93, 0x6F, 0x6B, 0x94}
		text, err := ExtractText("resume.txt", data)
		if err != nil {
			t.Fatalf("extract failed: %v", err)
		}
		if text != "“ok”" {
			t.Errorf("expected curly quotes, got %q", text)
		}
	})

	t.Run("UndefinedByteFallsBackToLatin1", func(t *testing.T) {
		// 0x81 is undefined in Windows-1252; Latin-1 maps it to U+0081
		// instead of a replacement character.
		data := []byte{0x48, 0x81, 0x49}
		text, err := ExtractText("resume.txt", data)
		if err != nil {
			t.Fatalf("extract failed: %v", err)
		}
		if text != "H\u0081I" {
			t.Errorf("expected Latin-1 decode, got %q", text)
		}
	})

	t.Run("WhitespaceOnly", func(t *testing.T) {
		_, err := ExtractText("resume.txt", []byte("   \n\n  \t  "))
		if !errors.Is(err, ErrNoTextContent) {
			t.Errorf("expected ErrNoTextContent, got %v", err)
		}
	})
}

func TestExtractTextUnsupported(t *testing.T) {
	_, err := ExtractText("resume.odt", []byte("whatever"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"CRLF", "a\r\nb\r\nc", "a\nb\nc"},
		{"BareCR", "a\rb", "a\nb"},
		{"CollapseBlankRuns", "a\n\n\n\nb", "a\n\nb"},
		{"TrailingWhitespace", "a  \t\nb", "a\nb"},
		{"OuterTrim", "\n\n  a  \n\n", "a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalize(tc.in); got != tc.want {
				t.Errorf("normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextDOCX(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>John Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Skills:</w:t></w:r><w:r><w:tab/><w:t>Python, Go</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := ExtractText("resume.docx", buildDOCX(t, doc))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(text, "John Doe") {
		t.Errorf("paragraph text missing: %q", text)
	}
	if !strings.Contains(text, "Skills:\tPython, Go") {
		t.Errorf("tab run not preserved: %q", text)
	}
}

func TestExtractTextDOCXMissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	w.Write([]byte("<styles/>"))
	zw.Close()

	if _, err := ExtractText("resume.docx", buf.Bytes()); err == nil {
		t.Error("expected error for archive without word/document.xml")
	}
}

func TestExtractTextDOCXNotAZip(t *testing.T) {
	if _, err := ExtractText("resume.docx", []byte("plain text, not a zip")); err == nil {
		t.Error("expected error for non-zip payload")
	}
}
