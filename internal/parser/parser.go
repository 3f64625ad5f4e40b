// Package parser extracts plain text from uploaded resume documents.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sentinel errors for document extraction.
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrNoTextContent     = errors.New("no text content extracted")
)

// ExtractText extracts plain text from the document bytes, dispatching on the
// file extension. The returned text is newline-normalized.
func ExtractText(fileName string, data []byte) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))

	var (
		text string
		err  error
	)
	switch ext {
	case "pdf":
		text, err = extractPDF(data)
	case "docx":
		text, err = extractDOCX(data)
	case "txt":
		text, err = extractTXT(data)
	default:
		return "", fmt.Errorf("%w: .%s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", err
	}

	text = normalize(text)
	if strings.TrimSpace(text) == "" {
		return "", ErrNoTextContent
	}
	return text, nil
}

// normalize unifies line endings and collapses runs of blank lines.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank++
			if blank > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blank = 0
		out = append(out, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
