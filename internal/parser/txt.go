package parser

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// extractTXT decodes plain-text bytes. Non-UTF-8 input is tried as
// Windows-1252 first; that charmap leaves a handful of bytes undefined and
// decodes them to U+FFFD, in which case Latin-1 takes over since it maps
// every byte.
func extractTXT(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err == nil && !bytes.ContainsRune(decoded, utf8.RuneError) {
		return string(decoded), nil
	}

	decoded, _ = charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(decoded), nil
}
