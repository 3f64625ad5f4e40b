package ai

import (
	"encoding/json"
	"strings"
)

// decodeModelJSON unmarshals a model response that is expected to be a single
// JSON value. Models routinely wrap JSON in markdown code fences or prepend a
// sentence despite instructions, so the payload is located before decoding.
func decodeModelJSON(raw string, v interface{}) error {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	// Slice to the outermost JSON value if extra prose surrounds it.
	start := strings.IndexAny(cleaned, "{[")
	if start > 0 {
		var end int
		if cleaned[start] == '{' {
			end = strings.LastIndex(cleaned, "}")
		} else {
			end = strings.LastIndex(cleaned, "]")
		}
		if end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	return json.Unmarshal([]byte(cleaned), v)
}
